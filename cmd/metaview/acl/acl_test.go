package acl

import (
	"testing"
)

func TestGrants(t *testing.T) {
	g, err := NewGrants([]Grant{
		{User: "alice", Catalog: ".*"},
		{User: "bob", Catalog: "sales", Schema: "public"},
	})
	if err != nil {
		t.Fatalf("NewGrants: %v", err)
	}

	tests := []struct {
		user    string
		catalog string
		schema  string
		catOK   bool
		schOK   bool
	}{
		{"alice", "sales", "internal", true, true},
		{"alice", "hr", "public", true, true},
		{"bob", "sales", "public", true, true},
		{"bob", "sales", "internal", true, false},
		{"bob", "hr", "public", false, false},
		{"carol", "sales", "public", false, false},
	}
	for _, tt := range tests {
		if got := g.CanSeeCatalog(tt.user, tt.catalog); got != tt.catOK {
			t.Errorf("CanSeeCatalog(%q, %q): got %v; want %v", tt.user, tt.catalog, got, tt.catOK)
		}
		if got := g.CanSeeSchema(tt.user, tt.catalog, tt.schema); got != tt.schOK {
			t.Errorf("CanSeeSchema(%q, %q, %q): got %v; want %v", tt.user, tt.catalog, tt.schema, got, tt.schOK)
		}
	}
}

func TestGrantsAnchored(t *testing.T) {
	g, err := NewGrants([]Grant{{User: "alice", Catalog: "sales"}})
	if err != nil {
		t.Fatalf("NewGrants: %v", err)
	}
	if g.CanSeeCatalog("alice", "sales_archive") {
		t.Error("pattern must match the whole name, not a prefix")
	}
}

func TestGrantsInvalid(t *testing.T) {
	if _, err := NewGrants([]Grant{{User: "alice", Catalog: "("}}); err == nil {
		t.Error("got nil error for invalid pattern; want error")
	}
	if _, err := NewGrants([]Grant{{Catalog: ".*"}}); err == nil {
		t.Error("got nil error for missing user; want error")
	}
}

func TestAllowAll(t *testing.T) {
	a := AllowAll()
	if !a.CanSeeCatalog("anyone", "anything") {
		t.Error("AllowAll catalog: got false; want true")
	}
	if !a.CanSeeSchema("anyone", "anything", "anywhere") {
		t.Error("AllowAll schema: got false; want true")
	}
}
