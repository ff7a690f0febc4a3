package jdbc

import (
	"context"
	"testing"

	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

func multiCatalogEnumerator() *metadata.Registry {
	r := metadata.NewRegistry(nil)
	r.AddColumn("c1", "s1", "t1", metadata.ColumnMetadata{Name: "a", Type: etype.BigintType})
	r.AddColumn("c1", "s2", "t2", metadata.ColumnMetadata{Name: "b", Type: etype.BigintType})
	r.AddColumn("c2", "s1", "t3", metadata.ColumnMetadata{Name: "c", Type: etype.BigintType})
	return r
}

func TestCatalogsCursor(t *testing.T) {
	table := NewCatalogsTable(multiCatalogEnumerator())
	cursor, err := table.Cursor(context.Background(), session.New("alice", "test"), nil)
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	var got []string
	for cursor.Next() {
		got = append(got, cursor.String(0))
	}
	if len(got) != 2 || got[0] != "c1" || got[1] != "c2" {
		t.Errorf("got %v; want [c1 c2]", got)
	}
}

func TestSchemasCursor(t *testing.T) {
	table := NewSchemasTable(multiCatalogEnumerator())
	cursor, err := table.Cursor(context.Background(), session.New("alice", "test"), nil)
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	type row struct{ schema, catalog string }
	var got []row
	for cursor.Next() {
		got = append(got, row{cursor.String(0), cursor.String(1)})
	}
	want := []row{{"s1", "c1"}, {"s2", "c1"}, {"s1", "c2"}}
	if len(got) != len(want) {
		t.Fatalf("got %d rows; want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %v; want %v", i, got[i], want[i])
		}
	}
}

func TestSchemasCursorCatalogFilter(t *testing.T) {
	table := NewSchemasTable(multiCatalogEnumerator())
	cursor, err := table.Cursor(context.Background(), session.New("alice", "test"), Equals(1, "c2"))
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	var got []string
	for cursor.Next() {
		got = append(got, cursor.String(0))
	}
	if len(got) != 1 || got[0] != "s1" {
		t.Errorf("got %v; want [s1]", got)
	}
}

func TestTablesCursor(t *testing.T) {
	table := NewTablesTable(multiCatalogEnumerator())
	cursor, err := table.Cursor(context.Background(), session.New("alice", "test"), nil)
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	var got []string
	for cursor.Next() {
		got = append(got, cursor.String(0)+"."+cursor.String(1)+"."+cursor.String(2))
		if tt := cursor.String(3); tt != "TABLE" {
			t.Errorf("table_type: got %q; want TABLE", tt)
		}
		if !cursor.IsNull(4) {
			t.Error("remarks: got value; want null")
		}
	}
	want := []string{"c1.s1.t1", "c1.s2.t2", "c2.s1.t3"}
	if len(got) != len(want) {
		t.Fatalf("got %v; want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("row %d: got %q; want %q", i, got[i], want[i])
		}
	}
}

func TestTablesCursorTableFilter(t *testing.T) {
	table := NewTablesTable(multiCatalogEnumerator())
	cursor, err := table.Cursor(context.Background(), session.New("alice", "test"), Equals(2, "t2"))
	if err != nil {
		t.Fatalf("cursor: %v", err)
	}
	var got []string
	for cursor.Next() {
		got = append(got, cursor.String(2))
	}
	if len(got) != 1 || got[0] != "t2" {
		t.Errorf("got %v; want [t2]", got)
	}
}
