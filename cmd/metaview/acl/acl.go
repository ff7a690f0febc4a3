// Package acl controls which catalogs and schemas a user can introspect.
// Grants are regular expressions matched against object names, with one
// pattern list per user; a pattern of ".*" grants everything.
package acl

import (
	"fmt"
	"regexp"
)

type AccessControl interface {
	CanSeeCatalog(user, catalog string) bool
	CanSeeSchema(user, catalog, schema string) bool
}

// Grant authorizes one user for catalogs matching Catalog and, within
// those, schemas matching Schema. Empty patterns mean ".*".
type Grant struct {
	User    string
	Catalog string
	Schema  string
}

type compiledGrant struct {
	catalog *regexp.Regexp
	schema  *regexp.Regexp
}

type Grants struct {
	byUser map[string][]compiledGrant
}

func NewGrants(grants []Grant) (*Grants, error) {
	g := &Grants{byUser: make(map[string][]compiledGrant)}
	for _, grant := range grants {
		if grant.User == "" {
			return nil, fmt.Errorf("acl grant without user name")
		}
		catalog, err := compilePattern(grant.Catalog)
		if err != nil {
			return nil, fmt.Errorf("acl grant for user %q: catalog pattern: %v", grant.User, err)
		}
		schema, err := compilePattern(grant.Schema)
		if err != nil {
			return nil, fmt.Errorf("acl grant for user %q: schema pattern: %v", grant.User, err)
		}
		g.byUser[grant.User] = append(g.byUser[grant.User], compiledGrant{catalog: catalog, schema: schema})
	}
	return g, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = ".*"
	}
	return regexp.Compile("^(?:" + pattern + ")$")
}

func (g *Grants) CanSeeCatalog(user, catalog string) bool {
	for _, grant := range g.byUser[user] {
		if grant.catalog.MatchString(catalog) {
			return true
		}
	}
	return false
}

func (g *Grants) CanSeeSchema(user, catalog, schema string) bool {
	for _, grant := range g.byUser[user] {
		if grant.catalog.MatchString(catalog) && grant.schema.MatchString(schema) {
			return true
		}
	}
	return false
}

type allowAll struct{}

func (allowAll) CanSeeCatalog(user, catalog string) bool        { return true }
func (allowAll) CanSeeSchema(user, catalog, schema string) bool { return true }

// AllowAll returns an access control that grants every user everything,
// used when no grants are configured.
func AllowAll() AccessControl {
	return allowAll{}
}
