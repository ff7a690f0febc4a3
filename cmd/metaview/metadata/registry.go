package metadata

import (
	"context"

	"github.com/metaview-project/metaview/cmd/metaview/acl"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

// Registry is an Enumerator over statically declared catalog metadata.
// Catalogs, tables, and columns are listed in the order they were added.
type Registry struct {
	access   acl.AccessControl
	catalogs []string
	tables   map[string][]*registeredTable
}

type registeredTable struct {
	name    SchemaTableName
	columns []ColumnMetadata
}

func NewRegistry(access acl.AccessControl) *Registry {
	if access == nil {
		access = acl.AllowAll()
	}
	return &Registry{
		access: access,
		tables: make(map[string][]*registeredTable),
	}
}

// AddColumn declares a column, creating the catalog and table on first
// reference. Column order within a table is the order of AddColumn calls.
func (r *Registry) AddColumn(catalog, schema, table string, column ColumnMetadata) {
	tables, ok := r.tables[catalog]
	if !ok {
		r.catalogs = append(r.catalogs, catalog)
	}
	name := SchemaTableName{Schema: schema, Table: table}
	for _, t := range tables {
		if t.name == name {
			t.columns = append(t.columns, column)
			return
		}
	}
	r.tables[catalog] = append(tables, &registeredTable{
		name:    name,
		columns: []ColumnMetadata{column},
	})
}

func (r *Registry) ListCatalogs(ctx context.Context, s *session.Session) ([]string, error) {
	var names []string
	for _, c := range r.catalogs {
		if r.access.CanSeeCatalog(s.User, c) {
			names = append(names, c)
		}
	}
	return names, nil
}

func (r *Registry) ListSchemas(ctx context.Context, s *session.Session, catalog string) ([]string, error) {
	if !r.access.CanSeeCatalog(s.User, catalog) {
		return nil, nil
	}
	var schemas []string
	seen := make(map[string]bool)
	for _, t := range r.tables[catalog] {
		if seen[t.name.Schema] || !r.access.CanSeeSchema(s.User, catalog, t.name.Schema) {
			continue
		}
		seen[t.name.Schema] = true
		schemas = append(schemas, t.name.Schema)
	}
	return schemas, nil
}

func (r *Registry) ListTables(ctx context.Context, s *session.Session, prefix QualifiedTablePrefix) ([]SchemaTableName, error) {
	if !r.access.CanSeeCatalog(s.User, prefix.Catalog) {
		return nil, nil
	}
	var names []SchemaTableName
	for _, t := range r.tables[prefix.Catalog] {
		if !prefix.Matches(t.name) {
			continue
		}
		if !r.access.CanSeeSchema(s.User, prefix.Catalog, t.name.Schema) {
			continue
		}
		names = append(names, t.name)
	}
	return names, nil
}

func (r *Registry) ListTableColumns(ctx context.Context, s *session.Session, prefix QualifiedTablePrefix) ([]TableColumns, error) {
	if !r.access.CanSeeCatalog(s.User, prefix.Catalog) {
		return nil, nil
	}
	var result []TableColumns
	for _, t := range r.tables[prefix.Catalog] {
		if !prefix.Matches(t.name) {
			continue
		}
		if !r.access.CanSeeSchema(s.User, prefix.Catalog, t.name.Schema) {
			continue
		}
		columns := make([]ColumnMetadata, len(t.columns))
		copy(columns, t.columns)
		result = append(result, TableColumns{Table: t.name, Columns: columns})
	}
	return result, nil
}
