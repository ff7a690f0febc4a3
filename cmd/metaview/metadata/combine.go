package metadata

import (
	"context"

	"github.com/metaview-project/metaview/cmd/metaview/session"
)

// Combined concatenates several enumerators into one. Catalogs are listed
// in enumerator order; prefix-scoped listings are answered by whichever
// enumerator knows the catalog (the others return nothing for it).
type Combined struct {
	enumerators []Enumerator
}

func Combine(enumerators ...Enumerator) *Combined {
	return &Combined{enumerators: enumerators}
}

func (c *Combined) ListCatalogs(ctx context.Context, s *session.Session) ([]string, error) {
	var catalogs []string
	for _, e := range c.enumerators {
		names, err := e.ListCatalogs(ctx, s)
		if err != nil {
			return nil, err
		}
		catalogs = append(catalogs, names...)
	}
	return catalogs, nil
}

func (c *Combined) ListSchemas(ctx context.Context, s *session.Session, catalog string) ([]string, error) {
	var schemas []string
	for _, e := range c.enumerators {
		names, err := e.ListSchemas(ctx, s, catalog)
		if err != nil {
			return nil, err
		}
		schemas = append(schemas, names...)
	}
	return schemas, nil
}

func (c *Combined) ListTables(ctx context.Context, s *session.Session, prefix QualifiedTablePrefix) ([]SchemaTableName, error) {
	var tables []SchemaTableName
	for _, e := range c.enumerators {
		names, err := e.ListTables(ctx, s, prefix)
		if err != nil {
			return nil, err
		}
		tables = append(tables, names...)
	}
	return tables, nil
}

func (c *Combined) ListTableColumns(ctx context.Context, s *session.Session, prefix QualifiedTablePrefix) ([]TableColumns, error) {
	var result []TableColumns
	for _, e := range c.enumerators {
		tables, err := e.ListTableColumns(ctx, s, prefix)
		if err != nil {
			return nil, err
		}
		result = append(result, tables...)
	}
	return result, nil
}
