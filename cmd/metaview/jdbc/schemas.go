package jdbc

import (
	"context"

	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
	"github.com/metaview-project/metaview/cmd/metaview/recordset"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

var schemasTableMetadata = &recordset.TableMetadata{
	Schema: "jdbc",
	Table:  "schemas",
	Columns: []recordset.Column{
		{Name: "table_schem", Type: etype.UnboundedVarcharType()},
		{Name: "table_catalog", Type: etype.UnboundedVarcharType()},
	},
}

// SchemasTable lists schemas per visible catalog, filterable by equality on
// the catalog name (position 1, matching the output column order).
type SchemasTable struct {
	enumerator metadata.Enumerator
}

func NewSchemasTable(enumerator metadata.Enumerator) *SchemasTable {
	return &SchemasTable{enumerator: enumerator}
}

func (t *SchemasTable) Metadata() *recordset.TableMetadata {
	return schemasTableMetadata
}

func (t *SchemasTable) Cursor(ctx context.Context, s *session.Session, constraint Constraint) (*recordset.Cursor, error) {
	catalogFilter := stringFilter(constraint, 1)

	builder := recordset.NewBuilder(schemasTableMetadata)
	catalogs, err := t.enumerator.ListCatalogs(ctx, s)
	if err != nil {
		return nil, err
	}
	for _, catalog := range filterCatalogs(catalogs, catalogFilter) {
		schemas, err := t.enumerator.ListSchemas(ctx, s, catalog)
		if err != nil {
			return nil, err
		}
		for _, schema := range schemas {
			if err := builder.AddRow(schema, catalog); err != nil {
				return nil, err
			}
		}
	}
	return builder.Build().Cursor(), nil
}
