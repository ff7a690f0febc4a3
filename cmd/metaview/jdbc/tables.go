package jdbc

import (
	"context"

	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
	"github.com/metaview-project/metaview/cmd/metaview/recordset"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

var tablesTableMetadata = &recordset.TableMetadata{
	Schema: "jdbc",
	Table:  "tables",
	Columns: []recordset.Column{
		{Name: "table_cat", Type: etype.UnboundedVarcharType()},
		{Name: "table_schem", Type: etype.UnboundedVarcharType()},
		{Name: "table_name", Type: etype.UnboundedVarcharType()},
		{Name: "table_type", Type: etype.UnboundedVarcharType()},
		{Name: "remarks", Type: etype.UnboundedVarcharType()},
		{Name: "type_cat", Type: etype.UnboundedVarcharType()},
		{Name: "type_schem", Type: etype.UnboundedVarcharType()},
		{Name: "type_name", Type: etype.UnboundedVarcharType()},
		{Name: "self_referencing_col_name", Type: etype.UnboundedVarcharType()},
		{Name: "ref_generation", Type: etype.UnboundedVarcharType()},
	},
}

// TablesTable lists tables per visible catalog, filterable by equality on
// catalog, schema, and table name. The engine does not distinguish views
// from tables at this level, so table_type is always "TABLE".
type TablesTable struct {
	enumerator metadata.Enumerator
}

func NewTablesTable(enumerator metadata.Enumerator) *TablesTable {
	return &TablesTable{enumerator: enumerator}
}

func (t *TablesTable) Metadata() *recordset.TableMetadata {
	return tablesTableMetadata
}

func (t *TablesTable) Cursor(ctx context.Context, s *session.Session, constraint Constraint) (*recordset.Cursor, error) {
	catalogFilter := stringFilter(constraint, 0)
	schemaFilter := stringFilter(constraint, 1)
	tableFilter := stringFilter(constraint, 2)

	builder := recordset.NewBuilder(tablesTableMetadata)
	catalogs, err := t.enumerator.ListCatalogs(ctx, s)
	if err != nil {
		return nil, err
	}
	for _, catalog := range filterCatalogs(catalogs, catalogFilter) {
		prefix := tablePrefix(catalog, schemaFilter, tableFilter)
		names, err := t.enumerator.ListTables(ctx, s, prefix)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			err := builder.AddRow(
				catalog,
				name.Schema,
				name.Table,
				"TABLE",
				nil,
				nil,
				nil,
				nil,
				nil,
				nil)
			if err != nil {
				return nil, err
			}
		}
	}
	return builder.Build().Cursor(), nil
}
