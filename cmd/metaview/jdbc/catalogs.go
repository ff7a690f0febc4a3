package jdbc

import (
	"context"

	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
	"github.com/metaview-project/metaview/cmd/metaview/recordset"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

var catalogsTableMetadata = &recordset.TableMetadata{
	Schema: "jdbc",
	Table:  "catalogs",
	Columns: []recordset.Column{
		{Name: "table_cat", Type: etype.UnboundedVarcharType()},
	},
}

// CatalogsTable lists the catalogs visible to a session, one row each.
type CatalogsTable struct {
	enumerator metadata.Enumerator
}

func NewCatalogsTable(enumerator metadata.Enumerator) *CatalogsTable {
	return &CatalogsTable{enumerator: enumerator}
}

func (t *CatalogsTable) Metadata() *recordset.TableMetadata {
	return catalogsTableMetadata
}

func (t *CatalogsTable) Cursor(ctx context.Context, s *session.Session, constraint Constraint) (*recordset.Cursor, error) {
	builder := recordset.NewBuilder(catalogsTableMetadata)
	catalogs, err := t.enumerator.ListCatalogs(ctx, s)
	if err != nil {
		return nil, err
	}
	for _, catalog := range catalogs {
		if err := builder.AddRow(catalog); err != nil {
			return nil, err
		}
	}
	return builder.Build().Cursor(), nil
}
