// Package metadata defines the enumeration contract used by the virtual
// system tables: listing catalogs visible to a session and listing table
// columns under a qualified prefix. Implementations apply access control;
// consumers see only what the session is allowed to see.
package metadata

import (
	"context"

	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

type SchemaTableName struct {
	Schema string
	Table  string
}

func (n SchemaTableName) String() string {
	return n.Schema + "." + n.Table
}

// QualifiedTablePrefix scopes a column listing to a catalog and optionally
// to one schema and one table within it. A nil Schema or Table means
// unrestricted at that level.
type QualifiedTablePrefix struct {
	Catalog string
	Schema  *string
	Table   *string
}

func NewQualifiedTablePrefix(catalog string, schema, table *string) QualifiedTablePrefix {
	return QualifiedTablePrefix{Catalog: catalog, Schema: schema, Table: table}
}

func (p QualifiedTablePrefix) Matches(name SchemaTableName) bool {
	if p.Schema != nil && *p.Schema != name.Schema {
		return false
	}
	if p.Table != nil && *p.Table != name.Table {
		return false
	}
	return true
}

// ColumnMetadata describes one column of an engine table. Hidden columns
// exist in the engine but are excluded from user-facing introspection.
type ColumnMetadata struct {
	Name    string
	Type    etype.Type
	Hidden  bool
	Comment string
}

// TableColumns pairs a table with its columns in engine declaration order.
type TableColumns struct {
	Table   SchemaTableName
	Columns []ColumnMetadata
}

// Enumerator lists catalog metadata visible to a session. All methods
// return results in a deterministic order that callers must preserve.
type Enumerator interface {
	ListCatalogs(ctx context.Context, s *session.Session) ([]string, error)
	ListSchemas(ctx context.Context, s *session.Session, catalog string) ([]string, error)
	ListTables(ctx context.Context, s *session.Session, prefix QualifiedTablePrefix) ([]SchemaTableName, error)
	ListTableColumns(ctx context.Context, s *session.Session, prefix QualifiedTablePrefix) ([]TableColumns, error)
}
