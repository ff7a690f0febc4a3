// Package pgcatalog exposes a live PostgreSQL database as one engine
// catalog by reading its information_schema. Listing order is fixed by
// ORDER BY so that output is deterministic.
package pgcatalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metaview-project/metaview/cmd/metaview/acl"
	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

// Enumerator lists metadata from a single PostgreSQL database. Internal
// bookkeeping columns (the "__" prefix) exist in the tables but are hidden
// from introspection.
type Enumerator struct {
	catalog string
	dp      *pgxpool.Pool
	access  acl.AccessControl
}

func New(catalog string, dp *pgxpool.Pool, access acl.AccessControl) *Enumerator {
	if access == nil {
		access = acl.AllowAll()
	}
	return &Enumerator{catalog: catalog, dp: dp, access: access}
}

func (e *Enumerator) ListCatalogs(ctx context.Context, s *session.Session) ([]string, error) {
	if !e.access.CanSeeCatalog(s.User, e.catalog) {
		return nil, nil
	}
	return []string{e.catalog}, nil
}

func (e *Enumerator) ListSchemas(ctx context.Context, s *session.Session, catalog string) ([]string, error) {
	if catalog != e.catalog || !e.access.CanSeeCatalog(s.User, catalog) {
		return nil, nil
	}
	rows, err := e.dp.Query(ctx, ""+
		"SELECT schema_name FROM information_schema.schemata "+
		"WHERE schema_name NOT IN ('information_schema','pg_catalog','pg_toast') "+
		"ORDER BY schema_name")
	if err != nil {
		return nil, fmt.Errorf("querying schemas: %v", err)
	}
	defer rows.Close()
	var schemas []string
	for rows.Next() {
		var schema string
		if err := rows.Scan(&schema); err != nil {
			return nil, fmt.Errorf("reading schema name: %v", err)
		}
		if e.access.CanSeeSchema(s.User, catalog, schema) {
			schemas = append(schemas, schema)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading schemas: %v", err)
	}
	return schemas, nil
}

func (e *Enumerator) ListTables(ctx context.Context, s *session.Session, prefix metadata.QualifiedTablePrefix) ([]metadata.SchemaTableName, error) {
	if prefix.Catalog != e.catalog || !e.access.CanSeeCatalog(s.User, prefix.Catalog) {
		return nil, nil
	}
	q := "SELECT table_schema, table_name FROM information_schema.tables " +
		"WHERE table_schema NOT IN ('information_schema','pg_catalog','pg_toast')"
	var args []any
	q, args = appendPrefixFilter(q, args, prefix)
	q += " ORDER BY table_schema, table_name"
	rows, err := e.dp.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tables: %v", err)
	}
	defer rows.Close()
	var names []metadata.SchemaTableName
	for rows.Next() {
		var schema, table string
		if err := rows.Scan(&schema, &table); err != nil {
			return nil, fmt.Errorf("reading table name: %v", err)
		}
		if e.access.CanSeeSchema(s.User, prefix.Catalog, schema) {
			names = append(names, metadata.SchemaTableName{Schema: schema, Table: table})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading tables: %v", err)
	}
	return names, nil
}

func (e *Enumerator) ListTableColumns(ctx context.Context, s *session.Session, prefix metadata.QualifiedTablePrefix) ([]metadata.TableColumns, error) {
	if prefix.Catalog != e.catalog || !e.access.CanSeeCatalog(s.User, prefix.Catalog) {
		return nil, nil
	}
	q := "SELECT c.table_schema, c.table_name, c.column_name, c.data_type, c.udt_name, " +
		"c.character_maximum_length, c.numeric_precision, c.numeric_scale, " +
		"pgd.description " +
		"FROM information_schema.columns c " +
		"LEFT JOIN pg_catalog.pg_statio_all_tables st " +
		"ON c.table_schema = st.schemaname AND c.table_name = st.relname " +
		"LEFT JOIN pg_catalog.pg_description pgd " +
		"ON pgd.objoid = st.relid AND pgd.objsubid = c.ordinal_position " +
		"WHERE c.table_schema NOT IN ('information_schema','pg_catalog','pg_toast')"
	var args []any
	q, args = appendColumnsPrefixFilter(q, args, prefix)
	q += " ORDER BY c.table_schema, c.table_name, c.ordinal_position"
	rows, err := e.dp.Query(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("querying column schemas: %v", err)
	}
	defer rows.Close()
	var result []metadata.TableColumns
	var current *metadata.TableColumns
	for rows.Next() {
		var schema, table, column, dataType, udtName string
		var charMaxLen, numPrecision, numScale *int64
		var comment *string
		if err := rows.Scan(&schema, &table, &column, &dataType, &udtName,
			&charMaxLen, &numPrecision, &numScale, &comment); err != nil {
			return nil, fmt.Errorf("reading column schema: %v", err)
		}
		if !e.access.CanSeeSchema(s.User, prefix.Catalog, schema) {
			continue
		}
		name := metadata.SchemaTableName{Schema: schema, Table: table}
		if current == nil || current.Table != name {
			result = append(result, metadata.TableColumns{Table: name})
			current = &result[len(result)-1]
		}
		current.Columns = append(current.Columns, metadata.ColumnMetadata{
			Name:    column,
			Type:    columnType(dataType, udtName, charMaxLen, numPrecision, numScale),
			Hidden:  strings.HasPrefix(column, "__"),
			Comment: deref(comment),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading column schemas: %v", err)
	}
	return result, nil
}

func appendPrefixFilter(q string, args []any, prefix metadata.QualifiedTablePrefix) (string, []any) {
	if prefix.Schema != nil {
		args = append(args, *prefix.Schema)
		q += fmt.Sprintf(" AND table_schema = $%d", len(args))
	}
	if prefix.Table != nil {
		args = append(args, *prefix.Table)
		q += fmt.Sprintf(" AND table_name = $%d", len(args))
	}
	return q, args
}

func appendColumnsPrefixFilter(q string, args []any, prefix metadata.QualifiedTablePrefix) (string, []any) {
	if prefix.Schema != nil {
		args = append(args, *prefix.Schema)
		q += fmt.Sprintf(" AND c.table_schema = $%d", len(args))
	}
	if prefix.Table != nil {
		args = append(args, *prefix.Table)
		q += fmt.Sprintf(" AND c.table_name = $%d", len(args))
	}
	return q, args
}

// columnType converts an information_schema column description to an engine
// type. ARRAY columns carry their element in udt_name with a leading "_".
func columnType(dataType, udtName string, charMaxLen, numPrecision, numScale *int64) etype.Type {
	switch dataType {
	case "character varying":
		if charMaxLen != nil {
			return etype.VarcharType(*charMaxLen)
		}
		return etype.UnboundedVarcharType()
	case "character":
		if charMaxLen != nil {
			return etype.CharType(*charMaxLen)
		}
		return etype.CharType(1)
	case "numeric":
		if numPrecision != nil {
			return etype.DecimalType(*numPrecision, deref64(numScale))
		}
		return etype.DecimalType(etype.DefaultDecimalPrecision, 0)
	case "ARRAY":
		return etype.ArrayType(etype.ParseType(strings.TrimPrefix(udtName, "_")))
	default:
		return etype.ParseType(dataType)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func deref64(n *int64) int64 {
	if n == nil {
		return 0
	}
	return *n
}
