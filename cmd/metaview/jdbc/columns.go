package jdbc

import (
	"context"
	"math"

	"github.com/metaview-project/metaview/cmd/metaview/etype"
	"github.com/metaview-project/metaview/cmd/metaview/metadata"
	"github.com/metaview-project/metaview/cmd/metaview/recordset"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

// Scalar type codes from java.sql.Types, which client tooling expects in
// the data_type column.
const (
	TypeChar                  int64 = 1
	TypeDecimal               int64 = 3
	TypeInteger               int64 = 4
	TypeSmallint              int64 = 5
	TypeReal                  int64 = 7
	TypeDouble                int64 = 8
	TypeVarchar               int64 = 12
	TypeBoolean               int64 = 16
	TypeDate                  int64 = 91
	TypeTime                  int64 = 92
	TypeTimestamp             int64 = 93
	TypeJavaObject            int64 = 2000
	TypeArray                 int64 = 2003
	TypeTimeWithTimezone      int64 = 2013
	TypeTimestampWithTimezone int64 = 2014
	TypeVarbinary             int64 = -3
	TypeBigint                int64 = -5
	TypeTinyint               int64 = -6
)

// Column nullability is always reported as unknown: the enumerator does not
// expose nullability, and a wrong guess would change observable output.
const columnNullableUnknown int64 = 2

var columnsTableMetadata = &recordset.TableMetadata{
	Schema: "jdbc",
	Table:  "columns",
	Columns: []recordset.Column{
		{Name: "table_cat", Type: etype.UnboundedVarcharType()},
		{Name: "table_schem", Type: etype.UnboundedVarcharType()},
		{Name: "table_name", Type: etype.UnboundedVarcharType()},
		{Name: "column_name", Type: etype.UnboundedVarcharType()},
		{Name: "data_type", Type: etype.BigintType},
		{Name: "type_name", Type: etype.UnboundedVarcharType()},
		{Name: "column_size", Type: etype.BigintType},
		{Name: "buffer_length", Type: etype.BigintType},
		{Name: "decimal_digits", Type: etype.BigintType},
		{Name: "num_prec_radix", Type: etype.BigintType},
		{Name: "nullable", Type: etype.BigintType},
		{Name: "remarks", Type: etype.UnboundedVarcharType()},
		{Name: "column_def", Type: etype.UnboundedVarcharType()},
		{Name: "sql_data_type", Type: etype.BigintType},
		{Name: "sql_datetime_sub", Type: etype.BigintType},
		{Name: "char_octet_length", Type: etype.BigintType},
		{Name: "ordinal_position", Type: etype.BigintType},
		{Name: "is_nullable", Type: etype.UnboundedVarcharType()},
		{Name: "scope_catalog", Type: etype.UnboundedVarcharType()},
		{Name: "scope_schema", Type: etype.UnboundedVarcharType()},
		{Name: "scope_table", Type: etype.UnboundedVarcharType()},
		{Name: "source_data_type", Type: etype.BigintType},
		{Name: "is_autoincrement", Type: etype.UnboundedVarcharType()},
		{Name: "is_generatedcolumn", Type: etype.UnboundedVarcharType()},
	},
}

// ColumnsTable produces one descriptor row per visible column across the
// catalogs a session can see, optionally restricted by equality filters on
// catalog, schema, and table name.
type ColumnsTable struct {
	enumerator metadata.Enumerator
}

func NewColumnsTable(enumerator metadata.Enumerator) *ColumnsTable {
	return &ColumnsTable{enumerator: enumerator}
}

func (t *ColumnsTable) Metadata() *recordset.TableMetadata {
	return columnsTableMetadata
}

func (t *ColumnsTable) Cursor(ctx context.Context, s *session.Session, constraint Constraint) (*recordset.Cursor, error) {
	catalogFilter := stringFilter(constraint, 0)
	schemaFilter := stringFilter(constraint, 1)
	tableFilter := stringFilter(constraint, 2)

	builder := recordset.NewBuilder(columnsTableMetadata)
	catalogs, err := t.enumerator.ListCatalogs(ctx, s)
	if err != nil {
		return nil, err
	}
	for _, catalog := range filterCatalogs(catalogs, catalogFilter) {
		prefix := tablePrefix(catalog, schemaFilter, tableFilter)
		tables, err := t.enumerator.ListTableColumns(ctx, s, prefix)
		if err != nil {
			return nil, err
		}
		for _, tc := range tables {
			if err := addColumnRows(builder, catalog, tc); err != nil {
				return nil, err
			}
		}
	}
	return builder.Build().Cursor(), nil
}

func addColumnRows(builder *recordset.Builder, catalog string, tc metadata.TableColumns) error {
	ordinal := int64(1)
	for _, column := range tc.Columns {
		if column.Hidden {
			continue
		}
		err := builder.AddRow(
			catalog,
			tc.Table.Schema,
			tc.Table.Table,
			column.Name,
			jdbcDataType(column.Type),
			column.Type.DisplayName(),
			unwrap(columnSize(column.Type)),
			int64(0),
			unwrap(decimalDigits(column.Type)),
			unwrap(numPrecRadix(column.Type)),
			columnNullableUnknown,
			remarks(column.Comment),
			nil,
			nil,
			nil,
			unwrap(charOctetLength(column.Type)),
			ordinal,
			"",
			nil,
			nil,
			nil,
			nil,
			nil,
			nil)
		if err != nil {
			return err
		}
		ordinal++
	}
	return nil
}

func remarks(comment string) any {
	if comment == "" {
		return nil
	}
	return comment
}

// jdbcDataType maps an engine type to its JDBC scalar type code. Types
// outside the known families map to JAVA_OBJECT rather than failing.
func jdbcDataType(t etype.Type) int64 {
	switch t.Family() {
	case etype.Boolean:
		return TypeBoolean
	case etype.Bigint:
		return TypeBigint
	case etype.Integer:
		return TypeInteger
	case etype.Smallint:
		return TypeSmallint
	case etype.Tinyint:
		return TypeTinyint
	case etype.Real:
		return TypeReal
	case etype.Double:
		return TypeDouble
	case etype.Decimal:
		return TypeDecimal
	case etype.Varchar:
		return TypeVarchar
	case etype.Char:
		return TypeChar
	case etype.Varbinary:
		return TypeVarbinary
	case etype.Time:
		return TypeTime
	case etype.TimeTz:
		return TypeTimeWithTimezone
	case etype.Timestamp:
		return TypeTimestamp
	case etype.TimestampTz:
		return TypeTimestampWithTimezone
	case etype.Date:
		return TypeDate
	case etype.Array:
		return TypeArray
	default:
		return TypeJavaObject
	}
}

// columnSize returns the column's maximum width: decimal digits for exact
// numeric types, mantissa bits for approximate ones, declared length for
// character types, and rendered text width for datetime types. nil means
// size is not applicable to the family.
func columnSize(t etype.Type) *int64 {
	switch t.Family() {
	case etype.Bigint:
		return num(19) // 2**63-1
	case etype.Integer:
		return num(10) // 2**31-1
	case etype.Smallint:
		return num(5) // 2**15-1
	case etype.Tinyint:
		return num(3) // 2**7-1
	case etype.Real:
		return num(24) // IEEE 754
	case etype.Double:
		return num(53) // IEEE 754
	case etype.Decimal:
		return num(t.Precision())
	case etype.Varchar, etype.Char:
		return num(t.Length())
	case etype.Varbinary:
		return num(math.MaxInt32)
	case etype.Time:
		return num(8) // 00:00:00
	case etype.TimeTz:
		return num(8 + 6) // 00:00:00+00:00
	case etype.Date:
		return num(14) // +5881580-07-11 (2**31-1 days)
	case etype.Timestamp:
		return num(15 + 8)
	case etype.TimestampTz:
		return num(15 + 8 + 6)
	default:
		return nil
	}
}

// decimalDigits returns the number of fractional digits.
func decimalDigits(t etype.Type) *int64 {
	if t.IsDecimal() {
		return num(t.Scale())
	}
	return nil
}

func charOctetLength(t etype.Type) *int64 {
	switch t.Family() {
	case etype.Varchar, etype.Char:
		return num(t.Length())
	case etype.Varbinary:
		return num(math.MaxInt32)
	default:
		return nil
	}
}

func numPrecRadix(t etype.Type) *int64 {
	switch t.Family() {
	case etype.Bigint, etype.Integer, etype.Smallint, etype.Tinyint, etype.Decimal:
		return num(10)
	case etype.Real, etype.Double:
		return num(2)
	default:
		return nil
	}
}

func num(n int64) *int64 {
	return &n
}

func unwrap(n *int64) any {
	if n == nil {
		return nil
	}
	return *n
}
