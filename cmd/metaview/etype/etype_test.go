package etype

import (
	"testing"
)

var parseTypeTests = []struct {
	in  string
	out Type
}{
	{"boolean", BooleanType},
	{"tinyint", TinyintType},
	{"smallint", SmallintType},
	{"integer", IntegerType},
	{"int4", IntegerType},
	{"bigint", BigintType},
	{"int8", BigintType},
	{"real", RealType},
	{"double", DoubleType},
	{"double precision", DoubleType},
	{"decimal(10,2)", DecimalType(10, 2)},
	{"decimal", DecimalType(38, 0)},
	{"numeric(5,1)", DecimalType(5, 1)},
	{"varchar(10)", VarcharType(10)},
	{"varchar", UnboundedVarcharType()},
	{"character varying", UnboundedVarcharType()},
	{"text", UnboundedVarcharType()},
	{"char(3)", CharType(3)},
	{"char", CharType(1)},
	{"varbinary", VarbinaryType},
	{"bytea", VarbinaryType},
	{"time", TimeType},
	{"time with time zone", TimeTzType},
	{"timestamp", TimestampType},
	{"timestamp with time zone", TimestampTzType},
	{"timestamptz", TimestampTzType},
	{"date", DateType},
	{"DECIMAL(10,2)", DecimalType(10, 2)},
	{" bigint ", BigintType},
}

func TestParseType(t *testing.T) {
	for _, tt := range parseTypeTests {
		t.Run(tt.in, func(t *testing.T) {
			got := ParseType(tt.in)
			if got != tt.out {
				t.Errorf("got %v; want %v", got, tt.out)
			}
		})
	}
}

func TestParseTypeArray(t *testing.T) {
	got := ParseType("array(bigint)")
	if !got.IsArray() {
		t.Fatalf("got family %v; want array", got.Family())
	}
	if got.Element() != BigintType {
		t.Errorf("got element %v; want bigint", got.Element())
	}
}

func TestParseTypeNestedArray(t *testing.T) {
	got := ParseType("array(decimal(10,2))")
	if !got.IsArray() {
		t.Fatalf("got family %v; want array", got.Family())
	}
	if got.Element() != DecimalType(10, 2) {
		t.Errorf("got element %v; want decimal(10,2)", got.Element())
	}
}

func TestParseTypeUnknown(t *testing.T) {
	got := ParseType("hyperloglog")
	if got.Family() != Unknown {
		t.Fatalf("got family %v; want unknown", got.Family())
	}
	if got.DisplayName() != "hyperloglog" {
		t.Errorf("got display name %q; want %q", got.DisplayName(), "hyperloglog")
	}
}

var displayNameTests = []struct {
	in  Type
	out string
}{
	{BooleanType, "boolean"},
	{BigintType, "bigint"},
	{DoubleType, "double"},
	{DecimalType(10, 2), "decimal(10,2)"},
	{VarcharType(10), "varchar(10)"},
	{UnboundedVarcharType(), "varchar"},
	{CharType(3), "char(3)"},
	{VarbinaryType, "varbinary"},
	{TimeTzType, "time with time zone"},
	{TimestampTzType, "timestamp with time zone"},
	{ArrayType(BigintType), "array(bigint)"},
	{ArrayType(ArrayType(VarcharType(5))), "array(array(varchar(5)))"},
}

func TestDisplayName(t *testing.T) {
	for _, tt := range displayNameTests {
		t.Run(tt.out, func(t *testing.T) {
			got := tt.in.DisplayName()
			if got != tt.out {
				t.Errorf("got %q; want %q", got, tt.out)
			}
		})
	}
}

func TestUnbounded(t *testing.T) {
	if !UnboundedVarcharType().Unbounded() {
		t.Error("unbounded varchar: got false; want true")
	}
	if VarcharType(10).Unbounded() {
		t.Error("varchar(10): got true; want false")
	}
	if UnboundedVarcharType().Length() != UnboundedLength {
		t.Errorf("got length %d; want %d", UnboundedVarcharType().Length(), int64(UnboundedLength))
	}
}
