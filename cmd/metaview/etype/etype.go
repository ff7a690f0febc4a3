// Package etype models the query engine's column type system as a closed
// set of type families, so that every consumer switching on a family can be
// checked for exhaustiveness when a family is added.
package etype

import (
	"math"
	"strconv"
	"strings"
)

type Family int

const (
	Unknown Family = iota
	Boolean
	Tinyint
	Smallint
	Integer
	Bigint
	Real
	Double
	Decimal
	Varchar
	Char
	Varbinary
	Time
	TimeTz
	Timestamp
	TimestampTz
	Date
	Array
)

func (f Family) String() string {
	switch f {
	case Boolean:
		return "boolean"
	case Tinyint:
		return "tinyint"
	case Smallint:
		return "smallint"
	case Integer:
		return "integer"
	case Bigint:
		return "bigint"
	case Real:
		return "real"
	case Double:
		return "double"
	case Decimal:
		return "decimal"
	case Varchar:
		return "varchar"
	case Char:
		return "char"
	case Varbinary:
		return "varbinary"
	case Time:
		return "time"
	case TimeTz:
		return "time with time zone"
	case Timestamp:
		return "timestamp"
	case TimestampTz:
		return "timestamp with time zone"
	case Date:
		return "date"
	case Array:
		return "array"
	default:
		return "unknown"
	}
}

// UnboundedLength is the length of a varchar declared without a bound.
const UnboundedLength = math.MaxInt32

// DefaultDecimalPrecision is the precision of a decimal declared without
// parameters.
const DefaultDecimalPrecision = 38

// Type is an engine column type: a family plus its parameters. The zero
// value is the unknown type.
type Type struct {
	family    Family
	precision int64
	scale     int64
	length    int64
	element   *Type
	raw       string
}

var (
	BooleanType     = Type{family: Boolean}
	TinyintType     = Type{family: Tinyint}
	SmallintType    = Type{family: Smallint}
	IntegerType     = Type{family: Integer}
	BigintType      = Type{family: Bigint}
	RealType        = Type{family: Real}
	DoubleType      = Type{family: Double}
	VarbinaryType   = Type{family: Varbinary}
	TimeType        = Type{family: Time}
	TimeTzType      = Type{family: TimeTz}
	TimestampType   = Type{family: Timestamp}
	TimestampTzType = Type{family: TimestampTz}
	DateType        = Type{family: Date}
)

func DecimalType(precision, scale int64) Type {
	return Type{family: Decimal, precision: precision, scale: scale}
}

func VarcharType(length int64) Type {
	return Type{family: Varchar, length: length}
}

func UnboundedVarcharType() Type {
	return VarcharType(UnboundedLength)
}

func CharType(length int64) Type {
	return Type{family: Char, length: length}
}

func ArrayType(element Type) Type {
	return Type{family: Array, element: &element}
}

func UnknownType(name string) Type {
	return Type{family: Unknown, raw: name}
}

func (t Type) Family() Family   { return t.family }
func (t Type) Precision() int64 { return t.precision }
func (t Type) Scale() int64     { return t.scale }
func (t Type) Length() int64    { return t.length }

func (t Type) Element() Type {
	if t.element == nil {
		return Type{}
	}
	return *t.element
}

func (t Type) IsDecimal() bool { return t.family == Decimal }
func (t Type) IsVarchar() bool { return t.family == Varchar }
func (t Type) IsChar() bool    { return t.family == Char }
func (t Type) IsArray() bool   { return t.family == Array }

// Unbounded reports whether a varchar type was declared without a length.
func (t Type) Unbounded() bool {
	return t.family == Varchar && t.length == UnboundedLength
}

// DisplayName returns the canonical type signature shown to clients.
func (t Type) DisplayName() string {
	switch t.family {
	case Decimal:
		return "decimal(" + strconv.FormatInt(t.precision, 10) + "," + strconv.FormatInt(t.scale, 10) + ")"
	case Varchar:
		if t.Unbounded() {
			return "varchar"
		}
		return "varchar(" + strconv.FormatInt(t.length, 10) + ")"
	case Char:
		return "char(" + strconv.FormatInt(t.length, 10) + ")"
	case Array:
		return "array(" + t.Element().DisplayName() + ")"
	case Unknown:
		if t.raw == "" {
			return "unknown"
		}
		return t.raw
	default:
		return t.family.String()
	}
}

// ParseType converts a type signature, as written by the engine or read
// from a database catalog, to a Type. Unrecognized signatures produce an
// unknown type carrying the original text.
func ParseType(signature string) Type {
	s := strings.TrimSpace(strings.ToLower(signature))
	base, args := splitSignature(s)
	switch base {
	case "boolean", "bool":
		return BooleanType
	case "tinyint":
		return TinyintType
	case "smallint", "int2":
		return SmallintType
	case "integer", "int", "int4":
		return IntegerType
	case "bigint", "int8":
		return BigintType
	case "real", "float4":
		return RealType
	case "double", "double precision", "float8":
		return DoubleType
	case "decimal", "numeric":
		precision, scale := int64(DefaultDecimalPrecision), int64(0)
		if len(args) > 0 {
			precision = parseInt(args[0], precision)
		}
		if len(args) > 1 {
			scale = parseInt(args[1], scale)
		}
		return DecimalType(precision, scale)
	case "varchar", "character varying", "text":
		if len(args) > 0 {
			return VarcharType(parseInt(args[0], UnboundedLength))
		}
		return UnboundedVarcharType()
	case "char", "character":
		length := int64(1)
		if len(args) > 0 {
			length = parseInt(args[0], length)
		}
		return CharType(length)
	case "varbinary", "bytea":
		return VarbinaryType
	case "time", "time without time zone":
		return TimeType
	case "time with time zone", "timetz":
		return TimeTzType
	case "timestamp", "timestamp without time zone":
		return TimestampType
	case "timestamp with time zone", "timestamptz":
		return TimestampTzType
	case "date":
		return DateType
	case "array":
		if len(args) > 0 {
			return ArrayType(ParseType(args[0]))
		}
		return UnknownType(s)
	default:
		return UnknownType(s)
	}
}

// splitSignature separates "base(arg,arg)" into the base name and its
// arguments. Arguments are split only at the top parenthesis level, so
// "array(decimal(10,2))" yields one argument.
func splitSignature(s string) (string, []string) {
	open := strings.IndexByte(s, '(')
	if open < 0 || !strings.HasSuffix(s, ")") {
		return s, nil
	}
	base := strings.TrimSpace(s[:open])
	inner := s[open+1 : len(s)-1]
	var args []string
	depth := 0
	start := 0
	for i := 0; i < len(inner); i++ {
		switch inner[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	return base, args
}

func parseInt(s string, fallback int64) int64 {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}
