// Package recordset provides an in-memory tabular result set with a
// forward-only cursor, used to materialize rows of the virtual system
// tables.
package recordset

import (
	"fmt"

	"github.com/metaview-project/metaview/cmd/metaview/etype"
)

type Column struct {
	Name string
	Type etype.Type
}

type TableMetadata struct {
	Schema  string
	Table   string
	Columns []Column
}

func (m *TableMetadata) Name() string {
	return m.Schema + "." + m.Table
}

// Builder accumulates rows for a table. Values are checked against the
// declared column types when added, so a malformed row fails at the point
// it is produced rather than when a client reads it.
type Builder struct {
	metadata *TableMetadata
	rows     [][]any
}

func NewBuilder(metadata *TableMetadata) *Builder {
	return &Builder{metadata: metadata}
}

func (b *Builder) AddRow(values ...any) error {
	if len(values) != len(b.metadata.Columns) {
		return fmt.Errorf("table %s: row has %d values; expected %d",
			b.metadata.Name(), len(values), len(b.metadata.Columns))
	}
	row := make([]any, len(values))
	for i, v := range values {
		cv, err := checkValue(b.metadata.Columns[i], v)
		if err != nil {
			return fmt.Errorf("table %s: %v", b.metadata.Name(), err)
		}
		row[i] = cv
	}
	b.rows = append(b.rows, row)
	return nil
}

// Build returns the materialized record set. The builder can continue to
// accumulate rows; the returned set holds the rows added so far.
func (b *Builder) Build() *RecordSet {
	rows := make([][]any, len(b.rows))
	copy(rows, b.rows)
	return &RecordSet{metadata: b.metadata, rows: rows}
}

func checkValue(col Column, v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	switch col.Type.Family() {
	case etype.Boolean:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case etype.Tinyint, etype.Smallint, etype.Integer, etype.Bigint:
		switch n := v.(type) {
		case int64:
			return n, nil
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		}
	case etype.Varchar, etype.Char:
		if s, ok := v.(string); ok {
			return s, nil
		}
	default:
		return nil, fmt.Errorf("column %q: unsupported column type %s",
			col.Name, col.Type.DisplayName())
	}
	return nil, fmt.Errorf("column %q: value %v (%T) does not match type %s",
		col.Name, v, v, col.Type.DisplayName())
}

// RecordSet holds materialized rows. Each call to Cursor starts a fresh
// traversal, so a record set can be read more than once.
type RecordSet struct {
	metadata *TableMetadata
	rows     [][]any
}

func (r *RecordSet) Metadata() *TableMetadata { return r.metadata }
func (r *RecordSet) RowCount() int            { return len(r.rows) }

func (r *RecordSet) Cursor() *Cursor {
	return &Cursor{rows: r.rows, metadata: r.metadata, pos: -1}
}

// Cursor is a forward-only reader positioned before the first row.
type Cursor struct {
	metadata *TableMetadata
	rows     [][]any
	pos      int
	closed   bool
}

func (c *Cursor) Metadata() *TableMetadata { return c.metadata }

func (c *Cursor) Next() bool {
	if c.closed || c.pos+1 >= len(c.rows) {
		return false
	}
	c.pos++
	return true
}

func (c *Cursor) IsNull(i int) bool {
	return c.rows[c.pos][i] == nil
}

func (c *Cursor) String(i int) string {
	if s, ok := c.rows[c.pos][i].(string); ok {
		return s
	}
	return ""
}

func (c *Cursor) Int64(i int) int64 {
	if n, ok := c.rows[c.pos][i].(int64); ok {
		return n
	}
	return 0
}

func (c *Cursor) Bool(i int) bool {
	if b, ok := c.rows[c.pos][i].(bool); ok {
		return b
	}
	return false
}

func (c *Cursor) Close() {
	c.closed = true
}
