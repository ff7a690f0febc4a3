package recordset

import (
	"testing"

	"github.com/metaview-project/metaview/cmd/metaview/etype"
)

func testMetadata() *TableMetadata {
	return &TableMetadata{
		Schema: "jdbc",
		Table:  "test",
		Columns: []Column{
			{Name: "name", Type: etype.UnboundedVarcharType()},
			{Name: "size", Type: etype.BigintType},
			{Name: "active", Type: etype.BooleanType},
		},
	}
}

func TestBuilderAddRow(t *testing.T) {
	b := NewBuilder(testMetadata())
	if err := b.AddRow("alpha", int64(1), true); err != nil {
		t.Fatalf("AddRow: %v", err)
	}
	if err := b.AddRow("beta", nil, false); err != nil {
		t.Fatalf("AddRow with null: %v", err)
	}
	if got := b.Build().RowCount(); got != 2 {
		t.Errorf("got %d rows; want 2", got)
	}
}

func TestBuilderAddRowWrongCount(t *testing.T) {
	b := NewBuilder(testMetadata())
	if err := b.AddRow("alpha", int64(1)); err == nil {
		t.Error("got nil error for short row; want error")
	}
}

func TestBuilderAddRowWrongType(t *testing.T) {
	b := NewBuilder(testMetadata())
	if err := b.AddRow("alpha", "not a number", true); err == nil {
		t.Error("got nil error for mistyped value; want error")
	}
	if err := b.AddRow(1, int64(1), true); err == nil {
		t.Error("got nil error for mistyped value; want error")
	}
}

func TestBuilderAddRowIntWidths(t *testing.T) {
	b := NewBuilder(testMetadata())
	if err := b.AddRow("alpha", 1, true); err != nil {
		t.Errorf("int: %v", err)
	}
	if err := b.AddRow("beta", int32(2), true); err != nil {
		t.Errorf("int32: %v", err)
	}
	c := b.Build().Cursor()
	for want := int64(1); c.Next(); want++ {
		if got := c.Int64(1); got != want {
			t.Errorf("got %d; want %d", got, want)
		}
	}
}

func TestCursorTraversal(t *testing.T) {
	b := NewBuilder(testMetadata())
	_ = b.AddRow("alpha", int64(1), true)
	_ = b.AddRow("beta", nil, false)
	rs := b.Build()

	c := rs.Cursor()
	if !c.Next() {
		t.Fatal("got no rows; want 2")
	}
	if got := c.String(0); got != "alpha" {
		t.Errorf("got %q; want %q", got, "alpha")
	}
	if got := c.Int64(1); got != 1 {
		t.Errorf("got %d; want 1", got)
	}
	if got := c.Bool(2); got != true {
		t.Errorf("got %v; want true", got)
	}
	if !c.Next() {
		t.Fatal("got 1 row; want 2")
	}
	if !c.IsNull(1) {
		t.Error("got value; want null")
	}
	if c.Next() {
		t.Error("got extra row; want end of cursor")
	}
}

func TestCursorRestartable(t *testing.T) {
	b := NewBuilder(testMetadata())
	_ = b.AddRow("alpha", int64(1), true)
	rs := b.Build()

	first := rs.Cursor()
	for first.Next() {
	}
	second := rs.Cursor()
	if !second.Next() {
		t.Error("fresh cursor: got no rows; want 1")
	}
}

func TestCursorClose(t *testing.T) {
	b := NewBuilder(testMetadata())
	_ = b.AddRow("alpha", int64(1), true)
	c := b.Build().Cursor()
	c.Close()
	if c.Next() {
		t.Error("got row after Close; want none")
	}
}
