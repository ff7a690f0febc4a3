// Package jdbc implements the virtual system tables that present engine
// catalog metadata in the shape JDBC client tooling expects: jdbc.catalogs,
// jdbc.schemas, jdbc.tables, and jdbc.columns.
package jdbc

import (
	"context"

	"github.com/metaview-project/metaview/cmd/metaview/recordset"
	"github.com/metaview-project/metaview/cmd/metaview/session"
)

// Table is a virtual table over live catalog metadata. Cursor materializes
// the full result before returning; failures raised by the metadata
// enumerator propagate unchanged.
type Table interface {
	Metadata() *recordset.TableMetadata
	Cursor(ctx context.Context, s *session.Session, constraint Constraint) (*recordset.Cursor, error)
}

// Constraint restricts output columns by 0-indexed position. Only simple
// equality restrictions participate in pushdown; any other restriction on a
// position is recorded as non-equality and treated as unfiltered, leaving
// the engine to post-filter.
type Constraint map[int]Domain

type Domain struct {
	Equality bool
	Value    string
}

// Equals builds a single-position equality constraint.
func Equals(index int, value string) Constraint {
	return Constraint{index: {Equality: true, Value: value}}
}

// With adds an equality restriction to an existing constraint.
func (c Constraint) With(index int, value string) Constraint {
	c[index] = Domain{Equality: true, Value: value}
	return c
}
