package tuple

import (
	"fmt"

	"flexdb/pkg/primitives"
	"flexdb/pkg/types"
)

// Builder assembles a row one column at a time, in column order.
// The first failure sticks and is returned by Build.
type Builder struct {
	tuple *Tuple
	next  int
	err   error
}

// NewBuilder starts an empty row shaped by td.
func NewBuilder(td *TupleDescription) *Builder {
	return &Builder{tuple: NewTuple(td)}
}

// AtRecord sets the record number of the row being built.
func (b *Builder) AtRecord(n primitives.RecordNumber) *Builder {
	b.tuple.RecordID = n
	return b
}

// Add sets the next column.
func (b *Builder) Add(field types.Field) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.tuple.SetField(b.next, field); err != nil {
		b.err = fmt.Errorf("column %d: %w", b.next, err)
		return b
	}
	b.next++
	return b
}

// Build returns the row once every column has been set.
func (b *Builder) Build() (*Tuple, error) {
	if b.err != nil {
		return nil, b.err
	}
	if want := b.tuple.TupleDesc.NumFields(); b.next != want {
		return nil, fmt.Errorf("incomplete row: expected %d columns, got %d", want, b.next)
	}
	return b.tuple, nil
}
