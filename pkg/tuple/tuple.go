package tuple

import (
	"fmt"
	"strings"

	"flexdb/pkg/primitives"
	"flexdb/pkg/types"
)

// Tuple is one decoded record of a table.
type Tuple struct {
	TupleDesc *TupleDescription       // Schema of this tuple
	fields    []types.Field           // The actual field values
	RecordID  primitives.RecordNumber // Zero-based record number the tuple was decoded from
}

// NewTuple creates a new tuple with the given schema
func NewTuple(td *TupleDescription) *Tuple {
	return &Tuple{
		TupleDesc: td,
		fields:    make([]types.Field, td.NumFields()),
	}
}

// SetField stores the ith value. Null is accepted for every column type;
// any other value must match the declared type.
func (t *Tuple) SetField(i int, field types.Field) error {
	if i < 0 || i >= len(t.fields) {
		return fmt.Errorf("field index %d out of bounds [0, %d)", i, len(t.fields))
	}
	if field == nil {
		return fmt.Errorf("field %d: nil value", i)
	}

	expectedType, _ := t.TupleDesc.TypeAtIndex(i)
	if field.Type() != types.NullType && field.Type() != expectedType {
		return fmt.Errorf("field type mismatch: expected %v, got %v",
			expectedType, field.Type())
	}

	t.fields[i] = field
	return nil
}

// GetField returns the value of the ith field
func (t *Tuple) GetField(i int) (types.Field, error) {
	if i < 0 || i >= len(t.fields) {
		return nil, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(t.fields))
	}
	return t.fields[i], nil
}

// Fields returns a copy of the value list.
func (t *Tuple) Fields() []types.Field {
	out := make([]types.Field, len(t.fields))
	copy(out, t.fields)
	return out
}

// NativeValues returns the values as plain Go values in column order.
func (t *Tuple) NativeValues() []any {
	out := make([]any, len(t.fields))
	for i, f := range t.fields {
		if f != nil {
			out[i] = f.Native()
		}
	}
	return out
}

// String returns a string representation of this tuple
// Format: field1\tfield2\tfield3\t...\tfieldN\n
func (t *Tuple) String() string {
	var parts []string
	for _, field := range t.fields {
		if field != nil {
			parts = append(parts, field.String())
		} else {
			parts = append(parts, "NULL")
		}
	}
	return strings.Join(parts, "\t") + "\n"
}

// Equals reports whether both tuples carry the same record number and
// pairwise-equal values.
func (t *Tuple) Equals(other *Tuple) bool {
	if other == nil || t.RecordID != other.RecordID || len(t.fields) != len(other.fields) {
		return false
	}
	for i, f := range t.fields {
		o := other.fields[i]
		if f == nil || o == nil {
			if f != o {
				return false
			}
			continue
		}
		if !f.Equals(o) {
			return false
		}
	}
	return true
}

// Clone creates a copy of this tuple. Field values are immutable and are shared.
func (t *Tuple) Clone() (*Tuple, error) {
	newTup := NewTuple(t.TupleDesc)
	newTup.RecordID = t.RecordID

	for i := range t.TupleDesc.NumFields() {
		field, err := t.GetField(i)
		if err != nil {
			return nil, fmt.Errorf("failed to get field %d: %w", i, err)
		}
		if field == nil {
			continue
		}

		if err := newTup.SetField(i, field); err != nil {
			return nil, fmt.Errorf("failed to copy field %d: %w", i, err)
		}
	}

	return newTup, nil
}
