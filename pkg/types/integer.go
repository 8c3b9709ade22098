package types

import (
	"fmt"
	"strconv"

	"flexdb/pkg/primitives"
)

// IntField holds a decoded BCD integer.
type IntField struct {
	Value int64
}

func NewIntField(value int64) *IntField {
	return &IntField{Value: value}
}

// Compare supports IntField and FloatField operands. Floats are compared
// after widening the integer.
func (f *IntField) Compare(op primitives.Predicate, other Field) (bool, error) {
	if !isOrderingPredicate(op) {
		return false, fmt.Errorf("unsupported predicate for IntField: %v", op)
	}

	switch o := other.(type) {
	case *IntField:
		return compareOrdered(f.Value, o.Value, op), nil
	case *FloatField:
		return NewFloatField(float64(f.Value)).Compare(op, o)
	case *NullField:
		return false, nil
	default:
		return false, fmt.Errorf("cannot compare IntField with %T", other)
	}
}

func (f *IntField) Type() Type {
	return IntType
}

func (f *IntField) String() string {
	return strconv.FormatInt(f.Value, 10)
}

func (f *IntField) Equals(other Field) bool {
	otherField, ok := other.(*IntField)
	if !ok {
		return false
	}
	return f.Value == otherField.Value
}

func (f *IntField) Native() any {
	return f.Value
}
