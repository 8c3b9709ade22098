package types

import (
	"fmt"

	"flexdb/pkg/primitives"
)

// BoolField represents a boolean value.
type BoolField struct {
	Value bool
}

// NewBoolField creates a new BoolField instance with the specified boolean value.
func NewBoolField(value bool) *BoolField {
	return &BoolField{Value: value}
}

// Compare orders false before true. Comparing with null is always false.
func (b *BoolField) Compare(op primitives.Predicate, other Field) (bool, error) {
	if _, ok := other.(*NullField); ok {
		return false, nil
	}
	a, ok := other.(*BoolField)
	if !ok {
		return false, fmt.Errorf("cannot compare BoolField with %T", other)
	}

	switch op {
	case primitives.Equals:
		return b.Value == a.Value, nil
	case primitives.NotEqual:
		return b.Value != a.Value, nil
	case primitives.LessThan:
		return !b.Value && a.Value, nil
	case primitives.GreaterThan:
		return b.Value && !a.Value, nil
	case primitives.LessThanOrEqual:
		return !b.Value || a.Value, nil
	case primitives.GreaterThanOrEqual:
		return b.Value || !a.Value, nil
	default:
		return false, fmt.Errorf("unsupported predicate for BoolField: %v", op)
	}
}

func (b *BoolField) Type() Type {
	return BoolType
}

func (b *BoolField) String() string {
	if b.Value {
		return "true"
	}
	return "false"
}

func (b *BoolField) Equals(other Field) bool {
	otherBool, ok := other.(*BoolField)
	if !ok {
		return false
	}
	return b.Value == otherBool.Value
}

func (b *BoolField) Native() any {
	return b.Value
}
