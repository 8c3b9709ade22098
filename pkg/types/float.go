package types

import (
	"fmt"
	"math"
	"strconv"

	"flexdb/pkg/primitives"
)

const (
	epsilon = 1e-9
)

// FloatField holds a decoded BCD fixed-point number.
type FloatField struct {
	Value float64
}

func NewFloatField(value float64) *FloatField {
	return &FloatField{Value: value}
}

func (f *FloatField) Compare(op primitives.Predicate, other Field) (bool, error) {
	switch o := other.(type) {
	case *FloatField:
		return f.compareFloatValues(op, o.Value)
	case *IntField:
		return f.compareFloatValues(op, float64(o.Value))
	case *NullField:
		return false, nil
	default:
		return false, fmt.Errorf("cannot compare FloatField with %T", other)
	}
}

func (f *FloatField) compareFloatValues(op primitives.Predicate, other float64) (bool, error) {
	switch op {
	case primitives.Equals:
		return math.Abs(f.Value-other) < epsilon, nil
	case primitives.LessThan:
		return f.Value < other, nil
	case primitives.GreaterThan:
		return f.Value > other, nil
	case primitives.LessThanOrEqual:
		return f.Value <= other, nil
	case primitives.GreaterThanOrEqual:
		return f.Value >= other, nil
	case primitives.NotEqual:
		return math.Abs(f.Value-other) >= epsilon, nil
	default:
		return false, fmt.Errorf("unsupported predicate for FloatField: %v", op)
	}
}

func (f *FloatField) Type() Type {
	return FloatType
}

// String returns string representation of the float
func (f *FloatField) String() string {
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}

func (f *FloatField) Equals(other Field) bool {
	otherFloat, ok := other.(*FloatField)
	if !ok {
		return false
	}
	return math.Abs(f.Value-otherFloat.Value) < epsilon
}

func (f *FloatField) Native() any {
	return f.Value
}
