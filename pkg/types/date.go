package types

import (
	"fmt"
	"time"

	"flexdb/pkg/primitives"
)

// DateLayout is the textual form of dates in output and filter constants.
const DateLayout = "2006-01-02"

// DateField holds a calendar date at midnight UTC.
type DateField struct {
	Value time.Time
}

func NewDateField(value time.Time) *DateField {
	return &DateField{Value: time.Date(value.Year(), value.Month(), value.Day(), 0, 0, 0, 0, time.UTC)}
}

func (d *DateField) Compare(op primitives.Predicate, other Field) (bool, error) {
	if _, ok := other.(*NullField); ok {
		return false, nil
	}
	o, ok := other.(*DateField)
	if !ok {
		return false, fmt.Errorf("cannot compare DateField with %T", other)
	}
	if !isOrderingPredicate(op) {
		return false, fmt.Errorf("unsupported predicate for DateField: %v", op)
	}
	return compareOrdered(d.Value.Unix(), o.Value.Unix(), op), nil
}

func (d *DateField) Type() Type {
	return DateType
}

func (d *DateField) String() string {
	return d.Value.Format(DateLayout)
}

func (d *DateField) Equals(other Field) bool {
	o, ok := other.(*DateField)
	if !ok {
		return false
	}
	return d.Value.Equal(o.Value)
}

func (d *DateField) Native() any {
	return d.Value
}
