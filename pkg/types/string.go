package types

import (
	"fmt"
	"strings"

	"flexdb/pkg/primitives"
)

// StringField represents a decoded ASCII or TEXT column value.
type StringField struct {
	Value string
}

// NewStringField creates a new StringField with the given value.
func NewStringField(value string) *StringField {
	return &StringField{Value: value}
}

// Compare performs a lexicographic comparison. Like matches when the other
// value occurs anywhere in this one, ignoring case.
func (s *StringField) Compare(op primitives.Predicate, other Field) (bool, error) {
	if _, ok := other.(*NullField); ok {
		return false, nil
	}
	otherStringField, ok := other.(*StringField)
	if !ok {
		return false, fmt.Errorf("cannot compare StringField with %T", other)
	}

	if op == primitives.Like {
		return strings.Contains(strings.ToLower(s.Value), strings.ToLower(otherStringField.Value)), nil
	}
	if !isOrderingPredicate(op) {
		return false, fmt.Errorf("unsupported predicate for StringField: %v", op)
	}
	return compareOrdered(s.Value, otherStringField.Value, op), nil
}

// Type returns the type identifier for this field.
func (s *StringField) Type() Type {
	return StringType
}

// String returns the string value stored in this field.
func (s *StringField) String() string {
	return s.Value
}

// Equals checks if this StringField holds the same value as other.
func (s *StringField) Equals(other Field) bool {
	otherStringField, ok := other.(*StringField)
	if !ok {
		return false
	}
	return s.Value == otherStringField.Value
}

func (s *StringField) Native() any {
	return s.Value
}
