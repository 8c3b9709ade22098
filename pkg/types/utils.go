package types

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseConstant converts a literal into a Field of type t. The literal "null"
// (any case) yields Null for every type.
func ParseConstant(t Type, constant string) (Field, error) {
	if strings.EqualFold(constant, "null") {
		return Null, nil
	}

	switch t {
	case IntType:
		v, err := strconv.ParseInt(constant, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid integer constant %q: %w", constant, err)
		}
		return NewIntField(v), nil

	case BoolType:
		v, err := strconv.ParseBool(constant)
		if err != nil {
			return nil, fmt.Errorf("invalid boolean constant %q: %w", constant, err)
		}
		return NewBoolField(v), nil

	case FloatType:
		v, err := strconv.ParseFloat(constant, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid float constant %q: %w", constant, err)
		}
		return NewFloatField(v), nil

	case StringType:
		return NewStringField(constant), nil

	case DateType:
		v, err := time.Parse(DateLayout, constant)
		if err != nil {
			return nil, fmt.Errorf("invalid date constant %q: %w", constant, err)
		}
		return NewDateField(v), nil

	default:
		return nil, fmt.Errorf("unsupported field type: %v", t)
	}
}
