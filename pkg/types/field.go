package types

import "flexdb/pkg/primitives"

// Field is a single decoded value of a row.
type Field interface {
	Compare(op primitives.Predicate, other Field) (bool, error)

	Type() Type

	String() string

	Equals(other Field) bool

	// Native returns the value as a plain Go value (nil, bool, int64, float64, string or time.Time).
	Native() any
}
