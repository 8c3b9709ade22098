package types

import (
	"cmp"

	"flexdb/pkg/primitives"
)

// compareOrdered performs a comparison between two ordered values using the given predicate.
func compareOrdered[T cmp.Ordered](a, b T, op primitives.Predicate) bool {
	switch op {
	case primitives.Equals:
		return a == b
	case primitives.LessThan:
		return a < b
	case primitives.GreaterThan:
		return a > b
	case primitives.LessThanOrEqual:
		return a <= b
	case primitives.GreaterThanOrEqual:
		return a >= b
	case primitives.NotEqual:
		return a != b
	default:
		return false
	}
}

// isOrderingPredicate reports whether op is one of the six comparison operators.
func isOrderingPredicate(op primitives.Predicate) bool {
	switch op {
	case primitives.Equals, primitives.LessThan, primitives.GreaterThan,
		primitives.LessThanOrEqual, primitives.GreaterThanOrEqual, primitives.NotEqual:
		return true
	default:
		return false
	}
}
