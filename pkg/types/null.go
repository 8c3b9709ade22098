package types

import "flexdb/pkg/primitives"

// NullField is the absent value: empty dates and non-materialized binary columns.
// Null compares false against everything, including another null.
type NullField struct{}

// Null is the shared null value.
var Null = &NullField{}

func (n *NullField) Compare(op primitives.Predicate, other Field) (bool, error) {
	return false, nil
}

func (n *NullField) Type() Type {
	return NullType
}

func (n *NullField) String() string {
	return "NULL"
}

// Equals reports whether other is also null. Unlike Compare this is structural
// equality, so two decodes of the same empty field are equal.
func (n *NullField) Equals(other Field) bool {
	_, ok := other.(*NullField)
	return ok
}

func (n *NullField) Native() any {
	return nil
}
