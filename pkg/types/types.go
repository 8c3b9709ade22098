package types

// Type is the engine-facing data type of a column or value.
type Type int

const (
	NullType Type = iota
	BoolType
	IntType
	FloatType
	StringType
	DateType
	// BinaryType marks columns whose bytes are not materialized; their values are always null.
	BinaryType
)

// String returns a string representation of the type
func (t Type) String() string {
	switch t {
	case NullType:
		return "NULL_TYPE"
	case BoolType:
		return "BOOL_TYPE"
	case IntType:
		return "INT_TYPE"
	case FloatType:
		return "FLOAT_TYPE"
	case StringType:
		return "STRING_TYPE"
	case DateType:
		return "DATE_TYPE"
	case BinaryType:
		return "BINARY_TYPE"
	default:
		return "UNKNOWN_TYPE"
	}
}

// SQLName returns the SQL spelling of the type as shown in schemas.
func (t Type) SQLName() string {
	switch t {
	case NullType:
		return "NULL"
	case BoolType:
		return "BOOLEAN"
	case IntType:
		return "INTEGER"
	case FloatType:
		return "FLOAT"
	case StringType:
		return "TEXT"
	case DateType:
		return "DATE"
	case BinaryType:
		return "BYTEA"
	default:
		return "UNKNOWN"
	}
}

// IsValidType reports whether t is one of the declared types.
func IsValidType(t Type) bool {
	return t >= NullType && t <= BinaryType
}
