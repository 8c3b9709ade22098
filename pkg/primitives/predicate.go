package primitives

import "strings"

// Predicate is a comparison operator used when filtering rows.
type Predicate int

const (
	Equals Predicate = iota
	LessThan
	GreaterThan
	LessThanOrEqual
	GreaterThanOrEqual
	NotEqual
	Like
)

func (p Predicate) String() string {
	switch p {
	case Equals:
		return "="

	case LessThan:
		return "<"

	case GreaterThan:
		return ">"

	case LessThanOrEqual:
		return "<="

	case GreaterThanOrEqual:
		return ">="

	case NotEqual:
		return "!="

	case Like:
		return "LIKE"

	default:
		return "UNKNOWN"
	}
}

// ParsePredicate maps an operator token to a Predicate. Both "!=" and "<>"
// mean NotEqual, "==" is accepted for Equals and LIKE is case-insensitive.
func ParsePredicate(token string) (Predicate, bool) {
	switch strings.ToUpper(strings.TrimSpace(token)) {
	case "=", "==":
		return Equals, true
	case "<":
		return LessThan, true
	case ">":
		return GreaterThan, true
	case "<=":
		return LessThanOrEqual, true
	case ">=":
		return GreaterThanOrEqual, true
	case "!=", "<>":
		return NotEqual, true
	case "LIKE", "~":
		return Like, true
	default:
		return 0, false
	}
}
