package tuple

import (
	"fmt"
	"strings"

	"flexdb/pkg/primitives"
	"flexdb/pkg/types"
)

const operatorChars = "=<>!~"

// Filter is a single "column op constant" condition evaluated against tuples,
// e.g. `BALANCE >= 100`, `NAME like acme` or `CREATED < 2020-01-01`.
type Filter struct {
	Column int
	Name   string
	Op     primitives.Predicate
	Value  types.Field
}

// ParseFilter parses expr against td. The constant is converted to the
// column's type; surrounding single or double quotes are removed.
func ParseFilter(td *TupleDescription, expr string) (*Filter, error) {
	left, opToken, right, err := splitCondition(expr)
	if err != nil {
		return nil, err
	}

	op, ok := primitives.ParsePredicate(opToken)
	if !ok {
		return nil, fmt.Errorf("unknown operator %q in %q", opToken, expr)
	}

	col, err := td.FindFieldIndex(left)
	if err != nil {
		return nil, err
	}
	colType, _ := td.TypeAtIndex(col)
	if colType == types.BinaryType {
		return nil, fmt.Errorf("column %s holds binary data and cannot be filtered", left)
	}

	value, err := types.ParseConstant(colType, unquote(right))
	if err != nil {
		return nil, fmt.Errorf("column %s: %w", left, err)
	}

	name, _ := td.GetFieldName(col)
	return &Filter{Column: col, Name: name, Op: op, Value: value}, nil
}

// Match evaluates the condition against t.
func (f *Filter) Match(t *Tuple) (bool, error) {
	field, err := t.GetField(f.Column)
	if err != nil {
		return false, err
	}
	if field == nil {
		return false, nil
	}
	return field.Compare(f.Op, f.Value)
}

func (f *Filter) String() string {
	return fmt.Sprintf("%s %s %s", f.Name, f.Op, f.Value)
}

func splitCondition(expr string) (left, op, right string, err error) {
	if idx := strings.Index(strings.ToUpper(expr), " LIKE "); idx >= 0 {
		left, right = expr[:idx], expr[idx+len(" LIKE "):]
		op = "LIKE"
	} else {
		start := strings.IndexAny(expr, operatorChars)
		if start < 0 {
			return "", "", "", fmt.Errorf("no operator in condition %q", expr)
		}
		end := start
		for end < len(expr) && strings.IndexByte(operatorChars, expr[end]) >= 0 {
			end++
		}
		left, op, right = expr[:start], expr[start:end], expr[end:]
	}

	left, right = strings.TrimSpace(left), strings.TrimSpace(right)
	if left == "" || right == "" {
		return "", "", "", fmt.Errorf("incomplete condition %q", expr)
	}
	return left, op, right, nil
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '\'' && s[len(s)-1] == '\'') || (s[0] == '"' && s[len(s)-1] == '"') {
			return s[1 : len(s)-1]
		}
	}
	return s
}
