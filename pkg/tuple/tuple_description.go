package tuple

import (
	"fmt"
	"strings"

	"flexdb/pkg/primitives"
	"flexdb/pkg/types"
)

// TupleDescription describes the shape of a decoded record: the engine type
// and name of each column in on-disk order.
type TupleDescription struct {
	// Types contains the data type of each field in order
	Types []types.Type
	// FieldNames contains the name of each field (optional, may be nil)
	FieldNames []string
}

// NewTupleDesc creates a new TupleDescription given field types and optional field names.
// If fieldNames is nil, fields will have no names.
//
// Parameters:
//   - fieldTypes: slice of field types
//   - fieldNames: optional slice of field names (must match fieldTypes length if provided)
//
// Returns:
//   - *TupleDescription: newly created tuple descriptor
//   - error: if fieldNames length doesn't match fieldTypes length
func NewTupleDesc(fieldTypes []types.Type, fieldNames []string) (*TupleDescription, error) {
	typesCopy := make([]types.Type, len(fieldTypes))
	copy(typesCopy, fieldTypes)

	var namesCopy []string
	if fieldNames != nil {
		if len(fieldNames) != len(fieldTypes) {
			return nil, fmt.Errorf("field names length (%d) must match field types length (%d)",
				len(fieldNames), len(fieldTypes))
		}
		namesCopy = make([]string, len(fieldNames))
		copy(namesCopy, fieldNames)
	}

	return &TupleDescription{
		Types:      typesCopy,
		FieldNames: namesCopy,
	}, nil
}

// NumFields returns the number of fields in this tuple descriptor.
func (td *TupleDescription) NumFields() int {
	return len(td.Types)
}

// GetFieldName returns the name of the ith field, or "" when no names were provided.
func (td *TupleDescription) GetFieldName(i int) (string, error) {
	if i < 0 || i >= len(td.Types) {
		return "", fmt.Errorf("field index %d out of bounds [0, %d)", i, len(td.Types))
	}

	if td.FieldNames == nil {
		return "", nil
	}

	return td.FieldNames[i], nil
}

// TypeAtIndex returns the type of the ith field.
func (td *TupleDescription) TypeAtIndex(i int) (types.Type, error) {
	if i < 0 || i >= len(td.Types) {
		return 0, fmt.Errorf("field index %d out of bounds [0, %d)", i, len(td.Types))
	}
	return td.Types[i], nil
}

// Equals checks if two TupleDescriptions have the same field types in the same order.
// Field names are not compared.
func (td *TupleDescription) Equals(other *TupleDescription) bool {
	if other == nil {
		return false
	}

	if len(td.Types) != len(other.Types) {
		return false
	}

	for i, fieldType := range td.Types {
		if fieldType != other.Types[i] {
			return false
		}
	}
	return true
}

// String returns a string representation of this TupleDescription.
// Format: "Type1(fieldName1),Type2(fieldName2),..."
// If a field has no name, "null" is used as the name.
func (td *TupleDescription) String() string {
	var parts []string

	for i, fieldType := range td.Types {
		var fieldName string
		if td.FieldNames != nil && i < len(td.FieldNames) {
			fieldName = td.FieldNames[i]
		} else {
			fieldName = "null"
		}

		part := fmt.Sprintf("%s(%s)", fieldType.String(), fieldName)
		parts = append(parts, part)
	}

	return strings.Join(parts, ",")
}

// FindFieldIndex locates a field by name. Column names in tag files are
// usually upper case, so the match ignores case.
func (td *TupleDescription) FindFieldIndex(fieldName string) (int, error) {
	for i := 0; i < td.NumFields(); i++ {
		name, _ := td.GetFieldName(i)
		if primitives.FoldEqual(name, fieldName) {
			return i, nil
		}
	}
	return -1, fmt.Errorf("column %s not found", fieldName)
}
