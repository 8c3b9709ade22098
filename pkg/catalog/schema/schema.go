package schema

import (
	"fmt"
	"slices"
	"strings"

	"flexdb/pkg/primitives"
	"flexdb/pkg/tuple"
	"flexdb/pkg/types"
)

// Schema is the engine-facing view of a table: ordered column names and
// value types. Index metadata is not part of it.
type Schema struct {
	TupleDesc  *tuple.TupleDescription
	FileNumber primitives.FileNumber
	TableName  string

	// Column metadata
	Columns []ColumnMetadata

	// Fast lookup index, keyed by case-folded name
	fieldNameToIndex map[string]int
}

// NewSchema creates a new Schema from column metadata.
func NewSchema(fileNumber primitives.FileNumber, tableName string, columns []ColumnMetadata) (*Schema, error) {
	if tableName == "" {
		return nil, fmt.Errorf("schema must have a table name")
	}

	sortedCols := slices.Clone(columns)
	slices.SortFunc(sortedCols, func(a, b ColumnMetadata) int {
		return int(a.Position) - int(b.Position)
	})

	fieldTypes := make([]types.Type, len(sortedCols))
	fieldNames := make([]string, len(sortedCols))
	fieldNameToIndex := make(map[string]int, len(sortedCols))

	for i, col := range sortedCols {
		fieldTypes[i] = col.FieldType
		fieldNames[i] = col.Name

		key := primitives.Fold(col.Name)
		if _, dup := fieldNameToIndex[key]; !dup {
			fieldNameToIndex[key] = i
		}
	}

	tupleDesc, err := tuple.NewTupleDesc(fieldTypes, fieldNames)
	if err != nil {
		return nil, fmt.Errorf("failed to create tuple description: %w", err)
	}

	return &Schema{
		TupleDesc:        tupleDesc,
		FileNumber:       fileNumber,
		TableName:        tableName,
		Columns:          sortedCols,
		fieldNameToIndex: fieldNameToIndex,
	}, nil
}

// GetFieldIndex returns the field index for a given field name, compared
// case-insensitively. Returns -1 if the field doesn't exist.
func (s *Schema) GetFieldIndex(fieldName string) int {
	if idx, ok := s.fieldNameToIndex[primitives.Fold(fieldName)]; ok {
		return idx
	}
	return -1
}

// HasColumn returns true if the schema contains a column with the given name.
func (s *Schema) HasColumn(fieldName string) bool {
	return s.GetFieldIndex(fieldName) >= 0
}

// GetColumnMetadata returns the metadata for a column by name.
// Returns nil if the column doesn't exist.
func (s *Schema) GetColumnMetadata(fieldName string) *ColumnMetadata {
	idx := s.GetFieldIndex(fieldName)
	if idx < 0 {
		return nil
	}
	return &s.Columns[idx]
}

// GetColumnMetadataByIndex returns the metadata for a column by its position index.
// Returns nil if the index is out of bounds.
func (s *Schema) GetColumnMetadataByIndex(index int) *ColumnMetadata {
	if index < 0 || index >= len(s.Columns) {
		return nil
	}
	return &s.Columns[index]
}

// NumFields returns the number of fields in the schema.
func (s *Schema) NumFields() int {
	return len(s.Columns)
}

// FieldNames returns a slice of all field names in order.
func (s *Schema) FieldNames() []string {
	names := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		names[i] = col.Name
	}
	return names
}

// FieldTypes returns a slice of all field types in order.
func (s *Schema) FieldTypes() []types.Type {
	fieldTypes := make([]types.Type, len(s.Columns))
	for i, col := range s.Columns {
		fieldTypes[i] = col.FieldType
	}
	return fieldTypes
}

// String renders the schema as a CREATE TABLE statement.
func (s *Schema) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "CREATE TABLE %s (", s.TableName)
	for i, col := range s.Columns {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString("\n  ")
		b.WriteString(col.String())
	}
	b.WriteString("\n);")
	return b.String()
}
