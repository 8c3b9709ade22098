package schema

import (
	"fmt"

	"flexdb/pkg/primitives"
	"flexdb/pkg/types"
)

// ColumnMetadata represents the engine-facing description of a single column.
type ColumnMetadata struct {
	Name       string                // Column name
	FieldType  types.Type            // Value type the column decodes to
	Position   primitives.ColumnID   // Column position in tuple (0-indexed)
	Nullable   bool                  // Whether decoding can yield NULL
	FileNumber primitives.FileNumber // Table this column belongs to
}

// NewColumnMetadata creates a new ColumnMetadata instance.
func NewColumnMetadata(name string, fieldType types.Type, position primitives.ColumnID, fileNumber primitives.FileNumber, nullable bool) (*ColumnMetadata, error) {
	if name == "" {
		return nil, fmt.Errorf("column name cannot be empty")
	}

	if !types.IsValidType(fieldType) {
		return nil, fmt.Errorf("invalid field type %d for column '%s'", fieldType, name)
	}

	if fieldType == types.NullType {
		nullable = true
	}

	return &ColumnMetadata{
		Name:       name,
		FieldType:  fieldType,
		Position:   position,
		Nullable:   nullable,
		FileNumber: fileNumber,
	}, nil
}

func (c ColumnMetadata) String() string {
	null := "NOT NULL"
	if c.Nullable {
		null = "NULL"
	}
	return fmt.Sprintf("%s %s %s", c.Name, c.FieldType.SQLName(), null)
}
