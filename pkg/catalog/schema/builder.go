package schema

import (
	"fmt"

	"flexdb/pkg/primitives"
	"flexdb/pkg/storage/dat"
	"flexdb/pkg/types"
)

// ColumnDef defines a column for schema building
type ColumnDef struct {
	Name     string
	Type     types.Type
	Nullable bool
}

// SchemaBuilder helps construct schemas with less boilerplate
type SchemaBuilder struct {
	fileNumber primitives.FileNumber
	tableName  string
	columns    []ColumnDef
}

// NewSchemaBuilder creates a new schema builder
func NewSchemaBuilder(fileNumber primitives.FileNumber, tableName string) *SchemaBuilder {
	return &SchemaBuilder{
		fileNumber: fileNumber,
		tableName:  tableName,
		columns:    make([]ColumnDef, 0),
	}
}

// AddColumn adds a column that never decodes to NULL
func (sb *SchemaBuilder) AddColumn(name string, fieldType types.Type) *SchemaBuilder {
	sb.columns = append(sb.columns, ColumnDef{Name: name, Type: fieldType})
	return sb
}

// AddNullableColumn adds a column that may decode to NULL
func (sb *SchemaBuilder) AddNullableColumn(name string, fieldType types.Type) *SchemaBuilder {
	sb.columns = append(sb.columns, ColumnDef{Name: name, Type: fieldType, Nullable: true})
	return sb
}

// Build constructs the schema
func (sb *SchemaBuilder) Build() (*Schema, error) {
	columns := make([]ColumnMetadata, 0, len(sb.columns))

	for i, colDef := range sb.columns {
		col, err := NewColumnMetadata(
			colDef.Name,
			colDef.Type,
			primitives.ColumnID(i), // #nosec G115
			sb.fileNumber,
			colDef.Nullable,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create column metadata: %w", err)
		}
		columns = append(columns, *col)
	}

	sch, err := NewSchema(sb.fileNumber, sb.tableName, columns)
	if err != nil {
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return sch, nil
}

// FromHeader builds the schema of a decoded table. Date columns are nullable
// because empty dates decode to NULL; binary columns always decode to NULL.
// Columns without a name get their synthesized Column{n} name.
func FromHeader(fileNumber primitives.FileNumber, tableName string, h *dat.Header) (*Schema, error) {
	builder := NewSchemaBuilder(fileNumber, tableName)
	names := dat.ColumnNames(len(h.Columns), nil)

	for i, col := range h.Columns {
		name := col.Name
		if name == "" {
			name = names[i]
		}

		fieldType := col.DataType.EngineType()
		switch col.DataType {
		case dat.DataTypeDate, dat.DataTypeBinary, dat.DataTypeUnknown:
			builder.AddNullableColumn(name, fieldType)
		default:
			builder.AddColumn(name, fieldType)
		}
	}
	return builder.Build()
}
