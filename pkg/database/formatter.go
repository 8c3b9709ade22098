package database

import (
	"fmt"

	"flexdb/pkg/catalog/schema"
	"flexdb/pkg/tuple"
)

// QueryResult is a table of strings ready for display.
type QueryResult struct {
	Columns []string
	Rows    [][]string
	Message string
}

// ResultFormatter renders decoded records and schemas as QueryResults.
type ResultFormatter struct {
	// WithRecordNumber prepends a "#" column holding each row's record number.
	WithRecordNumber bool
}

// NewResultFormatter creates a new instance of ResultFormatter
func NewResultFormatter() *ResultFormatter {
	return &ResultFormatter{}
}

// FormatRows converts tuples to display rows. Missing fields render as NULL.
func (f *ResultFormatter) FormatRows(td *tuple.TupleDescription, tuples []*tuple.Tuple) QueryResult {
	if td == nil {
		return QueryResult{
			Message: "no rows",
			Rows:    [][]string{},
		}
	}

	numFields := td.NumFields()
	columns := make([]string, 0, numFields+1)
	if f.WithRecordNumber {
		columns = append(columns, "#")
	}
	for i := range numFields {
		name, _ := td.GetFieldName(i)
		if name == "" {
			name = fmt.Sprintf("Column%d", i+1)
		}
		columns = append(columns, name)
	}

	rows := make([][]string, 0, len(tuples))
	for _, t := range tuples {
		row := make([]string, 0, len(columns))
		if f.WithRecordNumber {
			row = append(row, fmt.Sprintf("%d", t.RecordID))
		}
		for i := range numFields {
			field, err := t.GetField(i)
			if err != nil || field == nil {
				row = append(row, "NULL")
			} else {
				row = append(row, field.String())
			}
		}
		rows = append(rows, row)
	}

	return QueryResult{
		Columns: columns,
		Rows:    rows,
		Message: fmt.Sprintf("%d row(s) returned", len(rows)),
	}
}

// FormatSchema lists a table's columns with their SQL types.
func (f *ResultFormatter) FormatSchema(s *schema.Schema) QueryResult {
	rows := make([][]string, 0, len(s.Columns))
	for _, col := range s.Columns {
		nullable := "NO"
		if col.Nullable {
			nullable = "YES"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", col.Position),
			col.Name,
			col.FieldType.SQLName(),
			nullable,
		})
	}
	return QueryResult{
		Columns: []string{"#", "COLUMN", "TYPE", "NULLABLE"},
		Rows:    rows,
		Message: fmt.Sprintf("%d column(s)", len(rows)),
	}
}
