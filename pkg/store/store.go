// Package store exposes a Database through the narrow read contract a SQL
// execution engine consumes: schema lookup by table name and keyed row scans.
package store

import (
	"context"

	"flexdb/pkg/catalog/schema"
	"flexdb/pkg/primitives"
	"flexdb/pkg/tuple"
)

// Version identifies the storage adapter to engines that ask for it.
const Version = "flexdb 0.1.0"

// Store is the read side of the engine contract. Both operations may be
// called concurrently for different tables.
type Store interface {
	// FetchSchema returns the schema of the named table, or (nil, nil) when
	// no such table can be loaded.
	FetchSchema(ctx context.Context, tableName string) (*schema.Schema, error)

	// ScanData returns every row of the named table keyed by record number.
	ScanData(ctx context.Context, tableName string) (*RowIterator, error)
}

// KeyedRow pairs a row with the record number it was read from.
type KeyedRow struct {
	Key primitives.RecordNumber
	Row *tuple.Tuple
}

// StoreMut is the write side of the engine contract.
type StoreMut interface {
	InsertSchema(ctx context.Context, s *schema.Schema) error
	DeleteSchema(ctx context.Context, tableName string) error
	AppendData(ctx context.Context, tableName string, rows []*tuple.Tuple) error
	InsertData(ctx context.Context, tableName string, rows []KeyedRow) error
	UpdateData(ctx context.Context, tableName string, rows []KeyedRow) error
	DeleteData(ctx context.Context, tableName string, keys []primitives.RecordNumber) error
}

// AlterTable covers schema changes on existing tables.
type AlterTable interface {
	RenameSchema(ctx context.Context, tableName, newName string) error
	RenameColumn(ctx context.Context, tableName, oldName, newName string) error
	AddColumn(ctx context.Context, tableName string, column schema.ColumnMetadata) error
	DropColumn(ctx context.Context, tableName, columnName string, ifExists bool) error
}

// Index covers secondary index scans and maintenance.
type Index interface {
	ScanIndexedData(ctx context.Context, tableName, indexName string, asc bool) (*RowIterator, error)
	CreateIndex(ctx context.Context, tableName, indexName, column string) error
	DropIndex(ctx context.Context, tableName, indexName string) error
}

// Transaction covers explicit transaction control.
type Transaction interface {
	Begin(ctx context.Context, autocommit bool) (bool, error)
	Rollback(ctx context.Context) error
	Commit(ctx context.Context) error
}

// Metadata describes the store itself.
type Metadata interface {
	Version(ctx context.Context) string
	SchemaNames(ctx context.Context) ([]string, error)
}
