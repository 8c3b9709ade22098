package store

import (
	"context"
	"log/slog"

	"flexdb/pkg/catalog/schema"
	"flexdb/pkg/database"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/iterator"
	"flexdb/pkg/logging"
	"flexdb/pkg/primitives"
	"flexdb/pkg/tuple"
)

// DatabaseStore serves the engine contract from an open Database.
// Only the read operations and Metadata do any work; everything that would
// modify the files reports NotSupported.
type DatabaseStore struct {
	db  *database.Database
	log *slog.Logger
}

var (
	_ Store       = (*DatabaseStore)(nil)
	_ StoreMut    = (*DatabaseStore)(nil)
	_ AlterTable  = (*DatabaseStore)(nil)
	_ Index       = (*DatabaseStore)(nil)
	_ Transaction = (*DatabaseStore)(nil)
	_ Metadata    = (*DatabaseStore)(nil)
)

// NewDatabaseStore wraps db. The store does not own db; closing it is the
// caller's job.
func NewDatabaseStore(db *database.Database) *DatabaseStore {
	return &DatabaseStore{
		db:  db,
		log: logging.WithComponent("store"),
	}
}

// Database returns the wrapped database.
func (s *DatabaseStore) Database() *database.Database {
	return s.db
}

// FetchSchema returns the schema of tableName, matched against registry root
// names and aliases. An absent or unloadable table yields (nil, nil).
func (s *DatabaseStore) FetchSchema(ctx context.Context, tableName string) (*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.db.TableByName(tableName)
	if err != nil {
		if dberr.IsNotFound(err) {
			s.log.Debug("schema not found", "table", tableName)
			return nil, nil
		}
		return nil, err
	}
	return table.Schema(), nil
}

// ScanData opens a keyed scan over every record of tableName. Unlike
// FetchSchema, an absent table is an error.
func (s *DatabaseStore) ScanData(ctx context.Context, tableName string) (*RowIterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.db.TableByName(tableName)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeNotFound, "ScanData", "Store")
	}
	return newRowIterator(ctx, table.Iterator())
}

// ScanFiltered is ScanData restricted to the rows accepted by match.
// Rows are still yielded in record order with their record numbers as keys.
func (s *DatabaseStore) ScanFiltered(ctx context.Context, tableName string, match func(*tuple.Tuple) (bool, error)) (*RowIterator, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.db.TableByName(tableName)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeNotFound, "ScanFiltered", "Store")
	}

	filtered, err := iterator.NewFilterIterator(table.Iterator(), match)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeInternal, "ScanFiltered", "Store")
	}
	return newRowIterator(ctx, filtered)
}

// ScanPage reads one page of the rows accepted by match (all rows when match
// is nil): it skips offset rows and returns at most limit of the rest, or all
// of them when limit is not positive.
func (s *DatabaseStore) ScanPage(ctx context.Context, tableName string, match func(*tuple.Tuple) (bool, error), offset, limit int) ([]KeyedRow, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	table, err := s.db.TableByName(tableName)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeNotFound, "ScanPage", "Store")
	}

	var source iterator.DbIterator = table.Iterator()
	if match != nil {
		if source, err = iterator.NewFilterIterator(source, match); err != nil {
			return nil, dberr.Wrap(err, dberr.CodeInternal, "ScanPage", "Store")
		}
	}
	if err := source.Open(); err != nil {
		return nil, err
	}
	defer source.Close()

	if _, err := iterator.Skip(ctx, source, offset); err != nil {
		return nil, err
	}
	var rows []*tuple.Tuple
	if limit > 0 {
		rows, err = iterator.Take(ctx, source, limit)
	} else {
		rows, err = iterator.Collect(ctx, source)
	}
	if err != nil {
		return nil, err
	}

	page := make([]KeyedRow, len(rows))
	for i, row := range rows {
		page[i] = KeyedRow{Key: row.RecordID, Row: row}
	}
	return page, nil
}

// Version reports the adapter version.
func (s *DatabaseStore) Version(context.Context) string {
	return Version
}

// SchemaNames lists the names of every table that loads, in registry order.
func (s *DatabaseStore) SchemaNames(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tbls := s.db.Tables()
	names := make([]string, len(tbls))
	for i, t := range tbls {
		names[i] = t.Name()
	}
	return names, nil
}

func (s *DatabaseStore) InsertSchema(_ context.Context, sch *schema.Schema) error {
	name := ""
	if sch != nil {
		name = sch.TableName
	}
	return notSupported("InsertSchema", name)
}

func (s *DatabaseStore) DeleteSchema(_ context.Context, tableName string) error {
	return notSupported("DeleteSchema", tableName)
}

func (s *DatabaseStore) AppendData(_ context.Context, tableName string, _ []*tuple.Tuple) error {
	return notSupported("AppendData", tableName)
}

func (s *DatabaseStore) InsertData(_ context.Context, tableName string, _ []KeyedRow) error {
	return notSupported("InsertData", tableName)
}

func (s *DatabaseStore) UpdateData(_ context.Context, tableName string, _ []KeyedRow) error {
	return notSupported("UpdateData", tableName)
}

func (s *DatabaseStore) DeleteData(_ context.Context, tableName string, _ []primitives.RecordNumber) error {
	return notSupported("DeleteData", tableName)
}

func (s *DatabaseStore) RenameSchema(_ context.Context, tableName, _ string) error {
	return notSupported("RenameSchema", tableName)
}

func (s *DatabaseStore) RenameColumn(_ context.Context, tableName, _, _ string) error {
	return notSupported("RenameColumn", tableName)
}

func (s *DatabaseStore) AddColumn(_ context.Context, tableName string, _ schema.ColumnMetadata) error {
	return notSupported("AddColumn", tableName)
}

func (s *DatabaseStore) DropColumn(_ context.Context, tableName, _ string, _ bool) error {
	return notSupported("DropColumn", tableName)
}

// ScanIndexedData is not supported: index metadata is decoded but never
// used to order or filter rows.
func (s *DatabaseStore) ScanIndexedData(_ context.Context, tableName, _ string, _ bool) (*RowIterator, error) {
	return nil, notSupported("ScanIndexedData", tableName)
}

func (s *DatabaseStore) CreateIndex(_ context.Context, tableName, _, _ string) error {
	return notSupported("CreateIndex", tableName)
}

func (s *DatabaseStore) DropIndex(_ context.Context, tableName, _ string) error {
	return notSupported("DropIndex", tableName)
}

func (s *DatabaseStore) Begin(context.Context, bool) (bool, error) {
	return false, notSupported("Begin", "")
}

func (s *DatabaseStore) Rollback(context.Context) error {
	return notSupported("Rollback", "")
}

func (s *DatabaseStore) Commit(context.Context) error {
	return notSupported("Commit", "")
}

func notSupported(op, tableName string) error {
	err := dberr.NotSupported("%s is not supported by a read-only store", op).At(op, "Store")
	if tableName != "" {
		err = err.WithDetail("table %s", tableName)
	}
	return err
}
