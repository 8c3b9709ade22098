package store

import (
	"context"

	"flexdb/pkg/iterator"
	"flexdb/pkg/primitives"
	"flexdb/pkg/tuple"
)

// RowIterator yields (record number, row) pairs in record order.
//
//	it, err := s.ScanData(ctx, "customer")
//	...
//	defer it.Close()
//	for it.Next() {
//		use(it.Key(), it.Row())
//	}
//	if err := it.Err(); err != nil { ... }
//
// A decode failure ends the scan and is reported by Err. The iterator checks
// ctx between rows.
type RowIterator struct {
	ctx    context.Context
	source iterator.DbIterator
	row    *tuple.Tuple
	err    error
	done   bool
}

func newRowIterator(ctx context.Context, source iterator.DbIterator) (*RowIterator, error) {
	if err := source.Open(); err != nil {
		return nil, err
	}
	return &RowIterator{ctx: ctx, source: source}, nil
}

// Next advances to the next row and reports whether there is one.
func (it *RowIterator) Next() bool {
	if it.done {
		return false
	}
	if err := it.ctx.Err(); err != nil {
		return it.fail(err)
	}

	ok, err := it.source.HasNext()
	if err != nil {
		return it.fail(err)
	}
	if !ok {
		it.row = nil
		it.done = true
		return false
	}

	row, err := it.source.Next()
	if err != nil {
		return it.fail(err)
	}
	it.row = row
	return true
}

// Key returns the record number of the current row.
func (it *RowIterator) Key() primitives.RecordNumber {
	if it.row == nil {
		return 0
	}
	return it.row.RecordID
}

// Row returns the current row. It is a copy the caller may keep.
func (it *RowIterator) Row() *tuple.Tuple {
	return it.row
}

// Err returns the error that ended the scan, if any.
func (it *RowIterator) Err() error {
	return it.err
}

// Close releases the iterator. It is safe to call more than once.
func (it *RowIterator) Close() error {
	it.done = true
	it.row = nil
	return it.source.Close()
}

// Collect drains the iterator into keyed rows and closes it.
func (it *RowIterator) Collect() ([]KeyedRow, error) {
	defer it.Close()

	var rows []KeyedRow
	for it.Next() {
		rows = append(rows, KeyedRow{Key: it.Key(), Row: it.Row()})
	}
	return rows, it.Err()
}

func (it *RowIterator) fail(err error) bool {
	it.err = err
	it.row = nil
	it.done = true
	return false
}
