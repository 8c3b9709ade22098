package tables

import (
	"flexdb/pkg/iterator"
	"flexdb/pkg/tuple"
)

// TableIterator walks records 0 through RecordCount-1 in order.
// It implements iterator.DbIterator.
type TableIterator struct {
	base  *iterator.BaseIterator
	table *Table
	next  int64
}

// NewTableIterator creates a closed iterator over t.
func NewTableIterator(t *Table) *TableIterator {
	it := &TableIterator{table: t}
	it.base = iterator.NewBaseIterator(it.readNext)
	return it
}

func (it *TableIterator) readNext() (*tuple.Tuple, error) {
	if it.next >= it.table.RecordCount() {
		return nil, nil
	}
	row, err := it.table.NthRecord(it.next)
	if err != nil {
		return nil, err
	}
	it.next++
	return row, nil
}

// Open positions the iterator at record 0.
func (it *TableIterator) Open() error {
	it.next = 0
	it.base.MarkOpened()
	return nil
}

// Rewind restarts from record 0.
func (it *TableIterator) Rewind() error {
	it.next = 0
	return it.base.Rewind()
}

func (it *TableIterator) Close() error {
	return it.base.Close()
}

func (it *TableIterator) HasNext() (bool, error) {
	return it.base.HasNext()
}

func (it *TableIterator) Next() (*tuple.Tuple, error) {
	return it.base.Next()
}

// GetTupleDesc returns the table's tuple description.
func (it *TableIterator) GetTupleDesc() *tuple.TupleDescription {
	return it.table.TupleDesc()
}

var _ iterator.DbIterator = (*TableIterator)(nil)
