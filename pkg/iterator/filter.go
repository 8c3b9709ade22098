package iterator

import (
	"fmt"

	"flexdb/pkg/tuple"
)

// FilterIterator yields only the child tuples accepted by a predicate.
type FilterIterator struct {
	base      *BaseIterator
	child     DbIterator
	predicate func(*tuple.Tuple) (bool, error)
}

// NewFilterIterator wraps child. The child is opened and closed with the filter.
func NewFilterIterator(child DbIterator, predicate func(*tuple.Tuple) (bool, error)) (*FilterIterator, error) {
	if child == nil {
		return nil, fmt.Errorf("child iterator cannot be nil")
	}
	if predicate == nil {
		return nil, fmt.Errorf("predicate cannot be nil")
	}

	f := &FilterIterator{child: child, predicate: predicate}
	f.base = NewBaseIterator(f.readNext)
	return f, nil
}

func (f *FilterIterator) readNext() (*tuple.Tuple, error) {
	for {
		hasNext, err := f.child.HasNext()
		if err != nil {
			return nil, err
		}
		if !hasNext {
			return nil, nil
		}

		t, err := f.child.Next()
		if err != nil {
			return nil, err
		}

		ok, err := f.predicate(t)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", t.RecordID, err)
		}
		if ok {
			return t, nil
		}
	}
}

// Open opens the child operator and marks this operator as ready.
func (f *FilterIterator) Open() error {
	if err := f.child.Open(); err != nil {
		return fmt.Errorf("failed to open child iterator: %w", err)
	}
	f.base.MarkOpened()
	return nil
}

// Close closes the child operator and releases resources.
func (f *FilterIterator) Close() error {
	if err := f.child.Close(); err != nil {
		return err
	}
	return f.base.Close()
}

// Rewind resets both the child iterator and the lookahead cache.
func (f *FilterIterator) Rewind() error {
	if err := f.child.Rewind(); err != nil {
		return fmt.Errorf("failed to rewind child iterator: %w", err)
	}
	return f.base.Rewind()
}

func (f *FilterIterator) HasNext() (bool, error) {
	return f.base.HasNext()
}

func (f *FilterIterator) Next() (*tuple.Tuple, error) {
	return f.base.Next()
}

// GetTupleDesc returns the child's tuple description.
func (f *FilterIterator) GetTupleDesc() *tuple.TupleDescription {
	return f.child.GetTupleDesc()
}
