package iterator

import "flexdb/pkg/tuple"

// TupleIterator is a minimal interface that captures the common iteration methods
// shared by both DbIterator and DbFileIterator. This allows writing generic
// utility functions that work with any iterator type.
type TupleIterator interface {
	// HasNext checks if there are more tuples available without consuming them.
	HasNext() (bool, error)

	// Next retrieves and returns the next tuple from the iterator.
	Next() (*tuple.Tuple, error)
}

// DbFileIterator defines the interface for iterating over the records of one table file.
//
// DbFileIterator extends TupleIterator with lifecycle methods but does not include
// schema information (GetTupleDesc), as that is managed at a higher level.
type DbFileIterator interface {
	TupleIterator

	// Open prepares the iterator for use by initializing internal state and resources.
	// This method must be called before any other iterator operations.
	Open() error

	// Rewind resets the iterator to the beginning of the tuple sequence.
	// After calling Rewind(), the iterator behaves as if it was just opened.
	Rewind() error

	// Close releases any resources held by the iterator and marks it as closed.
	// After calling Close(), the iterator should not be used until Open() is called again.
	Close() error
}

// DbIterator is a DbFileIterator that also knows the shape of the tuples it produces.
type DbIterator interface {
	DbFileIterator

	// GetTupleDesc returns the schema description for tuples produced by this iterator.
	// This method can be called regardless of iterator state.
	GetTupleDesc() *tuple.TupleDescription
}
