package iterator

import (
	"fmt"

	"flexdb/pkg/tuple"
)

// ReadNextFunc reads the next tuple from the underlying source.
// It returns (nil, nil) at the end of the data.
type ReadNextFunc func() (*tuple.Tuple, error)

// BaseIterator implements lookahead caching and open/close state for iterators.
// Concrete iterators supply a ReadNextFunc and embed or wrap a BaseIterator.
type BaseIterator struct {
	nextTuple    *tuple.Tuple // Cached next tuple for lookahead operations
	opened       bool         // Flag indicating if the iterator has been opened
	readNextFunc ReadNextFunc // Function to read the next tuple from the underlying source
}

// NewBaseIterator creates a new base iterator with the given readNext function.
// The iterator starts in a closed state and must be opened before use.
func NewBaseIterator(readNextFunc ReadNextFunc) *BaseIterator {
	return &BaseIterator{
		readNextFunc: readNextFunc,
	}
}

// HasNext checks if there is a next tuple available without consuming it.
func (it *BaseIterator) HasNext() (bool, error) {
	if !it.opened {
		return false, fmt.Errorf("iterator not opened")
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return false, err
		}
	}
	return it.nextTuple != nil, nil
}

// Next returns the next tuple and advances. A tuple cached by HasNext is
// returned first.
func (it *BaseIterator) Next() (*tuple.Tuple, error) {
	if !it.opened {
		return nil, fmt.Errorf("iterator not opened")
	}

	if it.nextTuple == nil {
		var err error
		it.nextTuple, err = it.readNextFunc()
		if err != nil {
			return nil, err
		}
		if it.nextTuple == nil {
			return nil, fmt.Errorf("no more tuples")
		}
	}

	result := it.nextTuple
	it.nextTuple = nil
	return result, nil
}

// Rewind drops the lookahead tuple. The owner resets its own read position.
func (it *BaseIterator) Rewind() error {
	if !it.opened {
		return fmt.Errorf("iterator not opened")
	}
	it.nextTuple = nil
	return nil
}

// Close clears any cached tuple and marks the iterator closed.
func (it *BaseIterator) Close() error {
	it.nextTuple = nil
	it.opened = false
	return nil
}

// MarkOpened marks the iterator as opened and ready for use.
func (it *BaseIterator) MarkOpened() {
	it.opened = true
	it.nextTuple = nil
}

// IsOpen reports whether MarkOpened was called since the last Close.
func (it *BaseIterator) IsOpen() bool {
	return it.opened
}
