// Package tablecache holds the tables a database has opened, keyed by
// registry file number.
package tablecache

import (
	"maps"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	dberr "flexdb/pkg/error"
	"flexdb/pkg/logging"
	"flexdb/pkg/primitives"
)

// CachedTable is the part of a table the cache relies on.
type CachedTable interface {
	Number() primitives.FileNumber
	Close() error
}

// LoadFunc opens the table for a file number.
type LoadFunc[T CachedTable] func(primitives.FileNumber) (T, error)

// Stats is a point-in-time view of the cache counters.
type Stats struct {
	Hits     int64
	Misses   int64
	Entries  int
	Failures int
}

// cacheMetrics tracks cache performance for observability
type cacheMetrics struct {
	hits   atomic.Int64
	misses atomic.Int64
}

// TableCache is a grow-only cache of opened tables.
//
// Design:
//   - Lookups of cached tables share a read lock
//   - A miss opens the table with no lock held, then inserts under the write lock
//   - Concurrent misses for the same number share one open
//   - A table whose bytes failed to decode is remembered and not retried;
//     IO and missing-file errors are returned to the caller only
//   - Nothing is evicted; Clear closes everything
type TableCache[T CachedTable] struct {
	tables   map[primitives.FileNumber]T
	failures map[primitives.FileNumber]error
	group    singleflight.Group
	metrics  cacheMetrics
	mutex    sync.RWMutex
}

// NewTableCache creates a new empty TableCache instance.
func NewTableCache[T CachedTable]() *TableCache[T] {
	return &TableCache[T]{
		tables:   make(map[primitives.FileNumber]T),
		failures: make(map[primitives.FileNumber]error),
	}
}

// Get returns the cached table for number without loading it.
func (tc *TableCache[T]) Get(number primitives.FileNumber) (T, bool) {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()

	t, ok := tc.tables[number]
	return t, ok
}

// GetOrLoad returns the cached table for number, calling load on a miss.
// Format and decoding failures are remembered and returned by later calls;
// any other load error is retried on the next call.
func (tc *TableCache[T]) GetOrLoad(number primitives.FileNumber, load LoadFunc[T]) (T, error) {
	var zero T

	tc.mutex.RLock()
	t, ok := tc.tables[number]
	failure := tc.failures[number]
	tc.mutex.RUnlock()

	if ok {
		tc.metrics.hits.Add(1)
		return t, nil
	}
	if failure != nil {
		tc.metrics.hits.Add(1)
		return zero, failure
	}
	tc.metrics.misses.Add(1)

	v, err, _ := tc.group.Do(strconv.FormatUint(uint64(number), 10), func() (any, error) {
		loaded, err := load(number)

		tc.mutex.Lock()
		defer tc.mutex.Unlock()

		if existing, ok := tc.tables[number]; ok {
			if err == nil {
				logging.WithComponent("tablecache").Debug("insert lost race", "file_number", uint32(number))
				loaded.Close()
			}
			return existing, nil
		}
		if err != nil {
			if remembered(err) {
				tc.failures[number] = err
			}
			return nil, err
		}
		tc.tables[number] = loaded
		return loaded, nil
	})
	if err != nil {
		return zero, err
	}
	return v.(T), nil
}

// remembered reports whether a load error describes the file's bytes, which
// do not change for the life of the cache.
func remembered(err error) bool {
	return dberr.IsFormat(err) || dberr.IsDecoding(err)
}

// Failure returns the remembered load error for number, if any.
func (tc *TableCache[T]) Failure(number primitives.FileNumber) error {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()
	return tc.failures[number]
}

// Failures returns a copy of every remembered load error.
func (tc *TableCache[T]) Failures() map[primitives.FileNumber]error {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()
	return maps.Clone(tc.failures)
}

// Numbers returns the file numbers of cached tables in ascending order.
func (tc *TableCache[T]) Numbers() []primitives.FileNumber {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()
	return slices.Sorted(maps.Keys(tc.tables))
}

// Tables returns the cached tables ordered by file number.
func (tc *TableCache[T]) Tables() []T {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()

	out := make([]T, 0, len(tc.tables))
	for _, n := range slices.Sorted(maps.Keys(tc.tables)) {
		out = append(out, tc.tables[n])
	}
	return out
}

// Len returns the number of cached tables.
func (tc *TableCache[T]) Len() int {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()
	return len(tc.tables)
}

// Stats returns the cache counters.
func (tc *TableCache[T]) Stats() Stats {
	tc.mutex.RLock()
	defer tc.mutex.RUnlock()
	return Stats{
		Hits:     tc.metrics.hits.Load(),
		Misses:   tc.metrics.misses.Load(),
		Entries:  len(tc.tables),
		Failures: len(tc.failures),
	}
}

// Clear closes and drops every cached table and forgets remembered failures.
// Close errors are logged; the first one is returned.
func (tc *TableCache[T]) Clear() error {
	tc.mutex.Lock()
	defer tc.mutex.Unlock()

	var firstErr error
	for number, t := range tc.tables {
		if err := t.Close(); err != nil {
			logging.WithFile(uint32(number)).Warn("failed to close table", "error", err)
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	clear(tc.tables)
	clear(tc.failures)
	return firstErr
}
