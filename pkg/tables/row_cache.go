package tables

import (
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"flexdb/pkg/primitives"
	"flexdb/pkg/tuple"
)

// CacheStats is a point-in-time view of a cache's counters.
type CacheStats struct {
	Hits    int64
	Misses  int64
	Entries int
}

// RowCache maps record numbers to decoded rows. It only grows.
//
// Readers share the lock. A miss decodes outside any lock and then takes the
// write lock just long enough to insert; concurrent misses on the same record
// share one decode.
type RowCache struct {
	rows   map[primitives.RecordNumber]*tuple.Tuple
	group  singleflight.Group
	hits   atomic.Int64
	misses atomic.Int64
	mutex  sync.RWMutex
}

// NewRowCache creates an empty cache.
func NewRowCache() *RowCache {
	return &RowCache{rows: make(map[primitives.RecordNumber]*tuple.Tuple)}
}

// Get returns the cached row for n.
func (c *RowCache) Get(n primitives.RecordNumber) (*tuple.Tuple, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	row, ok := c.rows[n]
	if ok {
		c.hits.Add(1)
	}
	return row, ok
}

// Load returns the cached row for n, decoding and inserting it on a miss.
// Failed decodes are not cached.
func (c *RowCache) Load(n primitives.RecordNumber, decode func() (*tuple.Tuple, error)) (*tuple.Tuple, error) {
	if row, ok := c.Get(n); ok {
		return row, nil
	}
	c.misses.Add(1)

	v, err, _ := c.group.Do(strconv.FormatUint(uint64(n), 10), func() (any, error) {
		row, err := decode()
		if err != nil {
			return nil, err
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()
		if existing, ok := c.rows[n]; ok {
			return existing, nil
		}
		c.rows[n] = row
		return row, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*tuple.Tuple), nil
}

// Len returns the number of cached rows.
func (c *RowCache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.rows)
}

// Snapshot returns the cached rows ordered by record number.
func (c *RowCache) Snapshot() []*tuple.Tuple {
	c.mutex.RLock()
	rows := make([]*tuple.Tuple, 0, len(c.rows))
	for _, row := range c.rows {
		rows = append(rows, row)
	}
	c.mutex.RUnlock()

	slices.SortFunc(rows, func(a, b *tuple.Tuple) int {
		return int(a.RecordID) - int(b.RecordID)
	})
	return rows
}

// Stats returns the cache counters.
func (c *RowCache) Stats() CacheStats {
	return CacheStats{
		Hits:    c.hits.Load(),
		Misses:  c.misses.Load(),
		Entries: c.Len(),
	}
}
