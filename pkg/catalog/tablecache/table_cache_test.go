package tablecache

import (
	"errors"
	"reflect"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	dberr "flexdb/pkg/error"
	"flexdb/pkg/primitives"
)

// mockTable implements CachedTable for testing
type mockTable struct {
	number primitives.FileNumber
	closed atomic.Bool
}

func (m *mockTable) Number() primitives.FileNumber { return m.number }

func (m *mockTable) Close() error {
	m.closed.Store(true)
	return nil
}

func loader(calls *atomic.Int32) LoadFunc[*mockTable] {
	return func(n primitives.FileNumber) (*mockTable, error) {
		calls.Add(1)
		return &mockTable{number: n}, nil
	}
}

func TestTableCache_GetOrLoad(t *testing.T) {
	tc := NewTableCache[*mockTable]()
	var calls atomic.Int32

	first, err := tc.GetOrLoad(3, loader(&calls))
	if err != nil {
		t.Fatalf("GetOrLoad failed: %v", err)
	}
	second, err := tc.GetOrLoad(3, loader(&calls))
	if err != nil {
		t.Fatalf("GetOrLoad failed: %v", err)
	}

	if first != second {
		t.Error("Expected the same cached table")
	}
	if calls.Load() != 1 {
		t.Errorf("Expected 1 load, got %d", calls.Load())
	}

	cached, ok := tc.Get(3)
	if !ok || cached != first {
		t.Error("Expected Get to return the cached table")
	}
	if _, ok := tc.Get(4); ok {
		t.Error("Expected Get not to load")
	}

	stats := tc.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Entries != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
}

func TestTableCache_RemembersFailures(t *testing.T) {
	tc := NewTableCache[*mockTable]()
	boom := dberr.Format("bad header")
	var calls atomic.Int32

	failing := func(primitives.FileNumber) (*mockTable, error) {
		calls.Add(1)
		return nil, boom
	}

	for range 3 {
		if _, err := tc.GetOrLoad(5, failing); !errors.Is(err, boom) {
			t.Errorf("Expected remembered error, got %v", err)
		}
	}
	if calls.Load() != 1 {
		t.Errorf("Expected a single load attempt, got %d", calls.Load())
	}
	if !errors.Is(tc.Failure(5), boom) {
		t.Errorf("Expected Failure(5) to be %v, got %v", boom, tc.Failure(5))
	}
	if len(tc.Failures()) != 1 || tc.Len() != 0 {
		t.Errorf("Expected one failure and no tables, got %d/%d", len(tc.Failures()), tc.Len())
	}

	// Other numbers are unaffected.
	if _, err := tc.GetOrLoad(6, loader(&calls)); err != nil {
		t.Errorf("Expected table 6 to load, got %v", err)
	}
}

func TestTableCache_RetriesTransientFailures(t *testing.T) {
	tests := []struct {
		name string
		err  error
	}{
		{"plain error", errors.New("disk hiccup")},
		{"io error", dberr.IO(errors.New("read failed"), "ReadHeader", "Header")},
		{"missing file", dberr.NotFound("table file VENDOR.dat does not exist")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewTableCache[*mockTable]()
			var calls atomic.Int32

			flaky := func(n primitives.FileNumber) (*mockTable, error) {
				if calls.Add(1) == 1 {
					return nil, tt.err
				}
				return &mockTable{number: n}, nil
			}

			if _, err := tc.GetOrLoad(3, flaky); !errors.Is(err, tt.err) {
				t.Fatalf("Expected %v, got %v", tt.err, err)
			}
			if tc.Failure(3) != nil {
				t.Errorf("Expected no remembered failure, got %v", tc.Failure(3))
			}

			table, err := tc.GetOrLoad(3, flaky)
			if err != nil {
				t.Fatalf("Expected the retry to load, got %v", err)
			}
			if table.Number() != 3 || calls.Load() != 2 {
				t.Errorf("Expected table 3 after 2 loads, got %d after %d", table.Number(), calls.Load())
			}
		})
	}
}

func TestTableCache_Concurrent(t *testing.T) {
	tc := NewTableCache[*mockTable]()
	var calls atomic.Int32

	slow := func(n primitives.FileNumber) (*mockTable, error) {
		calls.Add(1)
		time.Sleep(5 * time.Millisecond)
		return &mockTable{number: n}, nil
	}

	var wg sync.WaitGroup
	results := make([]*mockTable, 50)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tbl, err := tc.GetOrLoad(primitives.FileNumber(i%5), slow)
			if err != nil {
				t.Errorf("GetOrLoad failed: %v", err)
				return
			}
			results[i] = tbl
		}(i)
	}
	wg.Wait()

	if tc.Len() != 5 {
		t.Errorf("Expected 5 tables, got %d", tc.Len())
	}
	for i, tbl := range results {
		cached, _ := tc.Get(primitives.FileNumber(i % 5))
		if tbl != cached {
			t.Errorf("Result %d is not the cached table", i)
		}
		if tbl.closed.Load() {
			t.Errorf("Result %d was closed", i)
		}
	}
	if calls.Load() > 50 {
		t.Errorf("Unexpected load count %d", calls.Load())
	}
}

func TestTableCache_NumbersAndClear(t *testing.T) {
	tc := NewTableCache[*mockTable]()
	var calls atomic.Int32

	for _, n := range []primitives.FileNumber{9, 2, 4} {
		if _, err := tc.GetOrLoad(n, loader(&calls)); err != nil {
			t.Fatalf("GetOrLoad(%d) failed: %v", n, err)
		}
	}

	if !reflect.DeepEqual(tc.Numbers(), []primitives.FileNumber{2, 4, 9}) {
		t.Errorf("Expected sorted numbers, got %v", tc.Numbers())
	}
	tables := tc.Tables()
	if len(tables) != 3 || tables[0].number != 2 || tables[2].number != 9 {
		t.Errorf("Expected tables ordered by number, got %v", tables)
	}

	if err := tc.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	for _, tbl := range tables {
		if !tbl.closed.Load() {
			t.Errorf("Expected table %d to be closed", tbl.number)
		}
	}
	if tc.Len() != 0 {
		t.Errorf("Expected an empty cache, got %d", tc.Len())
	}
}
