// Package database opens a directory of table files through its registry.
package database

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"flexdb/pkg/catalog/filelist"
	"flexdb/pkg/catalog/schema"
	"flexdb/pkg/catalog/tablecache"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/logging"
	"flexdb/pkg/primitives"
	"flexdb/pkg/tables"
)

// TableExt is the extension of table files.
const TableExt = ".dat"

// Database is a registry plus the tables opened through it. Tables are
// opened on first use and kept open until Close. A table that fails to open
// stays absent; it never fails the Database as a whole.
type Database struct {
	path   primitives.Filepath
	dir    primitives.Filepath
	files  *filelist.FileList
	tables *tablecache.TableCache[*tables.Table]
	log    *slog.Logger

	mutex  sync.RWMutex
	closed bool
}

// DatabaseInfo contains database metadata
type DatabaseInfo struct {
	Path         string
	Tables       []string
	TableCount   int
	OpenTables   int
	FailedTables int
	CacheHits    int64
	CacheMisses  int64
	RowsCached   int
	RowCacheHits int64
	RowCacheMiss int64
}

// ResolvePath turns a directory or registry path into the absolute path of
// the registry file. The file name must be filelist.cfg, in any case.
func ResolvePath(path string) (primitives.Filepath, error) {
	abs, err := primitives.Filepath(path).Abs()
	if err != nil {
		return "", dberr.IO(err, "ResolvePath", "Database")
	}

	if abs.IsDir() {
		abs = abs.Join(filelist.FileName)
		if resolved, ok := abs.ResolveFold(); ok {
			abs = resolved
		}
	}

	if !primitives.FoldEqual(abs.Base(), filelist.FileName) {
		return "", dberr.Format("%s is not a %s registry", abs, filelist.FileName).
			WithHint("pass the database directory or its filelist.cfg").
			At("ResolvePath", "Database")
	}
	return abs, nil
}

// Open loads the registry at path (a directory or its filelist.cfg).
// Tables are not opened until they are asked for.
func Open(path string) (*Database, error) {
	registry, err := ResolvePath(path)
	if err != nil {
		return nil, err
	}

	files, err := filelist.Load(registry)
	if err != nil {
		return nil, err
	}

	db := &Database{
		path:   registry,
		dir:    registry.Dir(),
		files:  files,
		tables: tablecache.NewTableCache[*tables.Table](),
		log:    logging.WithPath(registry.Dir().String()),
	}
	db.log.Info("database opened", "tables", len(files.Tables()))
	return db, nil
}

// Path returns the registry file path.
func (db *Database) Path() primitives.Filepath {
	return db.path
}

// Dir returns the directory holding the table files.
func (db *Database) Dir() primitives.Filepath {
	return db.dir
}

// FileList returns the parsed registry.
func (db *Database) FileList() *filelist.FileList {
	return db.files
}

// Len returns the number of tables listed in the registry.
func (db *Database) Len() int {
	return len(db.files.Tables())
}

// Entries returns the registry entries describing tables.
func (db *Database) Entries() []filelist.Entry {
	return db.files.Tables()
}

// TablePath returns the table file of entry, matched case-insensitively.
func (db *Database) TablePath(entry filelist.Entry) (primitives.Filepath, error) {
	path, ok := db.dir.Join(entry.RootName + TableExt).ResolveFold()
	if !ok || !path.IsFile() {
		return "", dberr.NotFound("table file %s%s does not exist", entry.RootName, TableExt).
			At("TablePath", "Database")
	}
	return path, nil
}

// Table returns the table registered under number, opening it on first use.
// A table missing from the registry or from disk, or one whose header does
// not decode, is reported as not found; the cause is kept in the error chain.
func (db *Database) Table(number primitives.FileNumber) (*tables.Table, error) {
	if err := db.checkOpen(); err != nil {
		return nil, err
	}

	entry, ok := db.files.Get(number)
	if !ok || number.IsRegistry() {
		return nil, dberr.NotFound("no table is registered as file %d", number).At("Table", "Database")
	}

	t, err := db.tables.GetOrLoad(number, func(primitives.FileNumber) (*tables.Table, error) {
		return db.openTable(entry)
	})
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, err
		}
		return nil, dberr.NotFound("table %s is unavailable", entry.DisplayName()).
			WithCause(err).At("Table", "Database")
	}
	return t, nil
}

// TableByName returns the table whose root name or alias matches name.
func (db *Database) TableByName(name string) (*tables.Table, error) {
	entry, ok := db.files.Lookup(name)
	if !ok || entry.Number.IsRegistry() {
		return nil, dberr.NotFound("no table named %q", name).At("TableByName", "Database")
	}
	return db.Table(entry.Number)
}

// Tables opens every registered table and returns those that opened, in
// registry order.
func (db *Database) Tables() []*tables.Table {
	entries := db.files.Tables()
	out := make([]*tables.Table, 0, len(entries))
	for _, e := range entries {
		t, err := db.Table(e.Number)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Preload opens every registered table using up to workers goroutines.
// Tables that fail to open are logged and skipped; only cancellation of ctx
// is returned as an error.
func (db *Database) Preload(ctx context.Context, workers int) error {
	if err := db.checkOpen(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(workers, 1))

	entries := db.files.Tables()
	for _, e := range entries {
		if err := gctx.Err(); err != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if _, err := db.Table(e.Number); err != nil {
				logging.WithFile(uint32(e.Number)).Warn("table skipped", "table", e.DisplayName(), "error", err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	db.log.Debug("preload finished", "tables", db.tables.Len(), "failed", len(db.tables.Failures()))
	return ctx.Err()
}

// Schemas returns the schema of every table that opens, in registry order.
func (db *Database) Schemas() []*schema.Schema {
	tbls := db.Tables()
	out := make([]*schema.Schema, len(tbls))
	for i, t := range tbls {
		out[i] = t.Schema()
	}
	return out
}

// GetStatistics reports registry and cache counters.
func (db *Database) GetStatistics() DatabaseInfo {
	entries := db.files.Tables()
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.DisplayName()
	}

	cache := db.tables.Stats()
	info := DatabaseInfo{
		Path:         db.path.String(),
		Tables:       names,
		TableCount:   len(names),
		OpenTables:   cache.Entries,
		FailedTables: cache.Failures,
		CacheHits:    cache.Hits,
		CacheMisses:  cache.Misses,
	}
	for _, t := range db.tables.Tables() {
		rows := t.Stats()
		info.RowsCached += rows.Entries
		info.RowCacheHits += rows.Hits
		info.RowCacheMiss += rows.Misses
	}
	return info
}

// Close closes every opened table. The Database cannot be used afterwards.
func (db *Database) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()

	if db.closed {
		return nil
	}
	db.closed = true

	if err := db.tables.Clear(); err != nil {
		return fmt.Errorf("failed to close tables: %w", err)
	}
	db.log.Info("database closed")
	return nil
}

func (db *Database) String() string {
	return fmt.Sprintf("Database<path: %s | tables: %d>", db.path, db.Len())
}

func (db *Database) checkOpen() error {
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	if db.closed {
		return dberr.Internal("database %s is closed", db.path).At("Table", "Database")
	}
	return nil
}

func (db *Database) openTable(entry filelist.Entry) (*tables.Table, error) {
	path, err := db.TablePath(entry)
	if err != nil {
		logging.WithFile(uint32(entry.Number)).Warn("table file missing", "table", entry.DisplayName())
		return nil, err
	}

	t, err := tables.Open(entry.Number, entry.DisplayName(), path)
	if err != nil {
		logging.WithFile(uint32(entry.Number)).Warn("table failed to open",
			"table", entry.DisplayName(), "path", path.String(), "error", err)
		return nil, err
	}
	logging.WithTable(t.Name()).Debug("table opened",
		"file_number", uint32(entry.Number), "version", t.Header().Version().String(), "records", t.RecordCount())
	return t, nil
}
