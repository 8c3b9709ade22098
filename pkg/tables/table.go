// Package tables exposes decoded table files as rows.
package tables

import (
	"fmt"
	"log/slog"

	"flexdb/pkg/catalog/schema"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/logging"
	"flexdb/pkg/primitives"
	"flexdb/pkg/storage/dat"
	"flexdb/pkg/tuple"
)

// Table is one opened table file: its header plus a cache of decoded rows.
// A Table is safe for concurrent use.
type Table struct {
	number primitives.FileNumber
	name   string
	header *dat.Header
	file   *dat.DataFile
	schema *schema.Schema
	rows   *RowCache
	log    *slog.Logger
}

// Open opens the table file at path and decodes its header. number and name
// identify the table in its registry.
func Open(number primitives.FileNumber, name string, path primitives.Filepath) (*Table, error) {
	file, err := dat.OpenDataFile(path)
	if err != nil {
		return nil, err
	}

	header, err := dat.LoadHeader(file, path)
	if err != nil {
		file.Close()
		return nil, err
	}

	t, err := New(number, name, header, file)
	if err != nil {
		file.Close()
		return nil, err
	}
	return t, nil
}

// New builds a Table from an already decoded header and the open file it
// came from. The Table takes ownership of file.
func New(number primitives.FileNumber, name string, header *dat.Header, file *dat.DataFile) (*Table, error) {
	if header == nil || file == nil {
		return nil, dberr.Internal("table %s needs both a header and a file", name)
	}
	if name == "" {
		name = header.RootName
	}

	sch, err := schema.FromHeader(number, name, header)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeInternal, "New", "Table")
	}

	return &Table{
		number: number,
		name:   name,
		header: header,
		file:   file,
		schema: sch,
		rows:   NewRowCache(),
		log:    logging.WithTable(name),
	}, nil
}

// Number returns the registry file number.
func (t *Table) Number() primitives.FileNumber {
	return t.number
}

// Name returns the registry name of the table.
func (t *Table) Name() string {
	return t.name
}

// Header returns the decoded header.
func (t *Table) Header() *dat.Header {
	return t.header
}

// Path returns the table file path.
func (t *Table) Path() primitives.Filepath {
	return t.file.Path()
}

// Schema returns the engine-facing schema.
func (t *Table) Schema() *schema.Schema {
	return t.schema
}

// TupleDesc returns the shape of the table's rows.
func (t *Table) TupleDesc() *tuple.TupleDescription {
	return t.schema.TupleDesc
}

// RecordCount returns the number of records declared by the header.
func (t *Table) RecordCount() int64 {
	return int64(t.header.RecordCount)
}

// NthRecord returns record i. Negative i counts from the end.
// The returned tuple is a copy; callers may keep it.
func (t *Table) NthRecord(i int64) (*tuple.Tuple, error) {
	n, ok := primitives.NormalizeIndex(i, t.RecordCount())
	if !ok {
		return nil, dberr.NotFound("record %d is out of range", i).
			WithDetail("%s holds %d records", t.name, t.RecordCount()).
			At("NthRecord", "Table")
	}

	row, err := t.record(primitives.RecordNumber(n)) // #nosec G115
	if err != nil {
		return nil, err
	}
	return row.Clone()
}

// Records returns records [start, end). Negative bounds count from the end
// and out-of-range bounds are clamped.
func (t *Table) Records(start, end int64) ([]*tuple.Tuple, error) {
	s, e := primitives.NormalizeBounds(start, end, t.RecordCount())

	rows := make([]*tuple.Tuple, 0, e-s)
	for n := s; n < e; n++ {
		row, err := t.NthRecord(n)
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CachedRows returns copies of every row decoded so far, ordered by record number.
func (t *Table) CachedRows() []*tuple.Tuple {
	cached := t.rows.Snapshot()
	rows := make([]*tuple.Tuple, 0, len(cached))
	for _, row := range cached {
		if c, err := row.Clone(); err == nil {
			rows = append(rows, c)
		}
	}
	return rows
}

// Stats returns the row cache counters.
func (t *Table) Stats() CacheStats {
	return t.rows.Stats()
}

// Iterator returns a new iterator over every record of the table.
func (t *Table) Iterator() *TableIterator {
	return NewTableIterator(t)
}

// Close releases the table file. Cached rows stay readable.
func (t *Table) Close() error {
	return t.file.Close()
}

func (t *Table) String() string {
	return fmt.Sprintf("Table<name: %s | file: %d | version: %s | records: %d>",
		t.name, t.number, t.header.Version(), t.header.RecordCount)
}

func (t *Table) record(n primitives.RecordNumber) (*tuple.Tuple, error) {
	if row, ok := t.rows.Get(n); ok {
		return row, nil
	}
	t.log.Debug("row cache miss", "record", uint32(n))
	return t.rows.Load(n, func() (*tuple.Tuple, error) {
		return t.decodeRecord(n)
	})
}

func (t *Table) decodeRecord(n primitives.RecordNumber) (*tuple.Tuple, error) {
	h := t.header
	if h.Layout == nil {
		return nil, dberr.NotSupported("%s has an unknown header version", t.name).At("NthRecord", "Table")
	}
	if h.FillBytesPerBlock != 0 {
		return nil, dberr.NotSupported("%s has %d fill bytes per block", t.name, h.FillBytesPerBlock).
			WithHint("records of this table straddle block padding, which cannot be addressed").
			At("NthRecord", "Table")
	}

	data, err := t.file.ReadRange(h.RecordOffset(uint32(n)), int(h.RecordLength))
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeIO, "NthRecord", "Table")
	}

	b := tuple.NewBuilder(t.schema.TupleDesc).AtRecord(n)
	for _, col := range h.Columns {
		value, err := col.Decode(data)
		if err != nil {
			return nil, dberr.Wrap(err, dberr.CodeFormat, "NthRecord", "Table").
				WithDetail("record %d of %s, column %s", n, t.name, col.Name)
		}
		b.Add(value)
	}
	row, err := b.Build()
	if err != nil {
		return nil, dberr.Internal("record %d of %s: %v", n, t.name, err)
	}
	return row, nil
}
