// Package dattest builds synthetic table files, tag files and registries for tests.
package dattest

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"flexdb/pkg/codec"
	"flexdb/pkg/primitives"
)

// Column type tags as stored in the column table.
const (
	TagAscii   byte = 0
	TagNumeric byte = 1
	TagDate    byte = 2
	TagBinary  byte = 3
	TagText    byte = 5
)

// Packed encodes v as n packed BCD bytes, most significant first.
// Digits that do not fit are dropped.
func Packed(v uint64, n int) []byte {
	out := make([]byte, n)
	for i := n - 1; i >= 0 && v > 0; i-- {
		low := v % 10
		v /= 10
		high := v % 10
		v /= 10
		out[i] = byte(high<<4 | low)
	}
	return out
}

// Unsigned encodes v the way an unsigned n-byte BCD field is decoded:
// one packed byte, a raw little-endian 16-bit value, or n packed bytes.
func Unsigned(v uint64, n int) []byte {
	if n == 2 {
		out := make([]byte, 2)
		binary.LittleEndian.PutUint16(out, uint16(v))
		return out
	}
	return Packed(v, n)
}

// Int encodes v as a signed n-byte BCD field. Fields longer than two bytes
// carry the sign in their leading byte.
func Int(v int64, n int) []byte {
	switch n {
	case 1:
		return Packed(uint64(abs(v)), 1)
	case 2:
		out := make([]byte, 2)
		binary.LittleEndian.PutUint16(out, uint16(int16(v)))
		return out
	}

	sign := byte(0x10)
	if v < 0 {
		sign = 0x00
	}
	return append([]byte{sign}, Packed(uint64(abs(v)), n-1)...)
}

// Decimal encodes whole.frac as an n-byte fixed-point field whose last
// scale bytes hold frac.
func Decimal(whole int64, frac uint64, n, scale int) []byte {
	return append(Int(whole, n-scale), Unsigned(frac, scale)...)
}

// Date encodes t as an n-byte day number.
func Date(t time.Time, n int) []byte {
	return Packed(uint64(codec.DayNumber(t)), n)
}

// Ascii left-aligns s in an n-byte space-padded field.
func Ascii(s string, n int) []byte {
	out := []byte(s + strings.Repeat(" ", max(0, n-len(s))))
	return out[:n]
}

// Text encodes s as a length-prefixed n-byte text field.
func Text(s string, n int) []byte {
	out := make([]byte, 2, n)
	binary.LittleEndian.PutUint16(out, uint16(len(s)))
	return append(out, Ascii(s, n-2)...)
}

// Column describes one column of a synthetic table. Columns are laid out
// back to back starting at record offset 1.
type Column struct {
	Name         string
	Tag          byte
	Length       int
	Scale        int
	MainIndex    int
	RelatedFile  byte
	RelatedField uint16
}

// Index describes one index entry.
type Index struct {
	Batch     bool
	Columns   []byte
	Collation byte
}

// Table describes a synthetic table file.
type Table struct {
	// Current selects the 3072-byte header layout.
	Current  bool
	RootName string
	Columns  []Column
	Indexes  []Index

	// RecordLength defaults to the smallest power of two holding every column,
	// or to the exact column span for 3.0 tables.
	RecordLength int
	// RecordCount defaults to len(Records).
	RecordCount     int
	Records         [][]byte
	MaxRecordCount  int
	MultiuserReread bool
	Compression     byte
	RecordsPerBlock int

	// Patch edits the encoded header before it is written.
	Patch func(header []byte)
}

// Offset returns the 1-based record offset of column i.
func (t *Table) Offset(i int) int {
	offset := 1
	for _, c := range t.Columns[:i] {
		offset += c.Length
	}
	return offset
}

// Length returns the record length, computing the default if unset.
// 3.0 tables default to the exact column span since their last column runs
// to the end of the record.
func (t *Table) Length() int {
	if t.RecordLength > 0 {
		return t.RecordLength
	}
	need := t.Offset(len(t.Columns)) - 1
	if t.Current {
		return max(need, 1)
	}
	n := 8
	for n < need {
		n *= 2
	}
	return n
}

// Record lays out one value per column, zero-filling the rest of the record.
func (t *Table) Record(values ...[]byte) []byte {
	rec := make([]byte, t.Length())
	for i, v := range values {
		copy(rec[t.Offset(i)-1:], v)
	}
	return rec
}

// Header encodes the header region.
func (t *Table) Header() []byte {
	if t.Current {
		return t.currentHeader()
	}
	return t.legacyHeader()
}

func (t *Table) counts(h []byte) {
	count := t.RecordCount
	if count == 0 {
		count = len(t.Records)
	}
	maxCount := t.MaxRecordCount
	if maxCount == 0 {
		maxCount = max(count, 1000)
	}
	binary.LittleEndian.PutUint16(h[0x00:], uint16(count))
	binary.LittleEndian.PutUint16(h[0x08:], uint16(count))
	binary.LittleEndian.PutUint16(h[0x0C:], uint16(maxCount))
}

func (t *Table) columnTable(h []byte, start int) {
	for i, c := range t.Columns {
		e := h[start+i*8:]
		binary.LittleEndian.PutUint16(e[0:], uint16(t.Offset(i)))
		e[2] = byte(c.MainIndex<<4) | byte(c.Scale&0x0F)
		e[3] = byte(c.Length)
		e[4] = c.Tag
		e[5] = c.RelatedFile
		binary.LittleEndian.PutUint16(e[6:], c.RelatedField)
	}
}

func (t *Table) indexTable(h []byte, start, size int) {
	for i, idx := range t.Indexes {
		e := h[start+i*size:]
		e[0] = byte(len(idx.Columns))
		if idx.Batch {
			e[0] |= 0x80
		}
		copy(e[1:size-1], idx.Columns)
		e[size-1] = idx.Collation
	}
}

func (t *Table) legacyHeader() []byte {
	h := make([]byte, 512)
	t.counts(h)
	binary.LittleEndian.PutUint16(h[0x4E:], uint16(t.Length()))
	h[0x59] = byte(len(t.Columns))
	if t.MultiuserReread {
		h[0x5C] = 1
	}
	t.indexTable(h, 0x64, 8)
	copy(h[0xB4:0xBD], t.RootName)
	t.columnTable(h, 0xC4)
	if t.Patch != nil {
		t.Patch(h)
	}
	return h
}

func (t *Table) currentHeader() []byte {
	h := make([]byte, 3072)
	t.counts(h)
	h[0x1C], h[0x1D] = 0x1E, 0x1E
	h[0x1F] = t.Compression
	perBlock := t.RecordsPerBlock
	if perBlock == 0 {
		perBlock = max(512/t.Length(), 1)
	}
	binary.LittleEndian.PutUint16(h[0x98:], uint16(perBlock))
	binary.LittleEndian.PutUint16(h[0x9A:], uint16(t.Length()))
	h[0xA5] = byte(len(t.Columns))
	t.indexTable(h, 0xB0, 18)
	copy(h[0x2D0:0x2E0], t.RootName)
	t.columnTable(h, 0x2E0)
	if t.Patch != nil {
		t.Patch(h)
	}
	return h
}

// Bytes encodes the whole table file.
func (t *Table) Bytes() []byte {
	out := t.Header()
	for _, r := range t.Records {
		rec := make([]byte, t.Length())
		copy(rec, r)
		out = append(out, rec...)
	}
	return out
}

// Names returns the column names in order.
func (t *Table) Names() []string {
	names := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		names[i] = c.Name
	}
	return names
}

// Write stores the table as <dir>/<name>.dat plus a .tag file listing the
// column names, and returns the table file path.
func (t *Table) Write(tb testing.TB, dir, name string) primitives.Filepath {
	tb.Helper()

	path := filepath.Join(dir, name+".dat")
	WriteFile(tb, path, t.Bytes())
	WriteTagFile(tb, filepath.Join(dir, name+".tag"), t.Names()...)
	return primitives.Filepath(path)
}

// WriteTagFile writes names one per line with CRLF endings.
func WriteTagFile(tb testing.TB, path string, names ...string) {
	tb.Helper()
	WriteFile(tb, path, []byte(strings.Join(names, "\r\n")+"\r\n"))
}

// WriteFile writes data to path, failing the test on error.
func WriteFile(tb testing.TB, path string, data []byte) {
	tb.Helper()
	if err := os.WriteFile(path, data, 0o600); err != nil {
		tb.Fatalf("failed to write %s: %v", path, err)
	}
}

// Entry is one registry slot. Number is its position in the registry file.
type Entry struct {
	Number      int
	Root        string
	Alias       string
	Description string
}

// FileList encodes a registry. Slot 0 always names the registry itself;
// slots not listed in entries are left blank.
func FileList(entries ...Entry) []byte {
	slots := 1
	for _, e := range entries {
		slots = max(slots, e.Number+1)
	}

	out := make([]byte, slots*128)
	copy(out[0:40], "filelist.cfg")
	for _, e := range entries {
		slot := out[e.Number*128 : (e.Number+1)*128]
		copy(slot[0:40], e.Root)
		copy(slot[41:73], e.Alias)
		copy(slot[73:128], e.Description)
	}
	return out
}

// WriteFileList writes <dir>/filelist.cfg and returns its path.
func WriteFileList(tb testing.TB, dir string, entries ...Entry) primitives.Filepath {
	tb.Helper()
	path := filepath.Join(dir, "filelist.cfg")
	WriteFile(tb, path, FileList(entries...))
	return primitives.Filepath(path)
}

func abs(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
