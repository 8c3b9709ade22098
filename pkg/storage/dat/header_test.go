package dat

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	dberr "flexdb/pkg/error"
	"flexdb/pkg/primitives"
	"flexdb/pkg/storage/dat/dattest"
)

func TestDecodeHeader_Legacy(t *testing.T) {
	tbl := customerTable(false)

	h, err := DecodeHeader(tbl.Header(), tbl.Names())
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}

	if h.Version() != Version23b {
		t.Errorf("Expected version 2.3b, got %s", h.Version())
	}
	if h.DataOffset() != LegacyHeaderSize {
		t.Errorf("Expected data offset %d, got %d", LegacyHeaderSize, h.DataOffset())
	}
	if h.RecordLength != 64 {
		t.Errorf("Expected record length 64, got %d", h.RecordLength)
	}
	if h.RecordCount != 2 {
		t.Errorf("Expected record count 2, got %d", h.RecordCount)
	}
	if h.FieldCount != 5 {
		t.Errorf("Expected 5 fields, got %d", h.FieldCount)
	}
	if h.RecordsPerBlock != 8 {
		t.Errorf("Expected 8 records per block, got %d", h.RecordsPerBlock)
	}
	if h.FillBytesPerBlock != 0 {
		t.Errorf("Expected no fill bytes, got %d", h.FillBytesPerBlock)
	}
	if h.RootName != "CUSTOMER" {
		t.Errorf("Expected root name CUSTOMER, got %q", h.RootName)
	}
	if !h.ReuseDeletedSpace {
		t.Error("Expected reuse_deleted_space to be set")
	}
	if h.MultiuserReread() {
		t.Error("Expected multiuser_reread to be clear")
	}
	if h.RecordOffset(3) != 512+3*64 {
		t.Errorf("Expected record 3 at %d, got %d", 512+3*64, h.RecordOffset(3))
	}

	expectedLengths := []uint16{4, 6, 3, 12, 20}
	for i, col := range h.Columns {
		if col.Length != expectedLengths[i] {
			t.Errorf("Column %s: expected length %d, got %d", col.Name, expectedLengths[i], col.Length)
		}
	}
	if !reflect.DeepEqual(h.ColumnNames(), tbl.Names()) {
		t.Errorf("Expected names %v, got %v", tbl.Names(), h.ColumnNames())
	}
	if h.Columns[1].DataType != DataTypeFloat || h.Columns[1].Scale != 2 {
		t.Errorf("Expected BALANCE to be FLOAT with scale 2, got %s scale %d", h.Columns[1].DataType, h.Columns[1].Scale)
	}
	if h.Columns[0].MainIndex != 1 {
		t.Errorf("Expected ID main index 1, got %d", h.Columns[0].MainIndex)
	}
	if h.Columns[4].RelatedFile != 3 || h.Columns[4].RelatedField != 2 {
		t.Errorf("Expected NAME relation 3/2, got %d/%d", h.Columns[4].RelatedFile, h.Columns[4].RelatedField)
	}

	if len(h.Indexes) != 2 {
		t.Fatalf("Expected 2 indexes, got %d", len(h.Indexes))
	}
	if h.Indexes[1].Type != IndexTypeBatch || h.Indexes[1].Collation != CollationUppercase {
		t.Errorf("Expected a BATCH/UPPERCASE index, got %s", h.Indexes[1])
	}
	if !reflect.DeepEqual(h.Indexes[1].Columns(), []uint8{5, 1}) {
		t.Errorf("Expected index columns [5 1], got %v", h.Indexes[1].Columns())
	}

	if got := h.String(); got != "Header<table_name: CUSTOMER | version: 2.3b>" {
		t.Errorf("Unexpected String(): %s", got)
	}
}

func TestDecodeHeader_LegacyMultiuser(t *testing.T) {
	tbl := customerTable(false)
	tbl.MultiuserReread = true

	h, err := DecodeHeader(tbl.Header(), nil)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if !h.MultiuserReread() {
		t.Error("Expected multiuser_reread to be set")
	}
	if _, ok := h.Layout.(LegacyLayout); !ok {
		t.Errorf("Expected a LegacyLayout, got %T", h.Layout)
	}
}

func TestDecodeHeader_Current(t *testing.T) {
	tbl := customerTable(true)
	tbl.Compression = 2
	tbl.RecordLength = 64

	h, err := DecodeHeader(tbl.Header(), tbl.Names())
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}

	if h.Version() != Version30 {
		t.Errorf("Expected version 3.0, got %s", h.Version())
	}
	if h.DataOffset() != CurrentHeaderSize {
		t.Errorf("Expected data offset %d, got %d", CurrentHeaderSize, h.DataOffset())
	}

	layout, ok := h.Layout.(CurrentLayout)
	if !ok {
		t.Fatalf("Expected a CurrentLayout, got %T", h.Layout)
	}
	if layout.Compression != CompressionStandard {
		t.Errorf("Expected STANDARD compression, got %s", layout.Compression)
	}
	if !layout.HeaderIntegrity {
		t.Error("Expected header integrity for a zero checksum region")
	}
	if h.MultiuserReread() {
		t.Error("Expected multiuser_reread to be false on 3.0 headers")
	}

	// The last column absorbs the padding of the 64-byte record.
	expectedLengths := []uint16{4, 6, 3, 12, 39}
	for i, col := range h.Columns {
		if col.Length != expectedLengths[i] {
			t.Errorf("Column %s: expected length %d, got %d", col.Name, expectedLengths[i], col.Length)
		}
	}

	if len(h.Indexes) != 2 || len(h.Indexes[1].Segments) != 2 {
		t.Fatalf("Expected 2 indexes with the second holding 2 segments, got %v", h.Indexes)
	}
}

func TestDecodeHeader_CurrentColumnLengths(t *testing.T) {
	tests := []struct {
		name         string
		recordLength int
		expected     []uint16
	}{
		{"exact span", 0, []uint16{4, 6, 3, 12, 20}},
		{"one byte of padding", 46, []uint16{4, 6, 3, 12, 21}},
		{"power of two", 64, []uint16{4, 6, 3, 12, 39}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := customerTable(true)
			tbl.RecordLength = tt.recordLength

			h, err := DecodeHeader(tbl.Header(), tbl.Names())
			if err != nil {
				t.Fatalf("DecodeHeader failed: %v", err)
			}
			if int(h.RecordLength) != tbl.Length() {
				t.Errorf("Expected record length %d, got %d", tbl.Length(), h.RecordLength)
			}
			for i, col := range h.Columns {
				if col.Length != tt.expected[i] {
					t.Errorf("Column %s: expected length %d, got %d", col.Name, tt.expected[i], col.Length)
				}
			}
		})
	}
}

func TestDecodeHeader_CurrentSingleColumn(t *testing.T) {
	tbl := &dattest.Table{
		Current:      true,
		RootName:     "CODES",
		Columns:      []dattest.Column{{Name: "CODE", Tag: dattest.TagAscii, Length: 5}},
		RecordLength: 16,
	}

	h, err := DecodeHeader(tbl.Header(), nil)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if h.Columns[0].Length != 16 {
		t.Errorf("Expected single column to span the record, got %d", h.Columns[0].Length)
	}
}

func TestDecodeHeader_IntegrityMismatch(t *testing.T) {
	tbl := customerTable(true)
	tbl.Patch = func(h []byte) { h[0x10] = 1 }

	h, err := DecodeHeader(tbl.Header(), nil)
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}
	if h.Layout.(CurrentLayout).HeaderIntegrity {
		t.Error("Expected header integrity to be false")
	}
}

func TestDecodeHeader_SynthesizedNames(t *testing.T) {
	tbl := customerTable(false)

	h, err := DecodeHeader(tbl.Header(), []string{"ID", "BALANCE"})
	if err != nil {
		t.Fatalf("DecodeHeader failed: %v", err)
	}

	expected := []string{"ID", "BALANCE", "Column3", "Column4", "Column5"}
	if !reflect.DeepEqual(h.ColumnNames(), expected) {
		t.Errorf("Expected %v, got %v", expected, h.ColumnNames())
	}
}

func TestDecodeHeader_Errors(t *testing.T) {
	tests := []struct {
		name    string
		current bool
		patch   func(h []byte)
	}{
		{"zero record length", false, func(h []byte) { binary.LittleEndian.PutUint16(h[0x4E:], 0) }},
		{"zero record length 3.0", true, func(h []byte) { binary.LittleEndian.PutUint16(h[0x9A:], 0) }},
		{"too many fields", false, func(h []byte) { h[0x59] = 200 }},
		{"column past record end", false, func(h []byte) { binary.LittleEndian.PutUint16(h[0xC4:], 62) }},
		{"column offset zero", false, func(h []byte) { binary.LittleEndian.PutUint16(h[0xC4:], 0) }},
		{"index with more segments than slots", false, func(h []byte) { h[0x64] = 7 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := customerTable(tt.current)
			tbl.Patch = tt.patch

			_, err := DecodeHeader(tbl.Header(), nil)
			if !dberr.IsFormat(err) {
				t.Errorf("Expected a format error, got %v", err)
			}
		})
	}
}

func TestDecodeHeader_WrongSize(t *testing.T) {
	for _, n := range []int{0, 100, 511, 1024, 3073} {
		if _, err := DecodeHeader(make([]byte, n), nil); !dberr.IsFormat(err) {
			t.Errorf("Expected a format error for %d bytes, got %v", n, err)
		}
	}
}

func TestReadHeaderBytes(t *testing.T) {
	t.Run("legacy truncates to 512", func(t *testing.T) {
		data, err := ReadHeaderBytes(bytes.NewReader(customerTable(false).Bytes()))
		if err != nil {
			t.Fatalf("ReadHeaderBytes failed: %v", err)
		}
		if len(data) != LegacyHeaderSize {
			t.Errorf("Expected %d bytes, got %d", LegacyHeaderSize, len(data))
		}
	})

	t.Run("current keeps 3072", func(t *testing.T) {
		data, err := ReadHeaderBytes(bytes.NewReader(customerTable(true).Bytes()))
		if err != nil {
			t.Fatalf("ReadHeaderBytes failed: %v", err)
		}
		if len(data) != CurrentHeaderSize {
			t.Errorf("Expected %d bytes, got %d", CurrentHeaderSize, len(data))
		}
	})

	t.Run("short legacy file", func(t *testing.T) {
		data, err := ReadHeaderBytes(bytes.NewReader(make([]byte, 100)))
		if err != nil {
			t.Fatalf("ReadHeaderBytes failed: %v", err)
		}
		if _, err := DecodeHeader(data, nil); !dberr.IsFormat(err) {
			t.Errorf("Expected a format error for a 100-byte header, got %v", err)
		}
	})

	t.Run("unknown marker", func(t *testing.T) {
		data := make([]byte, 600)
		data[0x1C], data[0x1D] = 0x1E, 0x00
		if _, err := ReadHeaderBytes(bytes.NewReader(data)); !dberr.IsFormat(err) {
			t.Errorf("Expected a format error, got %v", err)
		}
	})

	t.Run("no marker", func(t *testing.T) {
		if _, err := ReadHeaderBytes(bytes.NewReader(make([]byte, 10))); !dberr.IsFormat(err) {
			t.Errorf("Expected a format error, got %v", err)
		}
	})
}

func TestReadHeader(t *testing.T) {
	dir := t.TempDir()
	path := customerTable(false).Write(t, dir, "customer")

	h, err := ReadHeader(path)
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Path != path {
		t.Errorf("Expected path %s, got %s", path, h.Path)
	}
	if h.Columns[4].Name != "NAME" {
		t.Errorf("Expected names from the tag file, got %v", h.ColumnNames())
	}
}

func TestReadHeader_CaseInsensitiveTagFile(t *testing.T) {
	dir := t.TempDir()
	tbl := customerTable(true)
	dattest.WriteFile(t, filepath.Join(dir, "customer.dat"), tbl.Bytes())
	dattest.WriteTagFile(t, filepath.Join(dir, "CUSTOMER.TAG"), "A", "B")

	h, err := ReadHeader(primitives.Filepath(filepath.Join(dir, "customer.dat")))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}

	expected := []string{"A", "B", "Column3", "Column4", "Column5"}
	if !reflect.DeepEqual(h.ColumnNames(), expected) {
		t.Errorf("Expected %v, got %v", expected, h.ColumnNames())
	}
}

func TestReadHeader_NoTagFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "customer.dat")
	dattest.WriteFile(t, path, customerTable(false).Bytes())

	h, err := ReadHeader(primitives.Filepath(path))
	if err != nil {
		t.Fatalf("ReadHeader failed: %v", err)
	}
	if h.Columns[0].Name != "Column1" {
		t.Errorf("Expected synthesized names, got %v", h.ColumnNames())
	}
}

func TestReadHeader_Missing(t *testing.T) {
	_, err := ReadHeader(primitives.Filepath(filepath.Join(t.TempDir(), "nope.dat")))
	if !dberr.IsNotFound(err) {
		t.Errorf("Expected a not-found error, got %v", err)
	}
}

func TestColumnNames(t *testing.T) {
	names := ColumnNames(3, []string{"A"})
	if !reflect.DeepEqual(names, []string{"A", "Column2", "Column3"}) {
		t.Errorf("Unexpected names: %v", names)
	}

	if n := len(ColumnNames(300, nil)); n != MaxColumns {
		t.Errorf("Expected %d names, got %d", MaxColumns, n)
	}

	long := strings.Fields(strings.Repeat("x ", 400))
	if n := len(ColumnNames(0, long)); n != MaxColumns {
		t.Errorf("Expected known names capped at %d, got %d", MaxColumns, n)
	}
}

func TestReadTagFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "t.tag")
	if err := os.WriteFile(path, []byte("ID\r\nNAME  \tCITY\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tf, err := ReadTagFile(primitives.Filepath(path))
	if err != nil {
		t.Fatalf("ReadTagFile failed: %v", err)
	}
	if !reflect.DeepEqual(tf.Tags, []string{"ID", "NAME", "CITY"}) {
		t.Errorf("Unexpected tags: %v", tf.Tags)
	}
}
