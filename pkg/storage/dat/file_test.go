package dat

import (
	"path/filepath"
	"testing"

	dberr "flexdb/pkg/error"
	"flexdb/pkg/primitives"
)

func TestDataFile(t *testing.T) {
	dir := t.TempDir()
	tbl := customerTable(false)
	path := tbl.Write(t, dir, "customer")

	df, err := OpenDataFile(path)
	if err != nil {
		t.Fatalf("OpenDataFile failed: %v", err)
	}
	defer df.Close()

	size, err := df.Size()
	if err != nil {
		t.Fatalf("Size failed: %v", err)
	}
	if size != int64(512+2*64) {
		t.Errorf("Expected size %d, got %d", 512+2*64, size)
	}

	h, err := LoadHeader(df, df.Path())
	if err != nil {
		t.Fatalf("LoadHeader failed: %v", err)
	}

	rec, err := df.ReadRange(h.RecordOffset(1), int(h.RecordLength))
	if err != nil {
		t.Fatalf("ReadRange failed: %v", err)
	}
	name, err := h.Columns[4].Decode(rec)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if name.String() != "Globex" {
		t.Errorf("Expected 'Globex', got %s", name)
	}

	if _, err := df.ReadRange(h.RecordOffset(2), int(h.RecordLength)); !dberr.IsFormat(err) {
		t.Errorf("Expected a format error reading past the end, got %v", err)
	}
}

func TestDataFile_Close(t *testing.T) {
	path := customerTable(true).Write(t, t.TempDir(), "customer")

	df, err := OpenDataFile(path)
	if err != nil {
		t.Fatalf("OpenDataFile failed: %v", err)
	}
	if err := df.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := df.Close(); err != nil {
		t.Errorf("Expected a second Close to be a no-op, got %v", err)
	}
	if _, err := df.ReadAt(make([]byte, 1), 0); err == nil {
		t.Error("Expected reads after Close to fail")
	}
}

func TestOpenDataFile_Missing(t *testing.T) {
	_, err := OpenDataFile(primitives.Filepath(filepath.Join(t.TempDir(), "missing.dat")))
	if !dberr.IsNotFound(err) {
		t.Errorf("Expected a not-found error, got %v", err)
	}
}
