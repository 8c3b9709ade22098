package codec

import (
	"bytes"
	"testing"

	dberr "flexdb/pkg/error"
)

func TestCursor_SequentialReads(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x34, 0x12, 'a', 'b', 'c'})

	b, err := c.Byte()
	if err != nil || b != 0x01 {
		t.Fatalf("Expected 0x01, got %#x (err %v)", b, err)
	}
	v, err := c.Uint16()
	if err != nil || v != 0x1234 {
		t.Fatalf("Expected 0x1234, got %#x (err %v)", v, err)
	}
	rest, err := c.Next(3)
	if err != nil || !bytes.Equal(rest, []byte("abc")) {
		t.Fatalf("Expected abc, got %q (err %v)", rest, err)
	}
	if c.Remaining() != 0 {
		t.Errorf("Expected 0 remaining, got %d", c.Remaining())
	}
	if _, err := c.Byte(); !dberr.IsFormat(err) {
		t.Errorf("Expected format error reading past the end, got %v", err)
	}
}

func TestCursor_AbsoluteReads(t *testing.T) {
	c := NewCursor([]byte{0, 1, 2, 3, 4, 5})

	tests := []struct {
		name  string
		read  func() error
		fails bool
	}{
		{"byte in range", func() error { _, err := c.ByteAt(5); return err }, false},
		{"byte past end", func() error { _, err := c.ByteAt(6); return err }, true},
		{"negative byte", func() error { _, err := c.ByteAt(-1); return err }, true},
		{"u16 at end", func() error { _, err := c.Uint16At(4); return err }, false},
		{"u16 straddling end", func() error { _, err := c.Uint16At(5); return err }, true},
		{"full range", func() error { _, err := c.Range(0, 6); return err }, false},
		{"inverted range", func() error { _, err := c.Range(4, 2); return err }, true},
		{"seek to end", func() error { return c.Seek(6) }, false},
		{"seek past end", func() error { return c.Seek(7) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.read()
			if tt.fails && !dberr.IsFormat(err) {
				t.Errorf("Expected format error, got %v", err)
			}
			if !tt.fails && err != nil {
				t.Errorf("Unexpected error: %v", err)
			}
		})
	}
}

func TestCursor_Chunks(t *testing.T) {
	c := NewCursor([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9})

	chunks, err := c.Chunks(1, 9, 3)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(chunks) != 2 {
		t.Fatalf("Expected 2 chunks, got %d", len(chunks))
	}
	if !bytes.Equal(chunks[1], []byte{5, 6, 7}) {
		t.Errorf("Expected [5 6 7], got %v", chunks[1])
	}

	if _, err := c.Chunks(0, 10, 3); !dberr.IsFormat(err) {
		t.Errorf("Expected format error for an oversized region, got %v", err)
	}
	if _, err := c.Chunks(0, 9, 0); !dberr.IsInternal(err) {
		t.Errorf("Expected internal error for a zero chunk size, got %v", err)
	}
}
