package dattest

import (
	"bytes"
	"testing"
	"time"

	"flexdb/pkg/codec"
)

func TestEncodersRoundTrip(t *testing.T) {
	ints := []struct {
		value int64
		n     int
	}{
		{7, 1}, {-1, 2}, {12345, 2}, {236, 7}, {-5823, 7}, {0, 4},
	}
	for _, tt := range ints {
		got, err := codec.Int(Int(tt.value, tt.n), true)
		if err != nil {
			t.Fatalf("Int(%d, %d) failed: %v", tt.value, tt.n, err)
		}
		if got != tt.value {
			t.Errorf("Expected %d from %d bytes, got %d", tt.value, tt.n, got)
		}
	}

	day := time.Date(1999, time.December, 31, 0, 0, 0, 0, time.UTC)
	decoded, ok, err := codec.Date(Date(day, 3))
	if err != nil || !ok || !decoded.Equal(day) {
		t.Errorf("Expected %s, got %s (ok=%t, err=%v)", day, decoded, ok, err)
	}

	text, err := codec.Text(Text("hello", 10))
	if err != nil || text != "hello" {
		t.Errorf("Expected 'hello', got %q (err=%v)", text, err)
	}
}

func TestPacked(t *testing.T) {
	if got := Packed(236, 3); !bytes.Equal(got, []byte{0x00, 0x02, 0x36}) {
		t.Errorf("Expected 00 02 36, got % X", got)
	}
}

func TestFileList(t *testing.T) {
	data := FileList(Entry{Number: 2, Root: "CUSTOMER", Alias: "Customers"})
	if len(data) != 3*128 {
		t.Fatalf("Expected 3 slots, got %d bytes", len(data))
	}
	if !bytes.HasPrefix(data, []byte("filelist.cfg")) {
		t.Error("Expected slot 0 to name the registry")
	}
	if !bytes.HasPrefix(data[256:], []byte("CUSTOMER")) {
		t.Error("Expected slot 2 to hold CUSTOMER")
	}
}
