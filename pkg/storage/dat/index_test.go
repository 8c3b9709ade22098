package dat

import (
	"reflect"
	"testing"

	dberr "flexdb/pkg/error"
)

func TestDecodeIndex(t *testing.T) {
	tests := []struct {
		name      string
		entry     []byte
		indexType IndexType
		columns   []uint8
		collation Collation
	}{
		{
			name:      "legacy online",
			entry:     []byte{0x02, 0x03, 0x01, 0x09, 0x09, 0x09, 0x09, 0x01},
			indexType: IndexTypeOnline,
			columns:   []uint8{3, 1},
			collation: CollationAscending,
		},
		{
			name:      "legacy batch",
			entry:     []byte{0x81, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02},
			indexType: IndexTypeBatch,
			columns:   []uint8{4},
			collation: CollationUppercase,
		},
		{
			name: "current",
			entry: []byte{0x03, 0x07, 0x02, 0x05, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
				0x09},
			indexType: IndexTypeOnline,
			columns:   []uint8{7, 2, 5},
			collation: CollationUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, err := DecodeIndex(tt.entry)
			if err != nil {
				t.Fatalf("DecodeIndex failed: %v", err)
			}
			if idx.Type != tt.indexType {
				t.Errorf("Expected type %s, got %s", tt.indexType, idx.Type)
			}
			if !reflect.DeepEqual(idx.Columns(), tt.columns) {
				t.Errorf("Expected columns %v, got %v", tt.columns, idx.Columns())
			}
			if idx.Collation != tt.collation {
				t.Errorf("Expected collation %s, got %s", tt.collation, idx.Collation)
			}
			for i, s := range idx.Segments {
				if int(s.Position) != i {
					t.Errorf("Expected segment %d at position %d, got %d", i, i, s.Position)
				}
			}
		})
	}
}

func TestDecodeIndex_Errors(t *testing.T) {
	tests := []struct {
		name  string
		entry []byte
	}{
		{"empty", nil},
		{"too short", []byte{0x01, 0x01}},
		{"no segments", []byte{0x80, 0, 0, 0, 0, 0, 0, 0}},
		{"too many segments", []byte{0x07, 1, 2, 3, 4, 5, 6, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeIndex(tt.entry); !dberr.IsFormat(err) {
				t.Errorf("Expected a format error, got %v", err)
			}
		})
	}
}

func TestDecodeIndexTable(t *testing.T) {
	data := []byte{
		0x01, 0x02, 0, 0, 0, 0, 0, 0x00,
		0x80, 0, 0, 0, 0, 0, 0, 0x00, // unused slot
		0x82, 0x01, 0x03, 0, 0, 0, 0, 0x02,
		0x00, 0x00, 0x00, // trailing partial entry
	}

	indexes, err := DecodeIndexTable(data, legacyIndexEntrySize)
	if err != nil {
		t.Fatalf("DecodeIndexTable failed: %v", err)
	}
	if len(indexes) != 2 {
		t.Fatalf("Expected 2 indexes, got %d", len(indexes))
	}
	if indexes[1].Type != IndexTypeBatch || !reflect.DeepEqual(indexes[1].Columns(), []uint8{1, 3}) {
		t.Errorf("Unexpected second index: %s %v", indexes[1], indexes[1].Columns())
	}
}

func TestDecodeSegments(t *testing.T) {
	segments := DecodeSegments([]byte{4, 9})
	expected := []Segment{{Position: 0, Column: 4}, {Position: 1, Column: 9}}
	if !reflect.DeepEqual(segments, expected) {
		t.Errorf("Expected %v, got %v", expected, segments)
	}
}
