package dat

import (
	"fmt"

	"flexdb/pkg/codec"
	dberr "flexdb/pkg/error"
)

const (
	legacyIndexEntrySize  = 8
	currentIndexEntrySize = 18
)

// Index is one entry of a header's index table.
type Index struct {
	Type       IndexType
	FieldCount uint8
	Segments   []Segment
	Collation  Collation
}

// DecodeIndex decodes an 8-byte (2.3b) or 18-byte (3.0) index entry.
//
// Byte 0 holds the segment count, with the high bit set for batch indexes.
// The following 6 or 16 bytes are segment slots and the next byte is the
// collation. Only the first FieldCount segments are kept.
func DecodeIndex(data []byte) (*Index, error) {
	c := codec.NewCursor(data)

	end := 17
	if len(data) < currentIndexEntrySize {
		end = 7
	}

	flags, err := c.ByteAt(0)
	if err != nil {
		return nil, dberr.Format("index entry is empty").WithCause(err)
	}
	slots, err := c.Range(1, end)
	if err != nil {
		return nil, dberr.Format("index entry of %d bytes is too short", len(data)).WithCause(err)
	}
	collation, err := c.ByteAt(end)
	if err != nil {
		return nil, dberr.Format("index entry of %d bytes has no collation byte", len(data)).WithCause(err)
	}

	idx := &Index{
		Type:       IndexTypeOnline,
		FieldCount: flags,
		Collation:  collationFromByte(collation),
	}
	if flags >= 128 {
		idx.Type = IndexTypeBatch
		idx.FieldCount = flags - 128
	}

	if idx.FieldCount == 0 {
		return nil, dberr.Format("index entry has no segments")
	}
	if int(idx.FieldCount) > len(slots) {
		return nil, dberr.Format("index declares %d segments but only %d slots exist", idx.FieldCount, len(slots))
	}
	idx.Segments = DecodeSegments(slots[:idx.FieldCount])

	return idx, nil
}

// DecodeIndexTable decodes consecutive entries of entrySize bytes. Unused
// slots (zero segment count) are skipped.
func DecodeIndexTable(data []byte, entrySize int) ([]Index, error) {
	chunks, err := codec.NewCursor(data).Chunks(0, len(data), entrySize)
	if err != nil {
		return nil, err
	}

	indexes := make([]Index, 0, len(chunks))
	for i, chunk := range chunks {
		if chunk[0]&0x7F == 0 {
			continue
		}
		idx, err := DecodeIndex(chunk)
		if err != nil {
			return nil, dberr.Format("invalid index entry %d", i+1).WithCause(err)
		}
		indexes = append(indexes, *idx)
	}
	return indexes, nil
}

// Columns returns the column indexes of the key, in key order.
func (i Index) Columns() []uint8 {
	cols := make([]uint8, len(i.Segments))
	for n, s := range i.Segments {
		cols[n] = s.Column
	}
	return cols
}

func (i Index) String() string {
	return fmt.Sprintf("Index<type: %s | segments: %d | collation: %s>", i.Type, i.FieldCount, i.Collation)
}
