package dat

import (
	"fmt"

	"flexdb/pkg/codec"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/types"
)

const columnEntrySize = 8

// Column describes one field of a record.
type Column struct {
	Name string
	// Offset is the 1-based position of the column's first byte in a record.
	Offset   uint16
	Length   uint16
	Scale    uint8
	DataType DataType
	// MainIndex, RelatedFile and RelatedField are 0 when unset.
	MainIndex    uint8
	RelatedFile  uint8
	RelatedField uint16
}

// DecodeColumn decodes an 8-byte column entry:
//
//	[0:2] little-endian offset
//	[2]   main index (high nibble), decimal scale (low nibble, numeric only)
//	[3]   length (2.3b only)
//	[4]   type tag
//	[5]   related file
//	[6:8] little-endian related field
func DecodeColumn(data []byte, name string) (Column, error) {
	c := codec.NewCursor(data)
	if c.Len() < columnEntrySize {
		return Column{}, dberr.Format("column entry needs %d bytes, got %d", columnEntrySize, c.Len())
	}

	offset, _ := c.Uint16At(0)
	packed, _ := c.ByteAt(2)
	length, _ := c.ByteAt(3)
	tag, _ := c.ByteAt(4)
	relatedFile, _ := c.ByteAt(5)
	relatedField, _ := c.Uint16At(6)

	var scale uint8
	if tag == 1 {
		scale = packed & 0x0F
	}

	return Column{
		Name:         name,
		Offset:       offset,
		Length:       uint16(length),
		Scale:        scale,
		DataType:     dataTypeFromTag(tag, scale),
		MainIndex:    packed >> 4,
		RelatedFile:  relatedFile,
		RelatedField: relatedField,
	}, nil
}

// DecodeColumnTable decodes the first fieldCount 8-byte entries of data and
// zips in names by position.
func DecodeColumnTable(data []byte, names []string, fieldCount int) ([]Column, error) {
	chunks, err := codec.NewCursor(data).Chunks(0, len(data), columnEntrySize)
	if err != nil {
		return nil, err
	}
	if fieldCount > len(chunks) {
		return nil, dberr.Format("header declares %d columns but the column table holds %d", fieldCount, len(chunks))
	}

	columns := make([]Column, fieldCount)
	for i := range fieldCount {
		var name string
		if i < len(names) {
			name = names[i]
		}
		if columns[i], err = DecodeColumn(chunks[i], name); err != nil {
			return nil, err
		}
	}
	return columns, nil
}

// Span returns the column's bytes within record.
func (c Column) Span(record []byte) ([]byte, error) {
	if c.Offset == 0 {
		return nil, dberr.Format("column %q has offset 0", c.Name)
	}
	start := int(c.Offset) - 1
	span, err := codec.NewCursor(record).Range(start, start+int(c.Length))
	if err != nil {
		return nil, dberr.Format("column %q spans [%d,%d) outside a %d-byte record",
			c.Name, start, start+int(c.Length), len(record)).WithCause(err)
	}
	return span, nil
}

// Decode reads the column's value out of a full record.
// Binary and unknown columns always decode to null.
func (c Column) Decode(record []byte) (types.Field, error) {
	span, err := c.Span(record)
	if err != nil {
		return nil, err
	}

	switch c.DataType {
	case DataTypeAscii:
		return types.NewStringField(codec.Ascii(span)), nil

	case DataTypeText:
		s, err := codec.Text(span)
		if err != nil {
			return nil, err
		}
		return types.NewStringField(s), nil

	case DataTypeInt:
		v, err := codec.Int(span, true)
		if err != nil {
			return nil, err
		}
		return types.NewIntField(v), nil

	case DataTypeFloat:
		v, err := codec.Float(span, int(c.Scale))
		if err != nil {
			return nil, err
		}
		return types.NewFloatField(v), nil

	case DataTypeDate:
		d, ok, err := codec.Date(span)
		if err != nil {
			return nil, err
		}
		if !ok {
			return types.Null, nil
		}
		return types.NewDateField(d), nil

	default:
		return types.Null, nil
	}
}

func (c Column) String() string {
	return fmt.Sprintf("Column<name: %s | type: %s | offset: %d | length: %d>", c.Name, c.DataType, c.Offset, c.Length)
}
