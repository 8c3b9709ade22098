package codec

import (
	"encoding/binary"

	dberr "flexdb/pkg/error"
)

// Cursor is a bounds-checked reader over a byte buffer. It supports both
// sequential reads (Byte, Uint16, Next) and absolute reads (ByteAt, Uint16At,
// Range) so that fixed offset tables can be expressed directly.
type Cursor struct {
	buf []byte
	pos int
}

// NewCursor creates a cursor positioned at the start of buf.
func NewCursor(buf []byte) *Cursor {
	return &Cursor{buf: buf}
}

// Len returns the total buffer length.
func (c *Cursor) Len() int {
	return len(c.buf)
}

// Pos returns the current read position.
func (c *Cursor) Pos() int {
	return c.pos
}

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int {
	return len(c.buf) - c.pos
}

// Seek moves the read position to off.
func (c *Cursor) Seek(off int) error {
	if off < 0 || off > len(c.buf) {
		return c.outOfBounds(off, 0)
	}
	c.pos = off
	return nil
}

// Byte reads one byte and advances.
func (c *Cursor) Byte() (byte, error) {
	b, err := c.ByteAt(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos++
	return b, nil
}

// Uint16 reads a little-endian u16 and advances.
func (c *Cursor) Uint16() (uint16, error) {
	v, err := c.Uint16At(c.pos)
	if err != nil {
		return 0, err
	}
	c.pos += 2
	return v, nil
}

// Next returns the next n bytes and advances. The returned slice aliases the buffer.
func (c *Cursor) Next(n int) ([]byte, error) {
	b, err := c.Range(c.pos, c.pos+n)
	if err != nil {
		return nil, err
	}
	c.pos += n
	return b, nil
}

// ByteAt reads the byte at an absolute offset without moving the cursor.
func (c *Cursor) ByteAt(off int) (byte, error) {
	if off < 0 || off >= len(c.buf) {
		return 0, c.outOfBounds(off, 1)
	}
	return c.buf[off], nil
}

// Uint16At reads a little-endian u16 at an absolute offset.
func (c *Cursor) Uint16At(off int) (uint16, error) {
	b, err := c.Range(off, off+2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Range returns buf[start:end] after checking both bounds.
func (c *Cursor) Range(start, end int) ([]byte, error) {
	if start < 0 || end < start || end > len(c.buf) {
		return nil, c.outOfBounds(start, end-start)
	}
	return c.buf[start:end], nil
}

// Chunks splits buf[start:end] into consecutive size-byte pieces. A trailing
// remainder shorter than size is ignored.
func (c *Cursor) Chunks(start, end, size int) ([][]byte, error) {
	if size <= 0 {
		return nil, dberr.Internal("chunk size must be positive, got %d", size)
	}
	region, err := c.Range(start, end)
	if err != nil {
		return nil, err
	}

	chunks := make([][]byte, 0, len(region)/size)
	for off := 0; off+size <= len(region); off += size {
		chunks = append(chunks, region[off:off+size])
	}
	return chunks, nil
}

func (c *Cursor) outOfBounds(off, n int) error {
	return dberr.Format("read of %d bytes at offset %d exceeds buffer of %d bytes", n, off, len(c.buf))
}
