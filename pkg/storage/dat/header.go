package dat

import (
	"fmt"

	"flexdb/pkg/codec"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/primitives"
	"flexdb/pkg/types"
)

// Header is the decoded header region of a table file. It is immutable once decoded.
type Header struct {
	FieldCount         int
	RecordCount        uint32
	RecordLength       uint32
	MaxRecordCount     uint32
	HighestRecordCount uint32
	ReuseDeletedSpace  bool

	Indexes  []Index
	Columns  []Column
	RootName string

	RecordsPerBlock   uint32
	FillBytesPerBlock uint32

	// Path is the table file the header was read from; empty for DecodeHeader.
	Path primitives.Filepath

	// Layout is either LegacyLayout or CurrentLayout.
	Layout Layout
}

// DecodeHeader decodes a 512-byte (2.3b) or 3072-byte (3.0) header region.
// names are the known column names in order; missing names are synthesized.
func DecodeHeader(data []byte, names []string) (*Header, error) {
	var off offsets
	switch len(data) {
	case LegacyHeaderSize:
		off = legacyOffsets
	case CurrentHeaderSize:
		off = currentOffsets
	default:
		return nil, dberr.Format("expected a %d or %d byte header, got %d bytes",
			LegacyHeaderSize, CurrentHeaderSize, len(data)).At("DecodeHeader", "Header")
	}

	h, err := decodeCommon(codec.NewCursor(data), off, names)
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeFormat, "DecodeHeader", "Header")
	}

	if len(data) == LegacyHeaderSize {
		err = h.decodeLegacy(codec.NewCursor(data))
	} else {
		err = h.decodeCurrent(codec.NewCursor(data))
	}
	if err != nil {
		return nil, dberr.Wrap(err, dberr.CodeFormat, "DecodeHeader", "Header")
	}

	h.FillBytesPerBlock = blockSize % min(blockSize, h.RecordLength)

	if err := h.validateColumns(); err != nil {
		return nil, dberr.Wrap(err, dberr.CodeFormat, "DecodeHeader", "Header")
	}
	return h, nil
}

func decodeCommon(c *codec.Cursor, off offsets, names []string) (*Header, error) {
	h := &Header{}

	highest, err := c.Uint16At(off.highestRecordCount)
	if err != nil {
		return nil, err
	}
	count, err := c.Uint16At(off.recordCount)
	if err != nil {
		return nil, err
	}
	maxCount, err := c.Uint16At(off.maxRecordCount)
	if err != nil {
		return nil, err
	}
	recordLength, err := c.Uint16At(off.recordLength)
	if err != nil {
		return nil, err
	}
	fieldCount, err := c.ByteAt(off.fieldCount)
	if err != nil {
		return nil, err
	}
	reuse, err := c.ByteAt(off.reuseDeletedSpace)
	if err != nil {
		return nil, err
	}

	if recordLength == 0 {
		return nil, dberr.Format("record length is 0")
	}

	h.HighestRecordCount = uint32(highest)
	h.RecordCount = uint32(count)
	h.MaxRecordCount = uint32(maxCount)
	h.RecordLength = uint32(recordLength)
	h.FieldCount = int(fieldCount)
	h.ReuseDeletedSpace = reuse == 0

	indexData, err := c.Range(off.indexes.start, off.indexes.end)
	if err != nil {
		return nil, err
	}
	if h.Indexes, err = DecodeIndexTable(indexData, off.indexEntrySize); err != nil {
		return nil, err
	}

	rootName, err := c.Range(off.rootName.start, off.rootName.end)
	if err != nil {
		return nil, err
	}
	h.RootName = codec.Ascii(rootName)

	columnData, err := c.Range(off.columns.start, off.columns.end)
	if err != nil {
		return nil, err
	}
	h.Columns, err = DecodeColumnTable(columnData, ColumnNames(h.FieldCount, names), h.FieldCount)
	if err != nil {
		return nil, err
	}

	return h, nil
}

func (h *Header) decodeLegacy(c *codec.Cursor) error {
	multiuser, err := c.ByteAt(legacyMultiuserReread)
	if err != nil {
		return err
	}

	h.Layout = LegacyLayout{MultiuserReread: multiuser != 0}
	h.RecordsPerBlock = max(blockSize/h.RecordLength, 1)
	return nil
}

func (h *Header) decodeCurrent(c *codec.Cursor) error {
	compression, err := c.ByteAt(currentCompression)
	if err != nil {
		return err
	}
	firstAvailable, err := c.Uint16At(currentFirstAvailableRecord)
	if err != nil {
		return err
	}
	lock1, err := c.ByteAt(currentFileLocking1)
	if err != nil {
		return err
	}
	lock2, err := c.ByteAt(currentFileLocking2)
	if err != nil {
		return err
	}
	reuseRecords, err := c.ByteAt(currentReuseDeletedRecords)
	if err != nil {
		return err
	}
	perBlock, err := c.Uint16At(currentRecordsPerBlock)
	if err != nil {
		return err
	}
	integrity, err := c.Range(currentIntegrity.start, currentIntegrity.end)
	if err != nil {
		return err
	}

	var sum byte
	for _, b := range integrity {
		sum += b
	}

	h.Layout = CurrentLayout{
		Compression:          compressionFromByte(compression),
		FileLocking1:         lock1 != 0,
		FileLocking2:         lock2 == 1,
		FirstAvailableRecord: firstAvailable,
		HeaderIntegrity:      sum == 0,
		ReuseDeletedRecords:  reuseRecords == 1,
	}
	h.RecordsPerBlock = uint32(perBlock)
	h.reconcileColumnLengths()
	return nil
}

// reconcileColumnLengths derives column lengths for 3.0 headers, whose
// length bytes are placeholders. Each column runs up to the next column's
// offset and the last one runs to the end of the record.
func (h *Header) reconcileColumnLengths() {
	n := len(h.Columns)
	if n == 0 {
		return
	}
	if n == 1 {
		h.Columns[0].Length = uint16(h.RecordLength) // #nosec G115
		return
	}

	for i := 0; i < n-1; i++ {
		a, b := int(h.Columns[i].Offset), int(h.Columns[i+1].Offset)
		h.Columns[i].Length = uint16(max(a-b, b-a)) // #nosec G115
	}

	last := &h.Columns[n-1]
	if start := int(last.Offset) - 1; start >= 0 && start <= int(h.RecordLength) {
		last.Length = uint16(int(h.RecordLength) - start) // #nosec G115
	}
}

func (h *Header) validateColumns() error {
	for i, col := range h.Columns {
		if col.Offset == 0 {
			return dberr.Format("column %d (%s) has offset 0", i+1, col.Name)
		}
		if end := uint32(col.Offset) - 1 + uint32(col.Length); end > h.RecordLength {
			return dberr.Format("column %d (%s) ends at byte %d past the %d-byte record",
				i+1, col.Name, end, h.RecordLength)
		}
	}
	return nil
}

// Version returns the header layout version.
func (h *Header) Version() Version {
	if h.Layout == nil {
		return VersionUnknown
	}
	return h.Layout.Version()
}

// DataOffset is the file offset of record 0.
func (h *Header) DataOffset() int64 {
	if h.Layout == nil {
		return 0
	}
	return int64(h.Layout.HeaderSize())
}

// RecordOffset is the file offset of record n.
func (h *Header) RecordOffset(n uint32) int64 {
	return h.DataOffset() + int64(h.RecordLength)*int64(n)
}

// MultiuserReread reports the 2.3b multi-user flag; 3.0 headers never set it.
func (h *Header) MultiuserReread() bool {
	if l, ok := h.Layout.(LegacyLayout); ok {
		return l.MultiuserReread
	}
	return false
}

// ColumnNames returns the column names in record order.
func (h *Header) ColumnNames() []string {
	names := make([]string, len(h.Columns))
	for i, c := range h.Columns {
		names[i] = c.Name
	}
	return names
}

// EngineTypes returns the value type of each column in record order.
func (h *Header) EngineTypes() []types.Type {
	ts := make([]types.Type, len(h.Columns))
	for i, c := range h.Columns {
		ts[i] = c.DataType.EngineType()
	}
	return ts
}

func (h *Header) String() string {
	return fmt.Sprintf("Header<table_name: %s | version: %s>", h.RootName, h.Version())
}
