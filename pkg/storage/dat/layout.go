package dat

import "fmt"

const (
	LegacyHeaderSize  = 512
	CurrentHeaderSize = 3072

	// blockSize is the unit records are packed into; records never straddle a block.
	blockSize = 512

	versionMarkerOffset = 0x1C
)

// Layout holds the attributes that exist only in one header version.
// It is implemented by LegacyLayout and CurrentLayout only.
type Layout interface {
	Version() Version
	// HeaderSize is the size of the header region, which is also where records start.
	HeaderSize() int
	sealed()
}

// LegacyLayout carries the 2.3b-only attributes.
type LegacyLayout struct {
	MultiuserReread bool
}

func (LegacyLayout) Version() Version { return Version23b }
func (LegacyLayout) HeaderSize() int  { return LegacyHeaderSize }
func (LegacyLayout) sealed()          {}

func (l LegacyLayout) String() string {
	return fmt.Sprintf("2.3b<multiuser_reread: %t>", l.MultiuserReread)
}

// CurrentLayout carries the 3.0-only attributes.
type CurrentLayout struct {
	Compression          Compression
	FileLocking1         bool
	FileLocking2         bool
	FirstAvailableRecord uint16
	HeaderIntegrity      bool
	ReuseDeletedRecords  bool
}

func (CurrentLayout) Version() Version { return Version30 }
func (CurrentLayout) HeaderSize() int  { return CurrentHeaderSize }
func (CurrentLayout) sealed()          {}

func (l CurrentLayout) String() string {
	return fmt.Sprintf("3.0<compression: %s | locking: %t/%t | first_available: %d | integrity: %t | reuse_deleted: %t>",
		l.Compression, l.FileLocking1, l.FileLocking2, l.FirstAvailableRecord, l.HeaderIntegrity, l.ReuseDeletedRecords)
}

// region is a half-open byte range of the header.
type region struct {
	start, end int
}

// offsets is the byte map of one header version.
type offsets struct {
	highestRecordCount int
	recordCount        int
	maxRecordCount     int
	recordLength       int
	fieldCount         int
	reuseDeletedSpace  int
	indexes            region
	indexEntrySize     int
	rootName           region
	columns            region
}

var legacyOffsets = offsets{
	highestRecordCount: 0x00,
	recordCount:        0x08,
	maxRecordCount:     0x0C,
	recordLength:       0x4E,
	fieldCount:         0x59,
	reuseDeletedSpace:  0x58,
	indexes:            region{0x64, 0xB4},
	indexEntrySize:     legacyIndexEntrySize,
	rootName:           region{0xB4, 0xBD},
	columns:            region{0xC4, 0x1FD},
}

const legacyMultiuserReread = 0x5C

var currentOffsets = offsets{
	highestRecordCount: 0x00,
	recordCount:        0x08,
	maxRecordCount:     0x0C,
	recordLength:       0x9A,
	fieldCount:         0xA5,
	reuseDeletedSpace:  0x4A,
	indexes:            region{0xB0, 0x1D0},
	indexEntrySize:     currentIndexEntrySize,
	rootName:           region{0x2D0, 0x2E0},
	columns:            region{0x2E0, 0xAD8},
}

// 3.0-only attribute offsets.
const (
	currentCompression          = 0x1F
	currentFirstAvailableRecord = 0x20
	currentFileLocking1         = 0x41
	currentReuseDeletedRecords  = 0xA4
	currentFileLocking2         = 0xA8
	currentRecordsPerBlock      = 0x98
)

var currentIntegrity = region{0x10, 0x14}
