package dat

// Version identifies the header layout of a table file.
type Version int

const (
	VersionUnknown Version = iota
	Version23b
	Version30
)

func (v Version) String() string {
	switch v {
	case Version23b:
		return "2.3b"
	case Version30:
		return "3.0"
	default:
		return "UNKNOWN"
	}
}

// IndexType tells whether an index is maintained on every write or rebuilt in batch.
type IndexType int

const (
	IndexTypeUnknown IndexType = iota
	IndexTypeOnline
	IndexTypeBatch
)

func (t IndexType) String() string {
	switch t {
	case IndexTypeOnline:
		return "ONLINE"
	case IndexTypeBatch:
		return "BATCH"
	default:
		return "UNKNOWN"
	}
}

// Collation is the sort order of an index.
type Collation int

const (
	CollationDefault Collation = iota
	CollationAscending
	CollationUppercase
	CollationUnknown
)

func collationFromByte(b byte) Collation {
	switch b {
	case 0:
		return CollationDefault
	case 1:
		return CollationAscending
	case 2:
		return CollationUppercase
	default:
		return CollationUnknown
	}
}

func (c Collation) String() string {
	switch c {
	case CollationDefault:
		return "DEFAULT"
	case CollationAscending:
		return "ASCENDING"
	case CollationUppercase:
		return "UPPERCASE"
	default:
		return "UNKNOWN"
	}
}

// Compression is the record compression scheme of a 3.0 table.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionFast
	CompressionStandard
	CompressionUnknown
)

func compressionFromByte(b byte) Compression {
	switch b {
	case 0:
		return CompressionNone
	case 1:
		return CompressionFast
	case 2:
		return CompressionStandard
	default:
		return CompressionUnknown
	}
}

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "NONE"
	case CompressionFast:
		return "FAST"
	case CompressionStandard:
		return "STANDARD"
	default:
		return "UNKNOWN"
	}
}
