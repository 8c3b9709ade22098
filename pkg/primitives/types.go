package primitives

import "math"

// FileNumber is the numeric table identifier assigned by the registry file.
// Number 0 always denotes the registry itself.
type FileNumber uint32

// RecordNumber is the zero-based position of a record in a table's data region.
type RecordNumber uint32

// ColumnID identifies a column within a table by its zero-based position.
type ColumnID uint32

// Sentinel values for invalid/unset identifiers
const (
	// RegistryFileNumber is the slot that describes the registry file itself.
	RegistryFileNumber FileNumber = 0

	InvalidColumnID ColumnID = math.MaxUint32
)
