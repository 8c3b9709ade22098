package primitives

import "fmt"

// IsRegistry reports whether n is the registry's own slot.
func (n FileNumber) IsRegistry() bool {
	return n == RegistryFileNumber
}

// String returns a string representation of the FileNumber.
func (n FileNumber) String() string {
	return fmt.Sprintf("File(%d)", uint32(n))
}

// String returns a string representation of the RecordNumber.
func (r RecordNumber) String() string {
	return fmt.Sprintf("Record(%d)", uint32(r))
}

// NormalizeIndex resolves a possibly negative index against length, the way
// record and registry positions are addressed: -1 is the last element.
// ok is false when the resolved index falls outside [0, length).
func NormalizeIndex(index int64, length int64) (resolved int64, ok bool) {
	if index < 0 {
		index += length
	}
	if index < 0 || index >= length {
		return index, false
	}
	return index, true
}

// NormalizeBounds resolves a half-open [start, end) range with negative bounds
// counting from the end and clamps it to [0, length].
func NormalizeBounds(start, end, length int64) (int64, int64) {
	if start < 0 {
		start += length
	}
	if end < 0 {
		end += length
	}
	start = max(0, min(start, length))
	end = max(0, min(end, length))
	if end < start {
		end = start
	}
	return start, end
}
