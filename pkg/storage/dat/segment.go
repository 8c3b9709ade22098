package dat

import "fmt"

// Segment is one key part of an index: the column index it reads, at
// position Position within the key.
type Segment struct {
	Position uint8
	Column   uint8
}

// DecodeSegments turns each byte of data into a segment, in order.
func DecodeSegments(data []byte) []Segment {
	segments := make([]Segment, len(data))
	for i, b := range data {
		segments[i] = Segment{Position: uint8(i), Column: b} // #nosec G115
	}
	return segments
}

func (s Segment) String() string {
	return fmt.Sprintf("Segment<%d: column %d>", s.Position, s.Column)
}
