package dat

import (
	"bytes"
	"errors"
	"io"
	"os"

	"flexdb/pkg/codec"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/primitives"
)

var (
	currentMarker = []byte{0x1E, 0x1E}
	legacyMarker  = []byte{0x00, 0x00}
)

// ReadHeaderBytes reads the header region of a table file. Up to 3072 bytes
// are read; the marker at 0x1C selects whether all of them (3.0) or only the
// first 512 (2.3b) belong to the header.
func ReadHeaderBytes(r io.ReaderAt) ([]byte, error) {
	buf := make([]byte, CurrentHeaderSize)
	n, err := r.ReadAt(buf, 0)
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, dberr.IO(err, "ReadHeaderBytes", "Header")
	}
	buf = buf[:n]

	marker, err := codec.NewCursor(buf).Range(versionMarkerOffset, versionMarkerOffset+2)
	if err != nil {
		return nil, dberr.Format("file of %d bytes is too short to hold a version marker", n).
			At("ReadHeaderBytes", "Header")
	}

	switch {
	case bytes.Equal(marker, currentMarker):
		return buf, nil
	case bytes.Equal(marker, legacyMarker):
		return buf[:min(n, LegacyHeaderSize)], nil
	default:
		return nil, dberr.Format("unsupported table format (version marker % X)", marker).
			At("ReadHeaderBytes", "Header")
	}
}

// LoadHeader reads and decodes the header of the table file at path using r
// for the bytes. Column names come from the table's tag file when one exists.
func LoadHeader(r io.ReaderAt, path primitives.Filepath) (*Header, error) {
	data, err := ReadHeaderBytes(r)
	if err != nil {
		return nil, err
	}

	var names []string
	if tagPath, ok := FindTagFile(path); ok {
		tags, err := ReadTagFile(tagPath)
		if err != nil {
			return nil, err
		}
		names = tags.Tags
	}

	h, err := DecodeHeader(data, names)
	if err != nil {
		return nil, err
	}
	h.Path = path
	return h, nil
}

// ReadHeader opens the table file at path and decodes its header.
func ReadHeader(path primitives.Filepath) (*Header, error) {
	f, err := os.Open(path.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, dberr.NotFound("table file %s does not exist", path).WithCause(err)
		}
		return nil, dberr.IO(err, "ReadHeader", "Header")
	}
	defer f.Close()

	return LoadHeader(f, path)
}
