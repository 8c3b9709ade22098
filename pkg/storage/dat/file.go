package dat

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	dberr "flexdb/pkg/error"
	"flexdb/pkg/primitives"
)

// DataFile is a read-only handle on a table file.
//
// Reads go through ReadAt and may run concurrently; the lock only keeps Close
// from racing with in-flight reads.
type DataFile struct {
	file     *os.File
	mutex    sync.RWMutex
	filePath primitives.Filepath
}

// OpenDataFile opens the table file at filePath for reading.
func OpenDataFile(filePath primitives.Filepath) (*DataFile, error) {
	if filePath.IsEmpty() {
		return nil, fmt.Errorf("filePath cannot be empty")
	}

	file, err := os.Open(filePath.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, dberr.NotFound("table file %s does not exist", filePath).WithCause(err)
		}
		return nil, dberr.IO(err, "OpenDataFile", "DataFile")
	}

	return &DataFile{file: file, filePath: filePath}, nil
}

// Path returns the path the file was opened from.
func (df *DataFile) Path() primitives.Filepath {
	return df.filePath
}

// ReadAt implements io.ReaderAt.
func (df *DataFile) ReadAt(p []byte, off int64) (int, error) {
	df.mutex.RLock()
	defer df.mutex.RUnlock()

	if df.file == nil {
		return 0, os.ErrClosed
	}
	return df.file.ReadAt(p, off)
}

// ReadRange reads exactly n bytes at off. A file that ends early is a format
// error since the header promised those bytes.
func (df *DataFile) ReadRange(off int64, n int) ([]byte, error) {
	buf := make([]byte, n)
	read, err := df.ReadAt(buf, off)
	if read == n {
		return buf, nil
	}
	if err == nil || errors.Is(err, io.EOF) {
		return nil, dberr.Format("%s ends after %d of %d bytes at offset %d", df.filePath.Base(), read, n, off)
	}
	return nil, dberr.IO(err, "ReadRange", "DataFile")
}

// Size returns the current file size.
func (df *DataFile) Size() (int64, error) {
	df.mutex.RLock()
	defer df.mutex.RUnlock()

	if df.file == nil {
		return 0, os.ErrClosed
	}
	info, err := df.file.Stat()
	if err != nil {
		return 0, dberr.IO(err, "Size", "DataFile")
	}
	return info.Size(), nil
}

// Close releases the file handle. Closing twice is a no-op.
func (df *DataFile) Close() error {
	df.mutex.Lock()
	defer df.mutex.Unlock()

	if df.file == nil {
		return nil
	}
	err := df.file.Close()
	df.file = nil
	return err
}
