package primitives

import (
	"os"
	"path/filepath"
	"strings"
)

// Filepath is a type-safe wrapper around file paths used throughout the decoder.
// It provides convenient methods for path manipulation and file operations while
// reducing the need for string conversions.
//
// The Filepath type is used for:
//   - Table data files (<root>.dat)
//   - Companion tag files (<root>.tag)
//   - The registry file (filelist.cfg)
//
// Example usage:
//
//	dataDir := primitives.Filepath("/data")
//	tablePath := dataDir.Join("customer.dat")
//	tagPath := tablePath.WithExt(".tag")
type Filepath string

// Dir returns the directory portion of the file path.
//
// Example:
//
//	path := primitives.Filepath("/data/customer.dat")
//	dir := path.Dir() // Returns "/data"
func (f Filepath) Dir() Filepath {
	return Filepath(filepath.Dir(string(f)))
}

// String converts the Filepath to a standard string.
func (f Filepath) String() string {
	return string(f)
}

// Join concatenates path elements to this path and returns a new Filepath.
//
// Example:
//
//	dataDir := primitives.Filepath("/data")
//	tablePath := dataDir.Join("customer.dat")
//	// Returns Filepath("/data/customer.dat")
func (f Filepath) Join(elem ...string) Filepath {
	parts := append([]string{string(f)}, elem...)
	return Filepath(filepath.Join(parts...))
}

// Base returns the last element of the path (the filename).
func (f Filepath) Base() string {
	return filepath.Base(string(f))
}

// Stem returns the filename without its extension.
//
// Example:
//
//	primitives.Filepath("/data/CUSTOMER.DAT").Stem() // Returns "CUSTOMER"
func (f Filepath) Stem() string {
	base := f.Base()
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// Exists checks whether the path exists on the filesystem.
func (f Filepath) Exists() bool {
	_, err := os.Stat(string(f))
	return err == nil
}

// IsDir reports whether the path exists and is a directory.
func (f Filepath) IsDir() bool {
	info, err := os.Stat(string(f))
	return err == nil && info.IsDir()
}

// IsFile reports whether the path exists and is a regular file.
func (f Filepath) IsFile() bool {
	info, err := os.Stat(string(f))
	return err == nil && info.Mode().IsRegular()
}

// IsEmpty checks whether the filepath is an empty string.
func (f Filepath) IsEmpty() bool {
	return string(f) == ""
}

// Ext returns the file extension including the dot.
// Returns empty string if the file has no extension.
func (f Filepath) Ext() string {
	return filepath.Ext(string(f))
}

// WithExt returns a new Filepath with the extension replaced.
// If the new extension doesn't start with a dot, one is automatically added.
//
// Example:
//
//	path := primitives.Filepath("/data/customer.dat")
//	tags := path.WithExt(".tag")  // Returns "/data/customer.tag"
//	tags2 := path.WithExt("tag")  // Returns "/data/customer.tag"
func (f Filepath) WithExt(newExt string) Filepath {
	ext := f.Ext()
	base := strings.TrimSuffix(string(f), ext)
	if newExt != "" && !strings.HasPrefix(newExt, ".") {
		newExt = "." + newExt
	}
	return Filepath(base + newExt)
}

// IsAbs reports whether the path is absolute.
func (f Filepath) IsAbs() bool {
	return filepath.IsAbs(string(f))
}

// Clean returns the shortest path name equivalent to the path by purely lexical processing.
func (f Filepath) Clean() Filepath {
	return Filepath(filepath.Clean(string(f)))
}

// Abs returns an absolute representation of the path.
// Symlinks are resolved when possible; otherwise the lexical absolute path is returned.
func (f Filepath) Abs() (Filepath, error) {
	abs, err := filepath.Abs(string(f))
	if err != nil {
		return f, err
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}
	return Filepath(abs), nil
}

// Stat returns file information from the filesystem.
func (f Filepath) Stat() (os.FileInfo, error) {
	return os.Stat(string(f))
}

// Size returns the file size in bytes, or 0 when the file cannot be stat'ed.
func (f Filepath) Size() int64 {
	info, err := os.Stat(string(f))
	if err != nil {
		return 0
	}
	return info.Size()
}

// ResolveFold returns f when it exists. Otherwise it searches f's directory
// for an entry whose name matches f's base name under Unicode case folding,
// which is how tables copied from case-insensitive filesystems are found.
func (f Filepath) ResolveFold() (Filepath, bool) {
	if f.Exists() {
		return f, true
	}

	dir := f.Dir()
	entries, err := os.ReadDir(string(dir))
	if err != nil {
		return f, false
	}

	want := f.Base()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if FoldEqual(entry.Name(), want) {
			return dir.Join(entry.Name()), true
		}
	}
	return f, false
}
