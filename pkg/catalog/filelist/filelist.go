// Package filelist reads the registry file that maps table numbers to
// on-disk table names.
package filelist

import (
	"errors"
	"fmt"
	"os"

	"flexdb/pkg/codec"
	dberr "flexdb/pkg/error"
	"flexdb/pkg/logging"
	"flexdb/pkg/primitives"
)

// FileName is the canonical name of the registry file.
const FileName = "filelist.cfg"

const entrySize = 128

// Entry is one registry slot.
type Entry struct {
	Number      primitives.FileNumber
	RootName    string
	Alias       string
	Description string
}

// DecodeEntry decodes the 128-byte slot at position number.
//
// Slot 0 must name the registry file and no other slot may. Slots other than
// 0 that carry neither an alias nor a description are empty and rejected.
func DecodeEntry(data []byte, number primitives.FileNumber) (Entry, error) {
	c := codec.NewCursor(data)
	root, err := c.Range(0, 40)
	if err != nil {
		return Entry{}, dberr.Format("registry entry %d is truncated", number).WithCause(err)
	}
	alias, err := c.Range(41, 73)
	if err != nil {
		return Entry{}, dberr.Format("registry entry %d is truncated", number).WithCause(err)
	}
	desc, err := c.Range(73, c.Len())
	if err != nil {
		return Entry{}, dberr.Format("registry entry %d is truncated", number).WithCause(err)
	}

	e := Entry{
		Number:      number,
		RootName:    codec.Ascii(root),
		Alias:       codec.Ascii(alias),
		Description: codec.Ascii(desc),
	}

	self := primitives.FoldEqual(e.RootName, FileName)
	if number.IsRegistry() != self {
		return Entry{}, dberr.Format("registry entry %d has root name %q", number, e.RootName)
	}
	if !number.IsRegistry() && e.Alias == "" && e.Description == "" {
		return Entry{}, dberr.NotFound("registry entry %d is empty", number)
	}
	return e, nil
}

// Matches reports whether name equals the entry's root name or alias under
// case folding.
func (e Entry) Matches(name string) bool {
	if primitives.FoldEqual(name, e.RootName) {
		return true
	}
	return e.Alias != "" && primitives.FoldEqual(name, e.Alias)
}

// DisplayName is the alias when there is one, else the root name.
func (e Entry) DisplayName() string {
	if e.Alias != "" {
		return e.Alias
	}
	return e.RootName
}

func (e Entry) String() string {
	return fmt.Sprintf("FileListEntry<number: %d | root_name: %s | alias: %s | desc: %s>",
		e.Number, e.RootName, e.Alias, e.Description)
}

// FileList is the parsed registry. It is immutable after Parse.
type FileList struct {
	path     primitives.Filepath
	entries  []Entry
	byNumber map[primitives.FileNumber]int
}

// Parse decodes every 128-byte slot of data. Invalid and empty slots are
// dropped; a trailing partial slot is ignored.
func Parse(data []byte) (*FileList, error) {
	chunks, err := codec.NewCursor(data).Chunks(0, len(data), entrySize)
	if err != nil {
		return nil, err
	}

	log := logging.WithComponent("filelist")
	fl := &FileList{
		entries:  make([]Entry, 0, len(chunks)),
		byNumber: make(map[primitives.FileNumber]int, len(chunks)),
	}
	for i, chunk := range chunks {
		number := primitives.FileNumber(i) // #nosec G115
		e, err := DecodeEntry(chunk, number)
		if err != nil {
			if !dberr.IsNotFound(err) {
				log.Debug("registry slot skipped", "file_number", i, "error", err)
			}
			continue
		}
		fl.byNumber[number] = len(fl.entries)
		fl.entries = append(fl.entries, e)
	}
	return fl, nil
}

// Load reads and parses the registry file at path.
func Load(path primitives.Filepath) (*FileList, error) {
	data, err := os.ReadFile(path.String())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, dberr.NotFound("registry %s does not exist", path).WithCause(err)
		}
		return nil, dberr.IO(err, "Load", "FileList")
	}

	fl, err := Parse(data)
	if err != nil {
		return nil, err
	}
	fl.path = path
	return fl, nil
}

// Path returns the file the registry was loaded from; empty for Parse.
func (fl *FileList) Path() primitives.Filepath {
	return fl.path
}

// Len returns the number of valid entries, the registry slot included.
func (fl *FileList) Len() int {
	return len(fl.entries)
}

// Entries returns a copy of every valid entry in file order.
func (fl *FileList) Entries() []Entry {
	out := make([]Entry, len(fl.entries))
	copy(out, fl.entries)
	return out
}

// Tables returns the entries describing tables, i.e. all but slot 0.
func (fl *FileList) Tables() []Entry {
	out := make([]Entry, 0, len(fl.entries))
	for _, e := range fl.entries {
		if !e.Number.IsRegistry() {
			out = append(out, e)
		}
	}
	return out
}

// Get returns the entry with the given file number.
func (fl *FileList) Get(number primitives.FileNumber) (Entry, bool) {
	i, ok := fl.byNumber[number]
	if !ok {
		return Entry{}, false
	}
	return fl.entries[i], true
}

// Lookup returns the first entry whose root name or alias matches name.
func (fl *FileList) Lookup(name string) (Entry, bool) {
	for _, e := range fl.entries {
		if e.Matches(name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Contains reports whether Lookup would find name.
func (fl *FileList) Contains(name string) bool {
	_, ok := fl.Lookup(name)
	return ok
}

// At returns the entry at position i among the valid entries; negative
// positions count from the end.
func (fl *FileList) At(i int) (Entry, error) {
	n, ok := primitives.NormalizeIndex(int64(i), int64(len(fl.entries)))
	if !ok {
		return Entry{}, dberr.NotFound("registry position %d is out of range", i).
			WithDetail("registry holds %d entries", len(fl.entries))
	}
	return fl.entries[n], nil
}

// Slice returns the entries at positions [start, end), with negative bounds
// counting from the end. Out-of-range bounds are clamped.
func (fl *FileList) Slice(start, end int) []Entry {
	s, e := primitives.NormalizeBounds(int64(start), int64(end), int64(len(fl.entries)))
	out := make([]Entry, e-s)
	copy(out, fl.entries[s:e])
	return out
}

func (fl *FileList) String() string {
	return fmt.Sprintf("FileList<tables: %d>", len(fl.entries))
}
