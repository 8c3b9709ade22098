package dat

import (
	"fmt"
	"os"
	"strings"

	dberr "flexdb/pkg/error"
	"flexdb/pkg/primitives"
)

// MaxColumns caps the number of column names, synthesized or not.
const MaxColumns = 255

// TagFile is the companion file listing a table's column names.
type TagFile struct {
	Path primitives.Filepath
	Tags []string
}

// FindTagFile looks for the tag file next to a table file: same base name,
// ".tag" extension, matched without regard to case.
func FindTagFile(tablePath primitives.Filepath) (primitives.Filepath, bool) {
	if tablePath.IsEmpty() {
		return "", false
	}
	tagPath, ok := tablePath.WithExt(".tag").ResolveFold()
	if !ok || !tagPath.IsFile() {
		return "", false
	}
	return tagPath, true
}

// ReadTagFile reads the whitespace-separated names of a tag file.
func ReadTagFile(path primitives.Filepath) (*TagFile, error) {
	data, err := os.ReadFile(path.String())
	if err != nil {
		return nil, dberr.IO(err, "ReadTagFile", "TagFile")
	}
	return &TagFile{Path: path, Tags: strings.Fields(string(data))}, nil
}

// ColumnNames pads known to fieldCount entries with Column{n} placeholders
// (n is 1-based) and caps the result at MaxColumns names.
func ColumnNames(fieldCount int, known []string) []string {
	names := make([]string, 0, max(fieldCount, len(known)))
	names = append(names, known...)
	for n := len(known); n < fieldCount; n++ {
		names = append(names, fmt.Sprintf("Column%d", n+1))
	}
	if len(names) > MaxColumns {
		names = names[:MaxColumns]
	}
	return names
}

func (t *TagFile) String() string {
	return fmt.Sprintf("TagFile<'%s' | [%s]>", t.Path, strings.Join(t.Tags, ", "))
}
