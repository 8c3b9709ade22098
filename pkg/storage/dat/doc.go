// Package dat decodes the on-disk structures of a table data file.
//
// A table file starts with a header region whose size depends on the format
// version: 512 bytes for 2.3b files and 3072 bytes for 3.0 files. The version
// is detected from the two marker bytes at offset 0x1C. The header holds the
// record counts and length, an index table, the file root name and a column
// table; 3.0 headers add compression, locking and integrity attributes. Fixed
// length records follow the header immediately.
//
// Column names are not stored in the data file. They come from a companion
// ".tag" file holding whitespace-separated names in column order; missing
// names are synthesized as Column1, Column2, ...
//
// Everything in this package is read-only. Offsets are literal per-version
// tables (see layout.go) and every read goes through codec.Cursor.
package dat
