// Package codec converts raw byte slices from table files into typed values.
//
// Numbers are stored as packed binary-coded decimal (two digits per byte,
// most significant nibble first) with a sign nibble in the leading byte,
// except for two-byte fields which hold a raw little-endian int16. Dates are
// day counts from 1642-09-17 offset by 700003. Text is single-byte characters
// with control bytes stripped; TEXT columns carry a little-endian u16 length
// prefix.
//
// All fixed-offset parsing goes through Cursor, which turns short or
// malformed buffers into FORMAT_ERROR results instead of panics.
package codec
