package error

import (
	"errors"
	"fmt"
)

// Error codes used across the decoder, caches and store adapter.
const (
	CodeFormat       = "FORMAT_ERROR"
	CodeBCDDecoding  = "BCD_DECODING_ERROR"
	CodeDateDecoding = "DATE_DECODING_ERROR"
	CodeTextDecoding = "TEXT_DECODING_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeNotSupported = "NOT_SUPPORTED"
	CodeInternal     = "INTERNAL_ERROR"
	CodeIO           = "IO_ERROR"
)

// Sentinels for errors.Is. Matching is by Code only.
var (
	ErrFormat       = &DBError{Code: CodeFormat}
	ErrBCDDecoding  = &DBError{Code: CodeBCDDecoding}
	ErrDateDecoding = &DBError{Code: CodeDateDecoding}
	ErrTextDecoding = &DBError{Code: CodeTextDecoding}
	ErrNotFound     = &DBError{Code: CodeNotFound}
	ErrNotSupported = &DBError{Code: CodeNotSupported}
	ErrInternal     = &DBError{Code: CodeInternal}
)

// Format reports bytes that do not match any known on-disk layout.
func Format(format string, args ...any) *DBError {
	err := New(ErrCategoryData, CodeFormat, fmt.Sprintf(format, args...))
	err.Stack = captureStack()
	return err
}

// BCDDecoding reports a malformed packed-BCD number.
func BCDDecoding(format string, args ...any) *DBError {
	err := New(ErrCategoryData, CodeBCDDecoding, fmt.Sprintf(format, args...))
	err.Stack = captureStack()
	return err
}

// DateDecoding reports a malformed date field.
func DateDecoding(format string, args ...any) *DBError {
	err := New(ErrCategoryData, CodeDateDecoding, fmt.Sprintf(format, args...))
	err.Stack = captureStack()
	return err
}

// TextDecoding reports a malformed ascii or length-prefixed text field.
func TextDecoding(format string, args ...any) *DBError {
	err := New(ErrCategoryData, CodeTextDecoding, fmt.Sprintf(format, args...))
	err.Stack = captureStack()
	return err
}

// NotFound reports a missing table, row or column, or an index out of range.
func NotFound(format string, args ...any) *DBError {
	err := New(ErrCategoryUser, CodeNotFound, fmt.Sprintf(format, args...))
	err.Stack = captureStack()
	return err
}

// NotSupported reports a structurally unsupported case.
func NotSupported(format string, args ...any) *DBError {
	err := New(ErrCategoryUser, CodeNotSupported, fmt.Sprintf(format, args...))
	err.Stack = captureStack()
	return err
}

// Internal reports a broken invariant.
func Internal(format string, args ...any) *DBError {
	err := New(ErrCategorySystem, CodeInternal, fmt.Sprintf(format, args...))
	err.Stack = captureStack()
	return err
}

// IO wraps a filesystem failure.
func IO(err error, operation, component string) *DBError {
	return Wrap(err, CodeIO, operation, component)
}

// CodeOf returns the Code of the first DBError in err's chain, or "".
func CodeOf(err error) string {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Code
	}
	return ""
}

func IsFormat(err error) bool       { return errors.Is(err, ErrFormat) }
func IsNotFound(err error) bool     { return errors.Is(err, ErrNotFound) }
func IsNotSupported(err error) bool { return errors.Is(err, ErrNotSupported) }
func IsInternal(err error) bool     { return errors.Is(err, ErrInternal) }

// IsDecoding reports whether err is any of the BCD, date or text decoding errors.
func IsDecoding(err error) bool {
	return errors.Is(err, ErrBCDDecoding) ||
		errors.Is(err, ErrDateDecoding) ||
		errors.Is(err, ErrTextDecoding)
}
