package error

import (
	"fmt"
	"runtime"
	"strings"
)

// ErrorCategory classifies errors by their nature and appropriate handling strategy.
// Callers use it to decide whether a failure is the caller's fault, a damaged
// file, or something an operator has to look at.
type ErrorCategory int

const (
	// ErrCategoryUser represents errors caused by the caller's request.
	// Examples: unknown table name, record number out of range, write attempts
	// against the read-only store.
	ErrCategoryUser ErrorCategory = iota

	// ErrCategoryTransient represents temporary errors that might succeed on retry.
	// Nothing in the decoder retries on its own; the category is kept for callers
	// that wrap file IO in their own retry policy.
	ErrCategoryTransient

	// ErrCategorySystem represents errors requiring administrator intervention.
	// Examples: unreadable files, permission issues, broken invariants.
	ErrCategorySystem

	// ErrCategoryData represents errors related to the bytes on disk.
	// Examples: unknown header marker, malformed BCD numbers, text fields whose
	// length prefix disagrees with their content.
	ErrCategoryData

	// ErrCategoryConcurrency represents errors from concurrent access conflicts.
	ErrCategoryConcurrency
)

// String returns a short lowercase name for the category.
func (c ErrorCategory) String() string {
	switch c {
	case ErrCategoryUser:
		return "user"
	case ErrCategoryTransient:
		return "transient"
	case ErrCategorySystem:
		return "system"
	case ErrCategoryData:
		return "data"
	case ErrCategoryConcurrency:
		return "concurrency"
	default:
		return "unknown"
	}
}

// DBError represents a structured error with rich context information.
type DBError struct {
	// Code is a unique identifier for this error type (e.g., "FORMAT_ERROR", "NOT_FOUND").
	Code string

	// Category classifies the error for appropriate handling strategy.
	Category ErrorCategory

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail provides additional context about the specific error instance.
	// Example: "record 12 of 'customer'" where Message might be "record out of range".
	Detail string

	// Hint suggests how the user might fix or work around this error.
	Hint string

	// Operation identifies the operation that was being performed when the error occurred.
	// Examples: "NthRecord", "DecodeHeader", "FetchSchema".
	Operation string

	// Component identifies the system component where the error originated.
	// Examples: "Table", "Header", "FileList", "Store".
	Component string

	// Cause is the underlying error that triggered this error.
	// This enables error chaining while preserving the original error context.
	Cause error

	// Stack contains the call stack where this error was created.
	// Used for debugging and is automatically captured in New() and Wrap().
	Stack []uintptr
}

// New creates a new DBError with the specified code, category, and message.
func New(category ErrorCategory, code, message string) *DBError {
	err := &DBError{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
	return err
}

// Wrap wraps an existing error with operation and component context.
// If the error is already a DBError, it enriches the existing error with
// operation and component context (only if not already set).
func Wrap(err error, code, operation, component string) *DBError {
	if err == nil {
		return nil
	}

	if dbErr, ok := err.(*DBError); ok {
		if dbErr.Operation == "" {
			dbErr.Operation = operation
		}
		if dbErr.Component == "" {
			dbErr.Component = component
		}
		return dbErr
	}

	return &DBError{
		Code:      code,
		Category:  ErrCategorySystem,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// WithDetail sets Detail from a format string and returns the receiver.
func (e *DBError) WithDetail(format string, args ...any) *DBError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// WithHint sets Hint and returns the receiver.
func (e *DBError) WithHint(hint string) *DBError {
	e.Hint = hint
	return e
}

// WithCause sets Cause and returns the receiver.
func (e *DBError) WithCause(cause error) *DBError {
	e.Cause = cause
	return e
}

// At sets Operation and Component and returns the receiver.
func (e *DBError) At(operation, component string) *DBError {
	e.Operation = operation
	e.Component = component
	return e
}

// captureStack captures the current call stack for debugging purposes.
// It skips the first 3 frames to exclude captureStack, New/Wrap, and the
// immediate caller, focusing on the actual error origin.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error implements the standard Go error interface
//
// The format follows the pattern:
// [ERROR_CODE] Message: Detail (operation: Operation, component: Component) caused by: underlying error
func (e *DBError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error, enabling error chain traversal
// with Go's standard error handling functions like errors.Is and errors.As.
func (e *DBError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is a DBError carrying the same Code.
// This lets the code sentinels in codes.go be used with errors.Is.
func (e *DBError) Is(target error) bool {
	t, ok := target.(*DBError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// FormatStack returns a human-readable stack trace for debugging purposes.
func (e *DBError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		b.WriteString(fmt.Sprintf("  %s\n    %s:%d\n",
			f.Function, f.File, f.Line))
		if !more {
			break
		}
	}

	return b.String()
}
