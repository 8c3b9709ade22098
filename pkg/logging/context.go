package logging

import (
	"log/slog"
)

// WithTable creates a logger with table context.
//
// Example:
//
//	log := logging.WithTable("customer")
//	log.Info("header decoded", "records", n)
func WithTable(tableName string) *slog.Logger {
	return GetLogger().With("table", tableName)
}

// WithFile creates a logger carrying a registry file number.
//
// Example:
//
//	log := logging.WithFile(12)
//	log.Warn("table skipped", "error", err)
func WithFile(fileNumber uint32) *slog.Logger {
	return GetLogger().With("file_number", fileNumber)
}

// WithRecord creates a logger with table and record context.
// Useful when a single row fails to decode.
func WithRecord(tableName string, record int64) *slog.Logger {
	return GetLogger().With("table", tableName, "record", record)
}

// WithPath creates a logger carrying an on-disk path.
func WithPath(path string) *slog.Logger {
	return GetLogger().With("path", path)
}

// WithComponent creates a logger with component/subsystem context.
//
// Example:
//
//	log := logging.WithComponent("tablecache")
//	log.Debug("insert lost race", "file_number", n)
func WithComponent(component string) *slog.Logger {
	return GetLogger().With("component", component)
}

// WithError creates a logger with error context.
//
// Example:
//
//	log := logging.WithError(err)
//	log.Error("operation failed", "operation", "scan")
func WithError(err error) *slog.Logger {
	return GetLogger().With("error", err.Error())
}
