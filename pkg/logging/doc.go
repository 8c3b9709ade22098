// Package logging provides a process-wide structured logger for flexdb.
//
// The package wraps [log/slog] and exposes a single global logger instance
// that is initialized once and then retrieved via GetLogger. Decoders, caches
// and the store adapter obtain their logger through this package so that the
// level and destination are controlled from the command line or config file.
//
// # Initialisation
//
// Call Init (or InitDefault for sensible defaults) once at program startup:
//
//	if err := logging.Init(logging.Config{Level: logging.LevelDebug, OutputPath: "flexdb.log"}); err != nil {
//	    log.Fatal(err)
//	}
//
// InitDefault writes INFO-level text logs to stderr so that row output on
// stdout stays machine readable.
//
// # Retrieving the logger
//
//	logger := logging.GetLogger()
//	logger.Info("database opened", "path", path)
//
// If GetLogger is called before Init, a default stderr logger is created
// lazily (via sync.Once).
//
// # Context helpers
//
//	log := logging.WithTable(name)       // adds table field
//	log := logging.WithFile(number)      // adds file_number field
//	log := logging.WithRecord(name, n)   // adds table and record fields
package logging
