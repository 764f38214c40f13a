// Package logging provides *slog.Logger functionality to pdf-marker.
//
// The library is silent by default: every confirmation emitted while
// queueing annotations or composing a document goes through Logger(),
// which discards records until a logger is installed with SetLogger.
package logging

import (
	"log/slog"
	"sync/atomic"
)

// logger holds the package-level logger instance.
// Defaults to nil, which causes Logger() to return a discard logger.
var logger atomic.Pointer[slog.Logger]

// discard returns a logger that drops all records.
func discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// SetLogger installs the package-level logger used for annotation and
// composition confirmations. Pass nil to silence the library again.
//
// SetLogger is safe for concurrent use.
//
// Example streaming confirmations to stderr:
//
//	logging.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
//
// Example capturing output in tests:
//
//	handler := logging.NewBufferedLogHandler(nil)
//	logging.SetLogger(slog.New(handler))
//	// ... queue annotations, compose ...
//	if handler.Contains("document composed") {
//	    fmt.Println("composition confirmed")
//	}
func SetLogger(sl *slog.Logger) {
	if sl == nil {
		logger.Store(discard())
		return
	}
	logger.Store(sl)
}

// Logger returns the package-level logger. Until SetLogger has been
// called it returns a logger that discards all output.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	l := logger.Load()
	if l == nil {
		l = discard()
		logger.Store(l)
	}
	return l
}
