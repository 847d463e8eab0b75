// Package qsmlog provides the QSM core's logging conventions: a thin
// wrapper over the standard library's log package, generalizing the
// log.Printf/log.Fatalf calls the teacher's cmd/mrislicesto3d/main.go
// makes directly into a reusable Logger gated by a verbosity flag. No
// third-party structured logging library appears anywhere in the
// corpus, so this stays on the standard library (see DESIGN.md).
package qsmlog

import (
	"log"
	"os"
)

// Logger wraps the standard logger with a verbosity gate; Debugf is a
// no-op unless Verbose is true, while Printf and Fatalf always emit.
type Logger struct {
	*log.Logger
	Verbose bool
}

// New returns a Logger writing to os.Stderr with the standard flags.
func New(verbose bool) *Logger {
	return &Logger{
		Logger:  log.New(os.Stderr, "qsm: ", log.LstdFlags),
		Verbose: verbose,
	}
}

// Debugf logs only when the Logger was constructed with verbose = true.
func (l *Logger) Debugf(format string, args ...any) {
	if l.Verbose {
		l.Printf(format, args...)
	}
}
