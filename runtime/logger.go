package runtime

import (
	"log"
	"os"
)

// Logger is the one logging collaborator this core depends on, kept to an
// interface per spec §1 (logging is an external collaborator, not part of
// the core). Grounded on FergusInLondon-go-supervise's supervisor.Logger:
// a minimal injectable sink, defaulting to a no-op, rather than a hard
// dependency on any particular structured-logging library.
type Logger interface {
	Debugf(format string, args ...any)
	Warnf(format string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Debugf(string, ...any) {}
func (noopLogger) Warnf(string, ...any)  {}

// NoopLogger discards everything. It's the default when Config.Logger is
// left nil.
var NoopLogger Logger = noopLogger{}

// StdLogger adapts the standard library's log.Logger to Logger, for callers
// (the demo CLI, mainly) that want to actually see runtime activity.
type StdLogger struct {
	debug *log.Logger
	warn  *log.Logger
}

// NewStdLogger returns a Logger writing to stderr with the given prefix.
func NewStdLogger(prefix string) *StdLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	return &StdLogger{
		debug: log.New(os.Stderr, prefix+" DEBUG ", flags),
		warn:  log.New(os.Stderr, prefix+" WARN  ", flags),
	}
}

func (l *StdLogger) Debugf(format string, args ...any) {
	l.debug.Printf(format, args...)
}

func (l *StdLogger) Warnf(format string, args ...any) {
	l.warn.Printf(format, args...)
}
