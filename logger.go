package rrcache

import "github.com/sirupsen/logrus"

// Log can be used to set the package-wide default logger. Individual
// Facade/Pipeline instances may also be given their own Logger.
var Log Logger = Silent{}

// Logger is the subsystem's logging surface. Only the NOTICE level is
// mandatory; Debugf is used for fine-grained detail logged at debug
// level.
type Logger interface {
	// Notice logs a NOTICE-level line: worker/ticker exceptions and
	// expiration sweeps that changed the cache size.
	Notice(msg string)
	// Debugf logs a formatted debug-level line. Implementations may
	// make this a NOP.
	Debugf(format string, args ...interface{})
}

// Silent is a Logger that produces no output, the initial value of Log
// and the fallback of a Pipeline built with a nil Logger.
type Silent struct{}

func (Silent) Notice(string)                {}
func (Silent) Debugf(string, ...interface{}) {}

// LogrusLogger adapts a *logrus.Entry to Logger. logrus has no NOTICE
// level of its own; NOTICE is mapped to Warn, the nearest level above
// Info that logrus exposes.
type LogrusLogger struct {
	entry *logrus.Entry
}

// NewLogrusLogger wraps l, optionally scoped with fields (e.g.
// logrus.Fields{"component": "rrcache"}).
func NewLogrusLogger(l *logrus.Logger, fields logrus.Fields) *LogrusLogger {
	if l == nil {
		l = logrus.New()
	}
	return &LogrusLogger{entry: l.WithFields(fields)}
}

func (l *LogrusLogger) Notice(msg string) {
	l.entry.Warn(msg)
}

func (l *LogrusLogger) Debugf(format string, args ...interface{}) {
	l.entry.Debugf(format, args...)
}
