// Package log provides the logger used throughout the emulator. The
// default implementation is backed by logrus.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Logger is the logging interface used by the emulator. A
// *logrus.Logger satisfies it.
type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// New returns a Logger writing plain text to stderr at info level.
func New() Logger {
	return newLogrus(logrus.InfoLevel)
}

// NewDebug returns a Logger writing plain text to stderr at debug level.
func NewDebug() Logger {
	return newLogrus(logrus.DebugLevel)
}

func newLogrus(level logrus.Level) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(level)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    true,
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}
