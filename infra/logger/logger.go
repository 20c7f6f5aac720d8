package logger

import corelogger "github.com/kfarnes/mast/core/logger"

// Logger aliases the core contract so callers only import this package.
type Logger = corelogger.Logger

// NopLogger discards all output. Useful for tests and as a fallback sink.
type NopLogger struct{}

var _ Logger = NopLogger{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}

// New returns the zerolog-backed Logger for the given component name.
func New(component string) Logger {
	return NewZerologLogger(component)
}
