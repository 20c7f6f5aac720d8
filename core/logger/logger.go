// Package logger defines the logging contract used across the core packages.
// Concrete backends live in infra/logger so core code never imports a
// logging library directly.
package logger

// Logger exposes leveled formatted logging plus structured debug output.
type Logger interface {
	Debugf(format string, args ...any)
	// Debugw logs a message with structured fields.
	Debugw(msg string, fields map[string]any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}
