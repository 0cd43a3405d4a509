// Package logging defines the injectable logger used across the service and
// a zap-backed implementation of it.
package logging

// Logger is the leveled, printf-style logging interface components depend on.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// NoneLogger discards everything. Useful for tests.
type NoneLogger struct{}

func (NoneLogger) Debugf(string, ...any) {}
func (NoneLogger) Infof(string, ...any)  {}
func (NoneLogger) Warnf(string, ...any)  {}
func (NoneLogger) Errorf(string, ...any) {}
