// Package monitoring holds the diagnostic logger shared by the loaders and
// the scene composer.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or embedding programs can redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Warnf logs a recoverable problem, such as a skipped scene member.
func Warnf(format string, v ...interface{}) {
	Logf("WARNING: "+format, v...)
}
