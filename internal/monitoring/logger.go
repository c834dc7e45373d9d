// Package monitoring carries the process-wide diagnostic loggers. Pipeline
// packages log through these indirections so tests and the CLI can mute or
// redirect output without threading a logger through every call.
package monitoring

import "log"

// Logf is the package-level diagnostic logger. It defaults to log.Printf but
// may be replaced via SetLogger.
var Logf func(format string, v ...interface{}) = log.Printf

// Debugf is the verbose-mode logger. It is a no-op unless enabled by
// SetVerbose; the CLI wires it to its -verbose flag.
var Debugf func(format string, v ...interface{}) = discard

func discard(string, ...interface{}) {}

// SetLogger replaces the package logger. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// SetVerbose routes Debugf to the main logger when on, or silences it.
func SetVerbose(on bool) {
	if on {
		Debugf = func(format string, v ...interface{}) { Logf(format, v...) }
		return
	}
	Debugf = discard
}
