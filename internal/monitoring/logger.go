package monitoring

import (
	"log"

	"github.com/banshee-data/disorder/internal/timeutil"
)

// Logf is the package-level diagnostic logger. It defaults to log.Printf but may
// be replaced by SetLogger. Tests or the CLI's -v flag redirect or mute it.
var Logf func(format string, v ...interface{}) = log.Printf

// SetLogger replaces the package logger. Passing nil will set a no-op logger.
func SetLogger(f func(format string, v ...interface{})) {
	if f == nil {
		Logf = func(string, ...interface{}) {}
		return
	}
	Logf = f
}

// Clock times the spans reported by Timed.
var Clock timeutil.Clock = timeutil.RealClock{}

// Timed logs "<label> took <elapsed>" through Logf when the returned
// function is called:
//
//	defer monitoring.Timed("score alignment")()
func Timed(label string) func() {
	clock := Clock
	start := clock.Now()
	return func() {
		Logf("%s took %v", label, clock.Since(start))
	}
}
