package monitoring

import (
	"fmt"
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	var got string
	SetLogger(func(format string, v ...interface{}) {
		got = fmt.Sprintf(format, v...)
	})
	Logf("carved %d points", 42)
	if got != "carved 42 points" {
		t.Errorf("Logf produced %q", got)
	}

	// nil installs a no-op, not a nil func.
	got = ""
	SetLogger(nil)
	Logf("dropped")
	if got != "" {
		t.Error("no-op logger still reached the previous sink")
	}
}

func TestSetVerbose(t *testing.T) {
	originalLogf, originalDebugf := Logf, Debugf
	defer func() { Logf, Debugf = originalLogf, originalDebugf }()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, fmt.Sprintf(format, v...))
	})

	SetVerbose(false)
	Debugf("hidden")
	if len(lines) != 0 {
		t.Errorf("Debugf logged while quiet: %v", lines)
	}

	SetVerbose(true)
	Debugf("view %d stats", 3)
	if len(lines) != 1 || lines[0] != "view 3 stats" {
		t.Errorf("verbose Debugf logged %v", lines)
	}
}

func TestLogfDefaultNotNil(t *testing.T) {
	if Logf == nil {
		t.Fatal("Logf should default to a usable logger")
	}
	if Debugf == nil {
		t.Fatal("Debugf should default to a usable logger")
	}
}
