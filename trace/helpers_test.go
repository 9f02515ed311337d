package trace

import (
	"path/filepath"
	"runtime"
	"testing"
)

// recordElsewhere feeds a value to the hook from this file, so the
// event is attributed to a file other than the calling test's.
func recordElsewhere(v any) {
	Record(v)
}

// callerLine returns the line number of the statement that calls it.
func callerLine() int {
	_, _, line, _ := runtime.Caller(1)
	return line
}

// thisFile returns the absolute path of the calling test's source
// file, matching the attribution the tracer performs.
func thisFile(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(1)
	if !ok {
		t.Fatal("cannot resolve caller")
	}

	abs, err := filepath.Abs(file)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}

	return abs
}
