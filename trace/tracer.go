package trace

import (
	"path/filepath"
	"runtime"
	"sync"
)

// Hook observes one recorded value event. file is the absolute path
// of the source file whose statement produced the value and line its
// 1-indexed line number: the attribution point is always the caller
// of Record, never the site where the value was built.
type Hook func(file string, line int, value any)

// Tracer is the process-wide hook slot. Like an interpreter trace
// hook it is a single shared mutable resource: at most one hook is
// installed at a time, and scopes save and restore the previous hook
// in strict LIFO order.
type Tracer struct {
	mu   sync.Mutex
	hook Hook
}

// NewTracer returns an empty tracer. Most callers use the package
// default shared by Record; a private tracer suits embedders that
// route events through Emit themselves.
func NewTracer() *Tracer {
	return &Tracer{}
}

// Install sets h as the active hook and returns the one it displaced
// so the caller can restore it later.
func (t *Tracer) Install(h Hook) Hook {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.hook
	t.hook = h

	return prev
}

// Restore puts a previously displaced hook back.
func (t *Tracer) Restore(h Hook) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.hook = h
}

// Emit feeds v to the active hook, attributing it to the caller skip
// frames up the stack (0 means the direct caller of Emit). A nil
// hook, an unresolvable caller, or a panicking hook all degrade to a
// no-op: an escaping failure here would corrupt execution far beyond
// this tool's scope.
func (t *Tracer) Emit(skip int, v any) {
	t.mu.Lock()
	h := t.hook
	t.mu.Unlock()

	if h == nil {
		return
	}

	_, file, line, ok := runtime.Caller(skip + 1)
	if !ok {
		return
	}

	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}

	defer func() {
		_ = recover()
	}()

	h(file, line, v)
}

// defaultTracer backs the package-level Record.
var defaultTracer = NewTracer()

// Default returns the tracer Record dispatches through.
func Default() *Tracer {
	return defaultTracer
}

// Record passes v through unchanged and reports it to the hook of the
// active observation scope, if any. Wrap the right-hand side of an
// assignment to have its line annotated:
//
//	ab := trace.Record(hstack(a, b))
func Record[T any](v T) T {
	defaultTracer.Emit(1, v)
	return v
}
