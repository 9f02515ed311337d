package trace

import (
	"runtime"
	"sync"
)

// KeyPolicy selects how an activation key is derived from the Enter
// call site.
type KeyPolicy int

const (
	// KeyBySite keys a scope by the exact source coordinate of its
	// Enter call (file + line). This is the default: each textual
	// scope runs once per process, no matter how it is reached.
	KeyBySite KeyPolicy = iota

	// KeyByDepth keys a scope by its file and call depth, so the
	// same textual scope may run again when reached through a
	// different call chain.
	KeyByDepth
)

// Key identifies where a scope was entered. Pos holds a line number
// under KeyBySite and a stack depth under KeyByDepth.
type Key struct {
	File string
	Pos  int
}

// Registry remembers which activation keys have already run. It is
// deliberately never reset during normal use: its whole purpose is to
// keep a line from being annotated twice in one process run. Reset
// exists for tests and long-lived embedders.
type Registry struct {
	mu   sync.Mutex
	seen map[Key]struct{}
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{seen: make(map[Key]struct{})}
}

// Visit records k and reports whether it had been visited before.
func (r *Registry) Visit(k Key) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.seen[k]; ok {
		return true
	}

	r.seen[k] = struct{}{}

	return false
}

// Reset forgets all visited keys.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seen = make(map[Key]struct{})
}

// defaultRegistry backs scopes that are not given an explicit one.
var defaultRegistry = NewRegistry()

// DefaultRegistry returns the process-wide visited-key registry.
func DefaultRegistry() *Registry {
	return defaultRegistry
}

// callDepth counts the stack frames above the caller skip frames up
// (0 means the direct caller of callDepth).
func callDepth(skip int) int {
	pc := make([]uintptr, 64)

	for {
		n := runtime.Callers(skip+2, pc)
		if n < len(pc) {
			return n
		}

		pc = make([]uintptr, 2*len(pc))
	}
}
