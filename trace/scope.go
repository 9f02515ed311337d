package trace

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/charmbracelet/lipgloss"
)

var confirmStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))

// Scope is one entry into a tracing region. Between Enter and Exit it
// holds the process-wide hook and collects a descriptor per source
// line of its own file; Exit restores the previous hook and patches
// the collected descriptors into the file.
type Scope struct {
	targetFile string
	entryLine  int
	key        Key
	inert      bool

	verbose  bool
	marker   string
	out      io.Writer
	policy   KeyPolicy
	tracer   *Tracer
	registry *Registry
	fs       FS

	prev Hook

	mu          sync.Mutex
	descriptors map[int]string
}

// Option configures a Scope at Enter time.
type Option func(*Scope)

// WithVerbose controls the confirmation message printed after a
// successful patch. Default true.
func WithVerbose(verbose bool) Option {
	return func(s *Scope) { s.verbose = verbose }
}

// WithOutput redirects the confirmation message. Default os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(s *Scope) { s.out = w }
}

// WithMarker overrides the comment marker prepended to descriptors.
// Default DefaultMarker.
func WithMarker(marker string) Option {
	return func(s *Scope) { s.marker = marker }
}

// WithKeyPolicy selects how the activation key is derived from the
// Enter call site. Default KeyBySite.
func WithKeyPolicy(policy KeyPolicy) Option {
	return func(s *Scope) { s.policy = policy }
}

// WithRegistry substitutes the visited-key registry. Default is the
// process-wide registry.
func WithRegistry(r *Registry) Option {
	return func(s *Scope) { s.registry = r }
}

// WithTracer substitutes the hook slot the scope installs into. The
// package-level Record always dispatches through Default, so this is
// only useful together with Tracer.Emit.
func WithTracer(t *Tracer) Option {
	return func(s *Scope) { s.tracer = t }
}

// WithFS substitutes the file system the patcher writes through.
func WithFS(fs FS) Option {
	return func(s *Scope) { s.fs = fs }
}

// Enter opens an observation scope for the caller's source file and
// installs its hook. If the activation key of the call site has
// already been visited in this process, the scope is inert: it
// installs nothing and its Exit is a complete no-op, which is what
// keeps loops and repeated calls from annotating a line twice.
//
// Pair every Enter with a deferred Exit.
func Enter(opts ...Option) *Scope {
	s := &Scope{
		verbose:     true,
		marker:      DefaultMarker,
		out:         os.Stdout,
		policy:      KeyBySite,
		tracer:      defaultTracer,
		registry:    defaultRegistry,
		fs:          OSFS{},
		descriptors: make(map[int]string),
	}

	for _, opt := range opts {
		opt(s)
	}

	_, file, line, ok := runtime.Caller(1)
	if !ok {
		s.inert = true
		return s
	}

	if abs, err := filepath.Abs(file); err == nil {
		file = abs
	}

	s.targetFile = file
	s.entryLine = line

	switch s.policy {
	case KeyByDepth:
		s.key = Key{File: file, Pos: callDepth(1)}
	default:
		s.key = Key{File: file, Pos: line}
	}

	if s.registry.Visit(s.key) {
		s.inert = true
		return s
	}

	s.prev = s.tracer.Install(s.observe)

	return s
}

// observe is the scope's hook: it credits the returned value to the
// statement that recorded it, provided that statement lives in the
// scope's own file and the value describes itself. The last matching
// value recorded on a line wins.
func (s *Scope) observe(file string, line int, v any) {
	if file != s.targetFile {
		return
	}

	d, ok := Describe(v)
	if !ok {
		return
	}

	s.mu.Lock()
	s.descriptors[line] = d
	s.mu.Unlock()
}

// Exit restores the previously installed hook and patches the
// collected descriptors into the scope's file. Safe to run via defer
// after a panic in the bracketed region: the hook is restored
// unconditionally and descriptors collected before the failure are
// still committed. I/O failures from the patch are returned.
func (s *Scope) Exit() error {
	if s.inert {
		return nil
	}

	s.tracer.Restore(s.prev)

	s.mu.Lock()
	descriptors := s.descriptors
	s.descriptors = make(map[int]string)
	s.mu.Unlock()

	if err := Patch(s.fs, s.targetFile, s.marker, descriptors); err != nil {
		return err
	}

	if s.verbose {
		confirmation := fmt.Sprintf("%s: %d", s.targetFile, s.entryLine)
		fmt.Fprintln(s.out, confirmStyle.Render(confirmation))
	}

	return nil
}
