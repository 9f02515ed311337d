// Package trace annotates source lines with the runtime shape and
// element type of the array-like values they produce.
//
// Values are fed through Record inside an observation scope. Record
// passes its argument through unchanged and attributes it to the
// caller's source line; when the scope exits, every line that
// produced a value exposing both a shape and an element type gains a
// trailing descriptor comment such as "# int64(2, 6)".
//
//	s := trace.Enter()
//	defer s.Exit()
//	a := trace.Record(zeros("int64", 6))
//	b := trace.Record(zeros("int64", 6))
//	h := trace.Record(hstack(a, b)) // line becomes: h := ...# int64(12,)
//
// Re-entering a scope at the same call site is a no-op for the rest
// of the process lifetime, so re-running the same code path never
// appends a second copy of a comment.
package trace
