package trace

import (
	"testing"
)

func TestTracer_InstallRestoreLIFO(t *testing.T) {
	tr := NewTracer()

	var got []string

	outer := func(_ string, _ int, _ any) { got = append(got, "outer") }
	inner := func(_ string, _ int, _ any) { got = append(got, "inner") }

	prevOuter := tr.Install(outer)
	if prevOuter != nil {
		t.Fatalf("expected empty tracer to displace nil hook")
	}

	prevInner := tr.Install(inner)

	tr.Emit(0, nil)

	tr.Restore(prevInner)
	tr.Emit(0, nil)

	tr.Restore(prevOuter)
	tr.Emit(0, nil)

	if len(got) != 2 || got[0] != "inner" || got[1] != "outer" {
		t.Fatalf("hook dispatch order = %v, want [inner outer]", got)
	}
}

func TestTracer_EmitWithoutHookIsNoop(t *testing.T) {
	tr := NewTracer()
	tr.Emit(0, fakeTensor{dims: []int{1}, tag: "int64"}) // must not panic
}

func TestTracer_EmitAbsorbsHookPanics(t *testing.T) {
	tr := NewTracer()
	prev := tr.Install(func(_ string, _ int, _ any) { panic("hook failure") })

	defer tr.Restore(prev)

	tr.Emit(0, nil) // must not propagate
}

func TestTracer_EmitAttributesCallerFile(t *testing.T) {
	tr := NewTracer()

	var gotFile string

	var gotLine int

	prev := tr.Install(func(file string, line int, _ any) {
		gotFile = file
		gotLine = line
	})
	defer tr.Restore(prev)

	tr.Emit(0, nil)
	wantLine := callerLine() - 1

	if gotFile != thisFile(t) {
		t.Fatalf("attributed file = %q, want this test file", gotFile)
	}

	if gotLine != wantLine {
		t.Fatalf("attributed line = %d, want %d", gotLine, wantLine)
	}
}

func TestRecord_ReturnsValueUnchanged(t *testing.T) {
	in := fakeTensor{dims: []int{2, 6}, tag: "int64"}

	out := Record(in)
	if out.tag != in.tag || len(out.dims) != 2 {
		t.Fatalf("Record changed its argument: %+v", out)
	}

	n := Record(42)
	if n != 42 {
		t.Fatalf("Record(42) = %d", n)
	}
}
