package trace

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shapenote/shapenote/internal/adapter"
)

var (
	dissectFileStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	dissectLineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dissectShapeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
)

// Observation is one shaped value seen while dissecting a call.
type Observation struct {
	File  string
	Line  int
	Shape []int
}

// Dissect runs fn and prints a listing of every shaped value recorded
// during the call: a file header whenever the attributed file
// changes, then line number, shape tuple and the source line text.
// Unlike scope annotation, a value only needs the shape capability.
// Nothing is written to any source file.
func Dissect(fn func()) []Observation {
	return DissectTo(os.Stdout, fn)
}

// DissectTo is Dissect writing its listing to w.
func DissectTo(w io.Writer, fn func()) []Observation {
	var (
		observations []Observation
		lastFile     string
	)

	cache := adapter.NewLineCache()

	prev := defaultTracer.Install(func(file string, line int, v any) {
		shape, ok := shapeOf(v)
		if !ok {
			return
		}

		observations = append(observations, Observation{File: file, Line: line, Shape: shape})

		if file != lastFile {
			fmt.Fprintln(w, dissectFileStyle.Render(file))
			lastFile = file
		}

		code := strings.TrimRight(cache.Line(file, line), " \t")
		fmt.Fprintf(w, "%s%s %s\n",
			dissectLineStyle.Render(fmt.Sprintf("%5d", line)),
			dissectShapeStyle.Render(fmt.Sprintf("%20s", FormatShape(shape))),
			code)
	})
	defer defaultTracer.Restore(prev)

	fn()

	return observations
}
