package controller

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/shapenote/shapenote/internal/model"
)

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayAnnotations prints the annotations as a table sorted by path
// and line.
func (s *SimpleUI) DisplayAnnotations(annotations []m.Annotation) error {
	if len(annotations) == 0 {
		s.printf("No annotations found\n")
		return nil
	}

	sorted := make([]m.Annotation, len(annotations))
	copy(sorted, annotations)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}

		return sorted[i].Line < sorted[j].Line
	})

	files := make(map[m.Path]struct{})

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Line", "Descriptor"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT})

	for _, a := range sorted {
		files[a.File] = struct{}{}
		table.Append([]string{string(a.File), strconv.Itoa(a.Line), a.Descriptor})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(files)),
		strconv.Itoa(len(sorted)),
		"",
	})

	table.Render()
	s.printf("\n%s", tableBuffer.String())

	return nil
}

// DisplayCleaned prints the clean summary.
func (s *SimpleUI) DisplayCleaned(files, lines int) error {
	s.printf("Removed %d annotation(s) from %d file(s)\n", lines, files)
	return nil
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
