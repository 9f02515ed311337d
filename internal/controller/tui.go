package controller

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/shapenote/shapenote/internal/model"
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayAnnotations shows the annotations in an interactive list.
// Short listings are printed once without entering the alternate
// screen.
func (p *TUI) DisplayAnnotations(annotations []m.Annotation) error {
	model := newAnnotationModel(annotations)

	// Get initial terminal size
	if f, ok := p.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model.height = height
			model.width = width
		}
	}

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(p.output, model.View())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(p.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

// DisplayCleaned prints the clean summary.
func (p *TUI) DisplayCleaned(files, lines int) error {
	style := lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	summary := fmt.Sprintf("Removed %d annotation(s) from %d file(s)", lines, files)

	_, err := fmt.Fprintln(p.output, style.Render(summary))

	return err
}
