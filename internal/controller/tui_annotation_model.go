package controller

import (
	"fmt"
	"io"
	"sort"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	m "github.com/shapenote/shapenote/internal/model"
)

// annotationItem is one list row.
type annotationItem struct {
	path       string
	line       int
	descriptor string
}

func (i annotationItem) FilterValue() string { return i.path }

// Simple delegate for annotation list items.
type annotationDelegate struct{}

func (d annotationDelegate) Height() int  { return 1 }
func (d annotationDelegate) Spacing() int { return 0 }
func (d annotationDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d annotationDelegate) Render(w io.Writer, lm list.Model, index int, item list.Item) {
	a, ok := item.(annotationItem)
	if !ok {
		return
	}

	isSelected := index == lm.Index()

	var pathStyle, lineStyle, descStyle lipgloss.Style

	if isSelected {
		selected := lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("6")).
			Bold(true)
		pathStyle, descStyle = selected, selected
		lineStyle = selected.Width(6).Align(lipgloss.Right)
	} else {
		pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
		descStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
		lineStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11")).
			Width(6).
			Align(lipgloss.Right)
	}

	// Subtract line width (6), descriptor column (20) and spacing
	width := lm.Width() - 30

	row := fmt.Sprintf("%s  %s  %s",
		lineStyle.Render(fmt.Sprintf("%d", a.line)),
		descStyle.Render(fmt.Sprintf("%-20s", truncateToWidth(a.descriptor, 20))),
		pathStyle.Render(truncateToWidth(a.path, width)),
	)
	_, _ = fmt.Fprint(w, row)
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	if width <= 1 {
		return ellipsis
	}

	maxWidth := width - lipgloss.Width(ellipsis)

	currentWidth := 0

	result := make([]rune, 0, len(text))
	for _, r := range text {
		rWidth := lipgloss.Width(string(r))
		if currentWidth+rWidth > maxWidth {
			break
		}

		result = append(result, r)
		currentWidth += rWidth
	}

	return string(result) + ellipsis
}

// annotationModel lists descriptor comments found on disk.
type annotationModel struct {
	width      int
	height     int
	rows       list.Model
	total      int
	totalFiles int
	quitting   bool
}

func newAnnotationModel(annotations []m.Annotation) annotationModel {
	sorted := make([]m.Annotation, len(annotations))
	copy(sorted, annotations)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].File != sorted[j].File {
			return sorted[i].File < sorted[j].File
		}

		return sorted[i].Line < sorted[j].Line
	})

	files := make(map[m.Path]struct{})
	items := make([]list.Item, 0, len(sorted))

	for _, a := range sorted {
		files[a.File] = struct{}{}
		items = append(items, annotationItem{
			path:       string(a.File),
			line:       a.Line,
			descriptor: a.Descriptor,
		})
	}

	rows := list.New(items, annotationDelegate{}, 80, 20)
	rows.SetShowPagination(false)
	rows.SetShowFilter(true)
	rows.SetShowHelp(false)
	rows.SetShowTitle(false)
	rows.SetShowStatusBar(false)
	rows.FilterInput.Placeholder = "Filter by path…"

	return annotationModel{
		rows:       rows,
		total:      len(sorted),
		totalFiles: len(files),
	}
}

func (am annotationModel) Init() tea.Cmd {
	return nil
}

func (am annotationModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		am.width = msg.Width
		am.height = msg.Height
		am.rows.SetWidth(am.width)

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			am.quitting = true
			return am, tea.Quit
		default:
			var rows list.Model

			rows, cmd = am.rows.Update(msg)
			am.rows = rows

			return am, cmd
		}
	}

	return am, cmd
}

func (am annotationModel) View() string {
	if am.total == 0 {
		return "No annotations found\n"
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	title := titleStyle.Render("Shapenote Annotations")

	summary := summaryStyle.Render(fmt.Sprintf(
		"Total Annotations: %s   Files: %s",
		accentStyle.Render(fmt.Sprintf("%d", am.total)),
		accentStyle.Render(fmt.Sprintf("%d", am.totalFiles)),
	))

	table := am.renderTable()

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Align(lipgloss.Center).
		Width(am.width)

	footer := footerStyle.Render("↑/k up • ↓/j down • g/G top/bottom • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		summary,
		table,
		footer,
	)
}

func (am annotationModel) renderTable() string {
	// Screen height minus title (2), summary (2), footer (1),
	// border (2) and headers (2)
	listHeight := am.height - 9
	if listHeight < 5 {
		listHeight = 5
	}

	listWidth := am.width - 6

	am.rows.SetHeight(listHeight)
	am.rows.SetWidth(listWidth)

	headerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Bold(true).
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("8")).
		Width(listWidth)

	headers := headerStyle.Render(fmt.Sprintf("%6s  %-20s  %s", "Line", "Descriptor", "Path"))

	tableContainer := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("6")).
		Margin(0, 1).
		Padding(0, 1)

	return tableContainer.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			headers,
			am.rows.View(),
		),
	)
}

// needsPagination returns true if the list is too large to fit on
// screen.
func (am annotationModel) needsPagination() bool {
	if am.height == 0 {
		return false
	}

	return am.total+9 > am.height
}
