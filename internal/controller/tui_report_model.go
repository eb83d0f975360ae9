package controller

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Lines taken by title, summary and footer around the list.
const reservedLines = 6

// row is one list line: a file of a run or a saved run.
type row struct {
	title  string
	detail string
	state  string
	failed bool
}

func (r row) FilterValue() string {
	return r.title
}

type rowDelegate struct{}

func (d rowDelegate) Height() int  { return 1 }
func (d rowDelegate) Spacing() int { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d rowDelegate) Render(w io.Writer, l list.Model, index int, item list.Item) {
	r, ok := item.(row)
	if !ok {
		return
	}

	_, _ = fmt.Fprint(w, renderRow(r, index == l.Index(), l.Width()))
}

func renderRow(r row, selected bool, width int) string {
	stateStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Width(10)
	if r.failed {
		stateStyle = stateStyle.Foreground(lipgloss.Color("1"))
	}

	titleStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	detailStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	if selected {
		titleStyle = titleStyle.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6")).Bold(true)
	}

	title := r.title
	if width > 0 {
		title = truncateToWidth(title, width-12)
	}

	return fmt.Sprintf("%s  %s  %s", stateStyle.Render(r.state), titleStyle.Render(title), detailStyle.Render(r.detail))
}

func truncateToWidth(text string, width int) string {
	if width <= 0 {
		return ""
	}

	if lipgloss.Width(text) <= width {
		return text
	}

	const ellipsis = "…"

	maxWidth := width - lipgloss.Width(ellipsis)
	if maxWidth <= 0 {
		return ellipsis
	}

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

// reportModel pages a list of rows under a title and a summary line.
type reportModel struct {
	title   string
	summary string
	rows    []row
	list    list.Model
	width   int
	height  int
}

func newReportModel(title, summary string, rows []row) reportModel {
	items := make([]list.Item, 0, len(rows))
	for _, r := range rows {
		items = append(items, r)
	}

	l := list.New(items, rowDelegate{}, 80, 20)
	l.SetShowPagination(false)
	l.SetShowFilter(true)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.FilterInput.Placeholder = "Filter by path…"

	return reportModel{
		title:   title,
		summary: summary,
		rows:    rows,
		list:    l,
	}
}

func (rm reportModel) resize(width, height int) reportModel {
	rm.width = width
	rm.height = height
	rm.list.SetWidth(width)
	rm.list.SetHeight(max(height-reservedLines, 1))

	return rm
}

// needsPagination returns true if the rows do not fit on screen.
func (rm reportModel) needsPagination() bool {
	return rm.height > 0 && len(rm.rows) > rm.height-reservedLines
}

func (rm reportModel) Init() tea.Cmd {
	return nil
}

func (rm reportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return rm.resize(msg.Width, msg.Height), nil

	case tea.KeyMsg:
		if rm.list.FilterState() != list.Filtering {
			switch msg.String() {
			case "q", "ctrl+c", "esc":
				return rm, tea.Quit
			}
		}

		var cmd tea.Cmd

		rm.list, cmd = rm.list.Update(msg)

		return rm, cmd
	}

	return rm, nil
}

func (rm reportModel) View() string {
	footer := lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render("↑/k up • ↓/j down • / filter • q quit")

	return lipgloss.JoinVertical(lipgloss.Left,
		rm.header(),
		rm.list.View(),
		footer,
	)
}

// static renders every row at once, for output that fits the screen or is
// not a terminal.
func (rm reportModel) static() string {
	var b strings.Builder

	b.WriteString(rm.header())
	b.WriteString("\n")

	if len(rm.rows) == 0 {
		b.WriteString("  📭 Nothing to show\n")

		return b.String()
	}

	for _, r := range rm.rows {
		b.WriteString(renderRow(r, false, rm.width))
		b.WriteString("\n")
	}

	return b.String()
}

func (rm reportModel) header() string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true).
		Padding(1, 0, 0, 2)

	summaryStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252")).
		Padding(0, 0, 1, 2)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(rm.title),
		summaryStyle.Render(rm.summary),
	)
}
