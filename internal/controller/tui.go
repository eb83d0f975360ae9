package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hunkStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	headerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
)

// TUI implements UI using Bubble Tea for interactive display.
type TUI struct {
	output io.Writer
}

// NewTUI creates a new TUI.
func NewTUI(output io.Writer) *TUI {
	return &TUI{output: output}
}

// DisplayRun shows one line per file, paged when it does not fit the terminal.
func (t *TUI) DisplayRun(run m.RunReport) error {
	rows := make([]row, 0, len(run.Files))

	for _, rep := range run.Files {
		rows = append(rows, fileRow(rep, run.DryRun))
	}

	mode := ""
	if run.DryRun {
		mode = "   dry run"
	}

	summary := fmt.Sprintf("Run %s   Files: %d   Applied: %d   Present: %d   Failed: %d%s",
		shortID(run.RunID),
		len(run.Files),
		run.Total(m.StatusApplied),
		run.Total(m.StatusAlreadyPresent),
		run.Total(m.StatusFunctionNotFound)+run.Total(m.StatusPatternMismatch),
		mode,
	)

	return t.show(newReportModel("🔒 guardpatch "+run.Command, summary, rows))
}

// DisplayPreview prints the diff with added and removed lines colored.
func (t *TUI) DisplayPreview(path m.Path, diff string) error {
	var b strings.Builder

	b.WriteString(headerStyle.Render(string(path)))
	b.WriteString("\n")

	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}

		text := strings.TrimSuffix(line, "\n")

		switch {
		case strings.HasPrefix(text, "+"):
			text = addedStyle.Render(text)
		case strings.HasPrefix(text, "-"):
			text = removedStyle.Render(text)
		case strings.HasPrefix(text, "@@"):
			text = hunkStyle.Render(text)
		}

		b.WriteString(text)
		b.WriteString("\n")
	}

	_, err := fmt.Fprintln(t.output, b.String())

	return err
}

// DisplayHistory lists saved runs, paged when they do not fit the terminal.
func (t *TUI) DisplayHistory(runs []m.RunReport) error {
	rows := make([]row, 0, len(runs))

	for _, run := range runs {
		rows = append(rows, historyRow(run))
	}

	summary := fmt.Sprintf("Reports: %d", len(runs))

	return t.show(newReportModel("🔒 guardpatch history", summary, rows))
}

func (t *TUI) show(model reportModel) error {
	if f, ok := t.output.(*os.File); ok {
		width, height, err := term.GetSize(int(f.Fd()))
		if err == nil {
			model = model.resize(width, height)
		}
	}

	// If list is small, just print and exit
	if !model.needsPagination() {
		_, err := fmt.Fprint(t.output, model.static())
		return err
	}

	program := tea.NewProgram(model, tea.WithOutput(t.output), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return err
	}

	return nil
}

func fileRow(rep m.PatchReport, dryRun bool) row {
	detail := fmt.Sprintf("applied %d · present %d", rep.Count(m.StatusApplied), rep.Count(m.StatusAlreadyPresent))

	if failed := rep.Count(m.StatusFunctionNotFound) + rep.Count(m.StatusPatternMismatch); failed > 0 {
		detail += fmt.Sprintf(" · failed %d", failed)
	}

	if more := extras(rep); more != "" {
		detail += " · " + more
	}

	if rep.Error != "" {
		detail += " · " + rep.Error
	}

	return row{
		title:  string(rep.Target),
		detail: detail,
		state:  fileState(rep, dryRun),
		failed: rep.Error != "" || !rep.OK(),
	}
}

func historyRow(run m.RunReport) row {
	command := run.Command
	if run.DryRun {
		command += " (dry run)"
	}

	state := "ok"
	if !run.OK() {
		state = "failed"
	}

	return row{
		title:  shortID(run.RunID) + "  " + command,
		detail: fmt.Sprintf("%s · %d file(s) · applied %d", run.StartedAt.Format(timeLayout), len(run.Files), run.Total(m.StatusApplied)),
		state:  state,
		failed: !run.OK(),
	}
}
