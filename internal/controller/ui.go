// Package controller renders run reports, previews and report history.
package controller

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// UI defines the interface for displaying patch results.
// Implementations can use different output methods (simple text, TUI, etc).
type UI interface {
	// DisplayRun shows the per-file outcome of one run.
	DisplayRun(run m.RunReport) error
	// DisplayPreview shows the diff a dry run would have written to path.
	DisplayPreview(path m.Path, diff string) error
	// DisplayHistory lists saved run reports, oldest first.
	DisplayHistory(runs []m.RunReport) error
}

// NewUI creates a UI based on whether TTY mode is enabled.
// When useTTY is true, it returns a TUI (Bubble Tea).
// When useTTY is false, it returns a SimpleUI (plain text).
func NewUI(cmd *cobra.Command, useTTY bool) UI {
	if useTTY {
		return NewTUI(cmd.OutOrStdout())
	}

	return NewSimpleUI(cmd)
}

// IsTTY checks if the given writer is a terminal (TTY).
func IsTTY(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}

	fileInfo, err := file.Stat()
	if err != nil {
		return false
	}

	return (fileInfo.Mode() & os.ModeCharDevice) != 0
}

// fileState is the one-word state of a file within a run.
func fileState(rep m.PatchReport, dryRun bool) string {
	switch {
	case rep.Error != "":
		return "error"
	case !rep.OK():
		return "incomplete"
	case rep.Written:
		return "written"
	case dryRun && (rep.Changed() || rep.BytesAfter != rep.BytesBefore):
		return "pending"
	default:
		return "unchanged"
	}
}

// extras lists the non-zero counters of the cleanup passes.
func extras(rep m.PatchReport) string {
	var parts []string

	if rep.Duplicates > 0 {
		parts = append(parts, fmt.Sprintf("%d duplicate(s) removed", rep.Duplicates))
	}

	if rep.LinesFixed > 0 {
		parts = append(parts, fmt.Sprintf("%d line(s) fixed", rep.LinesFixed))
	}

	if len(rep.Unresolved) > 0 {
		parts = append(parts, fmt.Sprintf("%d line(s) unresolved", len(rep.Unresolved)))
	}

	if rep.LinesStrip > 0 {
		parts = append(parts, fmt.Sprintf("%d line(s) stripped", rep.LinesStrip))
	}

	return strings.Join(parts, ", ")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}

	return id
}
