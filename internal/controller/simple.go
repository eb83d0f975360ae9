package controller

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

const timeLayout = "2006-01-02 15:04:05"

// SimpleUI implements UI using cobra Command's output.
type SimpleUI struct {
	cmd *cobra.Command
}

// NewSimpleUI creates a new SimpleUI.
func NewSimpleUI(cmd *cobra.Command) *SimpleUI {
	return &SimpleUI{cmd: cmd}
}

// DisplayRun prints one row per file with its outcome counts.
func (s *SimpleUI) DisplayRun(run m.RunReport) error {
	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Applied", "Present", "Not Found", "Mismatch", "State"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_LEFT,
	})

	for _, rep := range run.Files {
		table.Append([]string{
			string(rep.Target),
			fmt.Sprintf("%d", rep.Count(m.StatusApplied)),
			fmt.Sprintf("%d", rep.Count(m.StatusAlreadyPresent)),
			fmt.Sprintf("%d", rep.Count(m.StatusFunctionNotFound)),
			fmt.Sprintf("%d", rep.Count(m.StatusPatternMismatch)),
			fileState(rep, run.DryRun),
		})
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(run.Files)),
		fmt.Sprintf("%d", run.Total(m.StatusApplied)),
		fmt.Sprintf("%d", run.Total(m.StatusAlreadyPresent)),
		fmt.Sprintf("%d", run.Total(m.StatusFunctionNotFound)),
		fmt.Sprintf("%d", run.Total(m.StatusPatternMismatch)),
		"",
	})

	table.Render()

	mode := ""
	if run.DryRun {
		mode = " (dry run)"
	}

	s.printf("%s %s%s\n\n%s", run.Command, shortID(run.RunID), mode, tableBuffer.String())

	for _, rep := range run.Files {
		s.printDetails(rep)
	}

	return nil
}

// DisplayPreview prints the diff under a header naming the file.
func (s *SimpleUI) DisplayPreview(path m.Path, diff string) error {
	s.printf("--- %s\n%s\n", path, diff)

	return nil
}

// DisplayHistory prints one row per saved run.
func (s *SimpleUI) DisplayHistory(runs []m.RunReport) error {
	if len(runs) == 0 {
		s.printf("no reports found\n")

		return nil
	}

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Run", "Command", "Started", "Files", "Applied", "OK"})
	table.SetBorder(false)
	table.SetCenterSeparator("")

	for _, run := range runs {
		ok := "yes"
		if !run.OK() {
			ok = "no"
		}

		command := run.Command
		if run.DryRun {
			command += " (dry run)"
		}

		table.Append([]string{
			shortID(run.RunID),
			command,
			run.StartedAt.Format(timeLayout),
			fmt.Sprintf("%d", len(run.Files)),
			fmt.Sprintf("%d", run.Total(m.StatusApplied)),
			ok,
		})
	}

	table.Render()
	s.printf("%s", tableBuffer.String())

	return nil
}

func (s *SimpleUI) printDetails(rep m.PatchReport) {
	if rep.Error != "" {
		s.printf("%s: %s\n", rep.Target, rep.Error)
	}

	for _, o := range rep.Outcomes {
		switch {
		case o.Status.Failed():
			s.printf("%s: %s %s: %s\n", rep.Target, o.Function, o.Status, o.Reason)
		case o.Status == m.StatusIgnored:
			s.printf("%s: %s ignored\n", rep.Target, o.Function)
		}
	}

	for _, fix := range rep.Fixes {
		s.printf("%s:%d (%s) %q -> %q\n", rep.Target, fix.Line, fix.Function, fix.Before, fix.After)
	}

	for _, issue := range rep.Unresolved {
		s.printf("%s:%d (%s) unresolved: %s\n", rep.Target, issue.Line, issue.Function, issue.Reason)
	}

	if more := extras(rep); more != "" {
		s.printf("%s: %s\n", rep.Target, more)
	}

	if rep.Backup != "" {
		s.printf("%s: backup %s\n", rep.Target, rep.Backup)
	}
}

func (s *SimpleUI) printf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(s.cmd.OutOrStdout(), format, args...)
}
