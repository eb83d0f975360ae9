package controller

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

func newSimpleUI(buf *bytes.Buffer) *SimpleUI {
	cmd := &cobra.Command{}
	cmd.SetOut(buf)

	return NewSimpleUI(cmd)
}

func TestSimpleUI_DisplayRun_PrintsTable(t *testing.T) {
	var buf bytes.Buffer

	if err := newSimpleUI(&buf).DisplayRun(sampleRun()); err != nil {
		t.Fatalf("DisplayRun() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"apply 0f8fad5b",
		"app/actions/invoices.ts",
		"app/actions/clients.ts",
		"written",
		"incomplete",
		"TOTAL FILES 2",
		"listClients function_not_found: function not found",
		"1 duplicate(s) removed",
		"backup app/actions/invoices.ts.backup_20240309_140507",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayRun_DryRun(t *testing.T) {
	var buf bytes.Buffer

	run := sampleRun()
	run.DryRun = true
	run.Files = []m.PatchReport{{
		Target:      "a.ts",
		Outcomes:    []m.PatchOutcome{{Function: "f", Status: m.StatusApplied}},
		BytesBefore: 10,
		BytesAfter:  200,
	}}

	if err := newSimpleUI(&buf).DisplayRun(run); err != nil {
		t.Fatalf("DisplayRun() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{"(dry run)", "pending"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayRun_FixupLines(t *testing.T) {
	var buf bytes.Buffer

	run := m.RunReport{RunID: "r1", Command: "fixup", Files: []m.PatchReport{{
		Target:     "a.ts",
		LinesFixed: 1,
		Fixes:      []m.LineFix{{Line: 8, Function: "send", Before: "id: id", After: "id: invoiceId"}},
		Written:    true,
	}}}

	if err := newSimpleUI(&buf).DisplayRun(run); err != nil {
		t.Fatalf("DisplayRun() error = %v", err)
	}

	if want := `a.ts:8 (send) "id: id" -> "id: invoiceId"`; !strings.Contains(buf.String(), want) {
		t.Fatalf("output missing %q\noutput:\n%s", want, buf.String())
	}
}

func TestSimpleUI_DisplayRun_UnresolvedLines(t *testing.T) {
	var buf bytes.Buffer

	run := m.RunReport{RunID: "r1", Command: "fixup", Files: []m.PatchReport{{
		Target: "a.ts",
		Unresolved: []m.LineIssue{{
			Line:     7,
			Function: "updateInvoice",
			Text:     "where: { id: id },",
			Reason:   "id parameter is ambiguous: id could be any of societeId, invoiceId",
		}},
	}}}

	if err := newSimpleUI(&buf).DisplayRun(run); err != nil {
		t.Fatalf("DisplayRun() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"a.ts:7 (updateInvoice) unresolved: id parameter is ambiguous",
		"1 line(s) unresolved",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestSimpleUI_DisplayPreview(t *testing.T) {
	var buf bytes.Buffer

	if err := newSimpleUI(&buf).DisplayPreview("a.ts", "@@ line 1 @@\n+added\n"); err != nil {
		t.Fatalf("DisplayPreview() error = %v", err)
	}

	if got, want := buf.String(), "--- a.ts\n@@ line 1 @@\n+added\n\n"; got != want {
		t.Fatalf("DisplayPreview() = %q, want %q", got, want)
	}
}

func TestSimpleUI_DisplayHistory(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var buf bytes.Buffer

		if err := newSimpleUI(&buf).DisplayHistory(nil); err != nil {
			t.Fatalf("DisplayHistory() error = %v", err)
		}

		if !strings.Contains(buf.String(), "no reports found") {
			t.Fatalf("output = %q", buf.String())
		}
	})

	t.Run("runs", func(t *testing.T) {
		var buf bytes.Buffer

		ok := m.RunReport{RunID: "11111111-aaaa", Command: "dedupe", DryRun: true}

		if err := newSimpleUI(&buf).DisplayHistory([]m.RunReport{sampleRun(), ok}); err != nil {
			t.Fatalf("DisplayHistory() error = %v", err)
		}

		output := buf.String()

		for _, want := range []string{"0f8fad5b", "2024-03-09 14:05:07", "no", "11111111", "dedupe (dry run)", "yes"} {
			if !strings.Contains(output, want) {
				t.Fatalf("output missing %q\noutput:\n%s", want, output)
			}
		}
	})
}
