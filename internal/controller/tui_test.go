package controller

import (
	"bytes"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

func TestTUI_DisplayRun_PrintsWhenNotATerminal(t *testing.T) {
	var buf bytes.Buffer

	if err := NewTUI(&buf).DisplayRun(sampleRun()); err != nil {
		t.Fatalf("DisplayRun() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{
		"guardpatch apply",
		"Run 0f8fad5b",
		"Files: 2",
		"Applied: 1",
		"Failed: 1",
		"app/actions/invoices.ts",
		"written",
		"incomplete",
		"1 duplicate(s) removed",
	} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestTUI_DisplayPreview(t *testing.T) {
	var buf bytes.Buffer

	if err := NewTUI(&buf).DisplayPreview("a.ts", "@@ line 3 @@\n keep\n-old\n+new\n"); err != nil {
		t.Fatalf("DisplayPreview() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{"a.ts", "@@ line 3 @@", " keep", "-old", "+new"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestTUI_DisplayHistory(t *testing.T) {
	var buf bytes.Buffer

	if err := NewTUI(&buf).DisplayHistory(nil); err != nil {
		t.Fatalf("DisplayHistory() error = %v", err)
	}

	output := buf.String()

	for _, want := range []string{"guardpatch history", "Reports: 0", "Nothing to show"} {
		if !strings.Contains(output, want) {
			t.Fatalf("output missing %q\noutput:\n%s", want, output)
		}
	}
}

func TestReportModel_Pagination(t *testing.T) {
	rows := make([]row, 20)
	for i := range rows {
		rows[i] = row{title: "file.ts", state: "written"}
	}

	model := newReportModel("title", "summary", rows)

	if model.needsPagination() {
		t.Fatalf("needsPagination() = true before the terminal size is known")
	}

	if !model.resize(80, 10).needsPagination() {
		t.Fatalf("needsPagination() = false for 20 rows on 10 lines")
	}

	if model.resize(80, 40).needsPagination() {
		t.Fatalf("needsPagination() = true for 20 rows on 40 lines")
	}
}

func TestReportModel_Update(t *testing.T) {
	model := newReportModel("title", "summary", []row{{title: "a.ts"}})

	updated, cmd := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if cmd != nil {
		t.Fatalf("WindowSizeMsg returned a command")
	}

	rm, ok := updated.(reportModel)
	if !ok || rm.width != 100 || rm.height != 30 {
		t.Fatalf("Update(WindowSizeMsg) = %+v", updated)
	}

	_, cmd = rm.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatalf("q did not quit")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("q returned %T, want tea.QuitMsg", cmd())
	}
}

func TestFileRow(t *testing.T) {
	rep := m.PatchReport{
		Target:   "a.ts",
		Outcomes: []m.PatchOutcome{{Status: m.StatusApplied}, {Status: m.StatusPatternMismatch}},
		Error:    "malformed guard region",
	}

	r := fileRow(rep, false)

	if r.state != "error" || !r.failed {
		t.Fatalf("fileRow() = %+v", r)
	}

	for _, want := range []string{"applied 1", "failed 1", "malformed guard region"} {
		if !strings.Contains(r.detail, want) {
			t.Fatalf("detail missing %q: %s", want, r.detail)
		}
	}
}

func TestTruncateToWidth(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{text: "short", width: 10, want: "short"},
		{text: "a/long/path.ts", width: 6, want: "a/lon…"},
		{text: "abc", width: 1, want: "…"},
		{text: "abc", width: 0, want: ""},
	}

	for _, tt := range tests {
		if got := truncateToWidth(tt.text, tt.width); got != tt.want {
			t.Errorf("truncateToWidth(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
