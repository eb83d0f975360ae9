package guards

import (
	"fmt"
	"strconv"
	"strings"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// Compose renders the guard for kind against resolved parameters.
func (t Template) Compose(kind m.ScopeKind, params m.ResolvedParams, label string) (m.GuardBlock, error) {
	var w blockWriter

	w.indent, w.unit = params.Indent, params.Unit
	if w.unit == "" {
		w.unit = "    "
	}

	switch kind {
	case m.DirectScope:
		if params.ScopeParam == "" {
			return m.GuardBlock{}, fmt.Errorf("%w: direct guard without scope parameter", ErrInvalidTemplate)
		}

		t.renderDirect(&w, params)
	case m.FetchThenVerify:
		if params.IDPath == "" || params.Table == "" {
			return m.GuardBlock{}, fmt.Errorf("%w: fetch guard without table or id path", ErrInvalidTemplate)
		}

		t.renderFetch(&w, params, label)
	default:
		return m.GuardBlock{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidTemplate, kind)
	}

	return m.GuardBlock{Kind: kind, Text: w.String(), Refs: params.Refs()}, nil
}

// renderAuth writes the current-user resolution shared by both shapes.
func (t Template) renderAuth(w *blockWriter, purpose string) {
	w.line(0, "// %s: %s", t.Sentinel, purpose)
	w.line(0, "const %s = await %s;", t.UserBinding, t.CurrentUserCall)
	w.line(0, "if (!%[1]s.success || !%[1]s.data) return %[2]s;", t.UserBinding, failure(t.Messages.Unauthenticated))
}

// renderMembership writes the membership lookup against scopeExpr.
func (t Template) renderMembership(w *blockWriter, scopeExpr string) {
	w.line(0, "const %s = await %s.%s.findFirst({", t.AccessBinding, t.ORM, t.ScopeEntity)
	w.line(1, "where: { id: %s, %s: { some: { id: %s.data.id } } }", scopeExpr, t.MembersField, t.UserBinding)
	w.line(0, "});")
	w.line(0, "if (!%s) return %s;", t.AccessBinding, failure(t.Messages.AccessDenied))
}

// failure renders the `{ success: false, error: "..." }` result literal.
func failure(msg string) string {
	return "{ success: false, error: " + strconv.Quote(msg) + " }"
}

// blockWriter accumulates guard lines. The rendered text starts with a
// newline and ends with a blank line so it can be spliced right after
// `try {` while leaving the following statement on its own line.
type blockWriter struct {
	indent string
	unit   string
	lines  []string
}

func (w *blockWriter) line(level int, format string, args ...any) {
	w.lines = append(w.lines, w.indent+strings.Repeat(w.unit, level)+fmt.Sprintf(format, args...))
}

func (w *blockWriter) blank() {
	w.lines = append(w.lines, "")
}

func (w *blockWriter) String() string {
	return "\n" + strings.Join(w.lines, "\n") + "\n"
}
