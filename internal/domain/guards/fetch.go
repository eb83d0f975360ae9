package guards

import (
	"strings"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// renderFetch: authenticate, load the record's scope key by id, fail with
// not-found when absent, then check membership of that scope.
func (t Template) renderFetch(w *blockWriter, params m.ResolvedParams, label string) {
	t.renderAuth(w, "Verify access")
	w.blank()
	w.line(0, "const %s = await %s.%s.findUnique({", t.RecordBinding, t.ORM, params.Table)
	w.line(1, "where: { id: %s },", params.IDPath)
	w.line(1, "select: { %s: true }", t.ScopeKeyField)
	w.line(0, "});")
	w.line(0, "if (!%s) return %s;", t.RecordBinding, failure(strings.ReplaceAll(t.Messages.NotFound, LabelPlaceholder, label)))
	w.blank()
	t.renderMembership(w, t.RecordBinding+"."+t.ScopeKeyField)
}
