package guards

import m "github.com/mouse-blink/guardpatch/internal/model"

// renderDirect: authenticate, then check membership of the scope id the
// function already receives.
func (t Template) renderDirect(w *blockWriter, params m.ResolvedParams) {
	t.renderAuth(w, "Verify membership")
	t.renderMembership(w, params.ScopeParam)
}
