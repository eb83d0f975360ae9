// Package guards renders guard blocks: the statement sequences spliced at
// the top of a function's try block to authenticate the caller and verify
// membership of the scope the function touches.
package guards

import (
	"errors"
	"fmt"
	"strings"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// ErrInvalidTemplate reports a Template that cannot render valid code.
var ErrInvalidTemplate = errors.New("invalid guard template")

// LabelPlaceholder is replaced by the resource label in Messages.NotFound.
const LabelPlaceholder = "{label}"

// Messages are the error strings returned by rendered guards.
type Messages struct {
	Unauthenticated string `mapstructure:"unauthenticated" yaml:"unauthenticated"`
	AccessDenied    string `mapstructure:"access_denied" yaml:"access_denied"`
	NotFound        string `mapstructure:"not_found" yaml:"not_found"`
}

// Template names the ambient collaborators a rendered guard calls. Nothing
// here is executed; the names are emitted verbatim.
type Template struct {
	// Sentinel is written in the leading comment of every guard and is one
	// of the markers the detector looks for.
	Sentinel string `mapstructure:"sentinel" yaml:"sentinel"`
	// CurrentUserCall resolves the caller; it must return {success, data}.
	CurrentUserCall string `mapstructure:"current_user_call" yaml:"current_user_call"`
	ORM             string `mapstructure:"orm" yaml:"orm"`
	ScopeEntity     string `mapstructure:"scope_entity" yaml:"scope_entity"`
	MembersField    string `mapstructure:"members_field" yaml:"members_field"`
	ScopeKeyField   string `mapstructure:"scope_key_field" yaml:"scope_key_field"`

	UserBinding   string `mapstructure:"user_binding" yaml:"user_binding"`
	RecordBinding string `mapstructure:"record_binding" yaml:"record_binding"`
	AccessBinding string `mapstructure:"access_binding" yaml:"access_binding"`

	Messages Messages `mapstructure:"messages" yaml:"messages"`
}

// DefaultTemplate returns the template used by the server actions this tool
// was written for.
func DefaultTemplate() Template {
	return Template{
		Sentinel:        "🔒 SECURITY",
		CurrentUserCall: "getCurrentUser()",
		ORM:             "prisma",
		ScopeEntity:     "societe",
		MembersField:    "members",
		ScopeKeyField:   "societeId",
		UserBinding:     "userRes",
		RecordBinding:   "existing",
		AccessBinding:   "hasAccess",
		Messages: Messages{
			Unauthenticated: "Non authentifié",
			AccessDenied:    "Accès refusé",
			NotFound:        LabelPlaceholder + " introuvable",
		},
	}
}

// Validate checks that every emitted name is usable in generated code.
func (t Template) Validate() error {
	idents := map[string]string{
		"orm":             t.ORM,
		"scope_entity":    t.ScopeEntity,
		"members_field":   t.MembersField,
		"scope_key_field": t.ScopeKeyField,
		"user_binding":    t.UserBinding,
		"record_binding":  t.RecordBinding,
		"access_binding":  t.AccessBinding,
	}

	for key, v := range idents {
		if !m.IsIdentifier(v) {
			return fmt.Errorf("%w: %s %q is not an identifier", ErrInvalidTemplate, key, v)
		}
	}

	if strings.TrimSpace(t.Sentinel) == "" || strings.Contains(t.Sentinel, "\n") {
		return fmt.Errorf("%w: sentinel must be a non-empty single line", ErrInvalidTemplate)
	}

	if !strings.HasSuffix(t.CurrentUserCall, ")") {
		return fmt.Errorf("%w: current_user_call %q is not a call expression", ErrInvalidTemplate, t.CurrentUserCall)
	}

	if !strings.Contains(t.Messages.NotFound, LabelPlaceholder) {
		return fmt.Errorf("%w: not_found message must contain %s", ErrInvalidTemplate, LabelPlaceholder)
	}

	return nil
}

// Markers are the substrings whose presence means a guard already exists.
func (t Template) Markers() []string {
	return []string{t.Sentinel, t.CurrentUserCall}
}

// Bindings are the names a rendered guard declares in the try block.
func (t Template) Bindings(kind m.ScopeKind) []string {
	if kind == m.FetchThenVerify {
		return []string{t.UserBinding, t.RecordBinding, t.AccessBinding}
	}

	return []string{t.UserBinding, t.AccessBinding}
}

// SentinelLine reports whether line carries the sentinel comment.
func (t Template) SentinelLine(line string) bool {
	return strings.Contains(line, t.Sentinel)
}
