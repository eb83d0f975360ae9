package model

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ScopeKind selects the shape of the guard injected for a PatchSpec.
type ScopeKind string

const (
	// DirectScope checks membership against a scope id the function already
	// receives as a parameter.
	DirectScope ScopeKind = "direct"
	// FetchThenVerify loads a record by id to discover its scope key, then
	// checks membership against it.
	FetchThenVerify ScopeKind = "fetch"
)

var (
	identRe  = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)
	idPathRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*(\.[A-Za-z_$][A-Za-z0-9_$]*)*$`)

	// ErrInvalidSpec reports a PatchSpec whose fields cannot describe a guard.
	ErrInvalidSpec = errors.New("invalid patch spec")
)

// IsIdentifier reports whether s is a plain identifier.
func IsIdentifier(s string) bool {
	return identRe.MatchString(s)
}

// IsIDPath reports whether s is an identifier or a dotted field path.
func IsIDPath(s string) bool {
	return idPathRe.MatchString(s)
}

// PathRoot returns the syntactic root of a dotted access path.
func PathRoot(path string) string {
	root, _, _ := strings.Cut(path, ".")

	return root
}

// PatchSpec declares one guard to inject.
type PatchSpec struct {
	Function   string    `yaml:"function"`
	Kind       ScopeKind `yaml:"kind"`
	ScopeParam string    `yaml:"scope_param,omitempty"`
	Table      string    `yaml:"table,omitempty"`
	IDParam    string    `yaml:"id_param,omitempty"`
	Label      string    `yaml:"label,omitempty"`
}

// Validate checks the spec's shape without looking at any source text.
func (s PatchSpec) Validate() error {
	if !IsIdentifier(s.Function) {
		return fmt.Errorf("%w: function name %q is not an identifier", ErrInvalidSpec, s.Function)
	}

	switch s.Kind {
	case DirectScope:
		if !IsIdentifier(s.ScopeParam) {
			return fmt.Errorf("%w: %s: scope_param %q is not an identifier", ErrInvalidSpec, s.Function, s.ScopeParam)
		}
	case FetchThenVerify:
		if !IsIdentifier(s.Table) {
			return fmt.Errorf("%w: %s: table %q is not an identifier", ErrInvalidSpec, s.Function, s.Table)
		}

		if s.IDParam != "" && !IsIDPath(s.IDParam) {
			return fmt.Errorf("%w: %s: id_param %q is not an access path", ErrInvalidSpec, s.Function, s.IDParam)
		}
	default:
		return fmt.Errorf("%w: %s: unknown kind %q", ErrInvalidSpec, s.Function, s.Kind)
	}

	return nil
}

// ResourceLabel returns the label used in not-found results.
func (s PatchSpec) ResourceLabel() string {
	if s.Label != "" {
		return s.Label
	}

	if s.Table == "" {
		return "Enregistrement"
	}

	return strings.ToUpper(s.Table[:1]) + s.Table[1:]
}

// ResolvedParams holds the identifiers a guard block may reference.
type ResolvedParams struct {
	ScopeParam string // DirectScope: declared parameter holding the scope id
	IDPath     string // FetchThenVerify: access path yielding the record id
	Table      string
	Indent     string // indent of the guard's statements
	Unit       string // one extra indent level for continuation lines
}

// Refs lists the identifiers the rendered guard reads from the function.
func (r ResolvedParams) Refs() []string {
	if r.ScopeParam != "" {
		return []string{r.ScopeParam}
	}

	return []string{r.IDPath}
}

// GuardBlock is rendered guard text ready to splice after `try {`.
type GuardBlock struct {
	Kind ScopeKind
	Text string
	Refs []string
}
