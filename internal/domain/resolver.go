package domain

import (
	"fmt"
	"slices"
	"strings"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// Resolver maps a PatchSpec onto the identifiers a function actually
// declares. It never guesses: a name the signature does not bind is an
// error, not a default.
type Resolver struct {
	// WellKnownRoots may start a FetchThenVerify id path without being a
	// declared parameter.
	WellKnownRoots []string
}

// Resolve checks spec against span's parameter list.
func (r Resolver) Resolve(span m.FunctionSpan, spec m.PatchSpec) (m.ResolvedParams, error) {
	if err := spec.Validate(); err != nil {
		return m.ResolvedParams{}, err
	}

	switch spec.Kind {
	case m.DirectScope:
		if !span.Declares(spec.ScopeParam) {
			return m.ResolvedParams{}, fmt.Errorf("%w: %s%s has no parameter %q",
				ErrParamNotFound, span.Name, signatureHint(span), spec.ScopeParam)
		}

		return m.ResolvedParams{ScopeParam: spec.ScopeParam}, nil
	case m.FetchThenVerify:
		path, err := r.idPath(span, spec)
		if err != nil {
			return m.ResolvedParams{}, err
		}

		return m.ResolvedParams{IDPath: path, Table: spec.Table}, nil
	}

	return m.ResolvedParams{}, fmt.Errorf("%w: unknown kind %q", ErrInvalidSpec, spec.Kind)
}

// idPath validates the id path's root, or picks the only parameter when the
// spec leaves the path empty.
func (r Resolver) idPath(span m.FunctionSpan, spec m.PatchSpec) (string, error) {
	if spec.IDParam == "" {
		names := span.ParamNames()
		if len(names) != 1 {
			return "", fmt.Errorf("%w: %s%s needs an explicit id_param",
				ErrAmbiguousParam, span.Name, signatureHint(span))
		}

		return names[0], nil
	}

	root := m.PathRoot(spec.IDParam)
	if span.Declares(root) || slices.Contains(r.WellKnownRoots, root) {
		return spec.IDParam, nil
	}

	return "", fmt.Errorf("%w: %s%s has no parameter %q (from id_param %q)",
		ErrParamNotFound, span.Name, signatureHint(span), root, spec.IDParam)
}

func signatureHint(span m.FunctionSpan) string {
	return "(" + strings.Join(span.ParamNames(), ", ") + ")"
}
