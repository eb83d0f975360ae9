package domain

import (
	"errors"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// Engine errors. Per-spec errors are recovered by Apply and surface as
// PatchOutcome statuses; the remaining ones abort the pass that raised them.
var (
	ErrFunctionNotFound = errors.New("function not found")
	ErrPatternMismatch  = errors.New("function body does not match the guardable pattern")
	ErrParamNotFound    = errors.New("parameter not found")
	ErrAmbiguousParam   = errors.New("id parameter is ambiguous")
	ErrBindingConflict  = errors.New("guard binding already declared")
	ErrInvalidSpec      = m.ErrInvalidSpec

	ErrMalformedGuardRegion = errors.New("malformed guard region")
	ErrLookaheadTooSmall    = errors.New("lookahead window does not cover the inserted guard")
	ErrLineCountChanged     = errors.New("line rewrite changed the line count")
	ErrIncomplete           = errors.New("some specs were not applied")
	ErrChangesPending       = errors.New("guards are missing")
)

// statusFor maps a per-spec error onto the outcome status it reports as.
func statusFor(err error) m.PatchStatus {
	if errors.Is(err, ErrFunctionNotFound) {
		return m.StatusFunctionNotFound
	}

	return m.StatusPatternMismatch
}
