package domain

import (
	"fmt"
	"slices"

	"github.com/mouse-blink/guardpatch/internal/domain/guards"
	"github.com/mouse-blink/guardpatch/internal/domain/lexer"
	m "github.com/mouse-blink/guardpatch/internal/model"
)

// Options tunes the patch engine.
type Options struct {
	Lookahead      int
	IndentUnit     string
	Template       guards.Template
	WellKnownRoots []string
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	t := guards.DefaultTemplate()

	return Options{
		Lookahead:      DefaultLookahead,
		IndentUnit:     "    ",
		Template:       t,
		WellKnownRoots: []string{t.UserBinding},
	}
}

// Validate rejects options the engine cannot run with.
func (o Options) Validate() error {
	if o.Lookahead <= 0 {
		return fmt.Errorf("%w: %d", ErrLookaheadTooSmall, o.Lookahead)
	}

	for _, r := range o.IndentUnit {
		if r != ' ' && r != '\t' {
			return fmt.Errorf("indent unit %q must be spaces or tabs", o.IndentUnit)
		}
	}

	return o.Template.Validate()
}

// Patcher is the source-patching engine. Every method is a pure function of
// its input text: the input is never modified and a failed pass returns it
// unchanged.
type Patcher interface {
	// Apply injects the guard of each spec, in order, into source.
	Apply(source string, specs []m.PatchSpec) (string, m.PatchReport, error)
	// Dedupe removes every repeated definition of a function name after the first.
	Dedupe(source string) (string, int)
	// Fixup corrects identifiers inside previously inserted guards.
	Fixup(source string) (string, m.FixupReport, error)
	// Strip removes lines whose trimmed text starts with one of prefixes.
	Strip(source string, prefixes []string) (string, int)
}

type engine struct {
	opts     Options
	resolver Resolver
	scanner  *BoundaryScanner
}

// NewPatcher builds a Patcher from validated options.
func NewPatcher(opts Options) (Patcher, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &engine{
		opts:     opts,
		resolver: Resolver{WellKnownRoots: opts.WellKnownRoots},
		scanner:  NewBoundaryScanner(opts.Template, IDReferenceRewriter(opts.Template, opts.WellKnownRoots)),
	}, nil
}

func (e *engine) Apply(source string, specs []m.PatchSpec) (string, m.PatchReport, error) {
	report := m.PatchReport{BytesBefore: len(source), Outcomes: make([]m.PatchOutcome, 0, len(specs))}
	text := source

	for _, spec := range specs {
		outcome, next, err := e.applyOne(text, spec)
		if err != nil {
			report.BytesAfter = len(source)

			return source, report, err
		}

		report.Outcomes = append(report.Outcomes, outcome)
		text = next
	}

	report.BytesAfter = len(text)

	return text, report, nil
}

// applyOne runs locate, detect, resolve, compose and splice for one spec
// against the current text. Spec-level failures come back as outcomes;
// only a broken detector invariant is returned as an error.
func (e *engine) applyOne(text string, spec m.PatchSpec) (m.PatchOutcome, string, error) {
	out := m.PatchOutcome{Function: spec.Function, Kind: spec.Kind}

	fail := func(err error) (m.PatchOutcome, string, error) {
		out.Status = statusFor(err)
		out.Reason = err.Error()
		out.Err = err

		return out, text, nil
	}

	if err := spec.Validate(); err != nil {
		return fail(err)
	}

	lx := lexer.Scan(text)

	span, err := locateIn(lx, spec.Function)
	if err != nil {
		return fail(err)
	}

	if Ignored(text, span, PassApply) {
		out.Status = m.StatusIgnored
		out.Reason = IgnoreDirective

		return out, text, nil
	}

	switch {
	case !span.Complete():
		return fail(fmt.Errorf("%w: %s has an unterminated body", ErrPatternMismatch, span.Name))
	case !span.Async:
		return fail(fmt.Errorf("%w: %s is not async", ErrPatternMismatch, span.Name))
	case !span.HasCanonicalBody():
		return fail(fmt.Errorf("%w: %s does not open with try {", ErrPatternMismatch, span.Name))
	}

	markers := e.opts.Template.Markers()
	if HasGuard(text[:span.BodyEnd], span.BodyOpenOffset, e.opts.Lookahead, markers...) {
		out.Status = m.StatusAlreadyPresent

		return out, text, nil
	}

	params, err := e.resolver.Resolve(span, spec)
	if err != nil {
		return fail(err)
	}

	if name, ok := tryDeclares(lx, span, e.opts.Template.Bindings(spec.Kind)); ok {
		return fail(fmt.Errorf("%w: %s already declares %q in its try block", ErrBindingConflict, span.Name, name))
	}

	params.Indent = span.TryIndent + e.opts.IndentUnit
	params.Unit = e.opts.IndentUnit

	block, err := e.opts.Template.Compose(spec.Kind, params, spec.ResourceLabel())
	if err != nil {
		return fail(fmt.Errorf("%w: %w", ErrPatternMismatch, err))
	}

	next := replaceRange(text, span.BodyOpenOffset, span.BodyOpenOffset, block.Text)

	bodyEnd := span.BodyEnd + len(block.Text)
	if !HasGuard(next[:bodyEnd], span.BodyOpenOffset, e.opts.Lookahead, markers...) {
		return out, text, fmt.Errorf("%w: %s (lookahead %d)", ErrLookaheadTooSmall, span.Name, e.opts.Lookahead)
	}

	out.Status = m.StatusApplied
	out.ByteDelta = len(block.Text)

	return out, next, nil
}

// tryDeclares reports the first of names declared with const, let or var
// directly inside the try block opened at span.BodyOpenOffset.
func tryDeclares(lx *lexer.Map, span m.FunctionSpan, names []string) (string, bool) {
	open := span.BodyOpenOffset - 1

	end := lx.Matching(open)
	if end < 0 {
		end = span.BodyEnd
	}

	depth := lx.Depth(span.BodyOpenOffset)

	for i := span.BodyOpenOffset; i < end; i++ {
		if lx.Depth(i) != depth || !lx.IsCode(i) {
			continue
		}

		var kw string

		for _, k := range []string{"const", "let", "var"} {
			if lx.WordAt(i, k) {
				kw = k

				break
			}
		}

		if kw == "" {
			continue
		}

		name, _ := lx.Ident(lx.SkipTrivia(i + len(kw)))
		if slices.Contains(names, name) {
			return name, true
		}

		i += len(kw)
	}

	return "", false
}

func (e *engine) Dedupe(source string) (string, int) {
	return Dedupe(source)
}

func (e *engine) Fixup(source string) (string, m.FixupReport, error) {
	return e.scanner.Scan(source)
}

func (e *engine) Strip(source string, prefixes []string) (string, int) {
	return StripLines(source, prefixes)
}
