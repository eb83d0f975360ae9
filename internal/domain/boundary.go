package domain

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/mouse-blink/guardpatch/internal/domain/guards"
	m "github.com/mouse-blink/guardpatch/internal/model"
)

// GuardState is the boundary scanner's position relative to a guard region.
type GuardState int

// Scanner states.
const (
	Outside GuardState = iota
	InGuard
)

// LineRewriter rewrites a single line inside a guard region of fn. It must
// return exactly one line. An error leaves the line unchanged and is
// reported as unresolved.
type LineRewriter func(line string, fn m.FunctionSpan) (string, error)

// BoundaryScanner walks a source line by line, finds previously inserted
// guard regions and lets a LineRewriter correct lines inside them. A region
// opens on a sentinel line and closes on the first code line that uses the
// ORM without declaring one of the guard's bindings.
type BoundaryScanner struct {
	template guards.Template
	rewrite  LineRewriter
	exitRe   *regexp.Regexp
	bindRe   *regexp.Regexp
}

// NewBoundaryScanner builds a scanner for guards rendered by t.
func NewBoundaryScanner(t guards.Template, rewrite LineRewriter) *BoundaryScanner {
	bindings := t.Bindings(m.FetchThenVerify)
	for i, b := range bindings {
		bindings[i] = regexp.QuoteMeta(b)
	}

	return &BoundaryScanner{
		template: t,
		rewrite:  rewrite,
		exitRe:   regexp.MustCompile(`(?:^|[^\w$.])` + regexp.QuoteMeta(t.ORM) + `\.`),
		bindRe:   regexp.MustCompile(`\b(?:const|let|var)\s+(?:` + strings.Join(bindings, "|") + `)\b`),
	}
}

// Scan runs one corrective pass. On ErrMalformedGuardRegion the original
// source is returned with an empty report.
func (b *BoundaryScanner) Scan(source string) (string, m.FixupReport, error) {
	var report m.FixupReport

	lines := strings.Split(source, "\n")
	spans := LocateAll(source)
	owner := lineOwners(source, spans, len(lines))

	state := Outside
	region := -1
	regionLine := 0
	skip := false

	for i, line := range lines {
		fn := owner[i]

		switch state {
		case Outside:
			if fn >= 0 && b.template.SentinelLine(line) {
				state, region, regionLine = InGuard, fn, i
				skip = Ignored(source, spans[fn], PassFixup)
				report.Regions++
			}

			continue
		case InGuard:
			if fn != region {
				return source, m.FixupReport{}, fmt.Errorf("%w: guard opened on line %d leaves %s before its data access",
					ErrMalformedGuardRegion, regionLine+1, spans[region].Name)
			}

			if b.isExit(line) {
				state, region = Outside, -1

				continue
			}
		}

		if b.rewrite == nil || skip {
			continue
		}

		fixed, err := b.rewrite(line, spans[region])
		if err != nil {
			report.Unresolved = append(report.Unresolved, m.LineIssue{Line: i + 1, Function: spans[region].Name, Text: line, Reason: err.Error()})

			continue
		}

		if strings.Contains(fixed, "\n") {
			return source, m.FixupReport{}, fmt.Errorf("%w: line %d", ErrLineCountChanged, i+1)
		}

		if fixed != line {
			report.Fixes = append(report.Fixes, m.LineFix{Line: i + 1, Function: spans[region].Name, Before: line, After: fixed})
			lines[i] = fixed
		}
	}

	if state == InGuard {
		return source, m.FixupReport{}, fmt.Errorf("%w: guard opened on line %d in %s never reaches its data access",
			ErrMalformedGuardRegion, regionLine+1, spans[region].Name)
	}

	return strings.Join(lines, "\n"), report, nil
}

// isExit reports whether line performs the data access the guard protects,
// as opposed to one of the guard's own lookups.
func (b *BoundaryScanner) isExit(line string) bool {
	return !isCommentLine(line) && b.exitRe.MatchString(line) && !b.bindRe.MatchString(line)
}

// lineOwners maps each line to the index into spans of the function whose
// body contains the line, or -1. An unterminated body owns every line up to
// the end of input.
func lineOwners(source string, spans []m.FunctionSpan, n int) []int {
	owner := make([]int, n)
	for i := range owner {
		owner[i] = -1
	}

	starts := computeLineStarts(source)

	for idx, span := range spans {
		first := lineOf(starts, span.BodyStart)
		last := n - 1

		if span.Complete() {
			last = lineOf(starts, span.BodyEnd-1)
		}

		for l := first; l <= last && l < n; l++ {
			owner[l] = idx
		}
	}

	return owner
}

var idWhereRe = regexp.MustCompile(`(where:\s*\{\s*id:\s*)([A-Za-z_$][\w$]*(?:\.[A-Za-z_$][\w$]*)*)(\s*[,}])`)

// IDReferenceRewriter returns a LineRewriter that repairs `where: { id: X }`
// lookups whose root X is not bound in the function: X is replaced by the
// function's only id-like parameter (`id` or `...Id`), else its only
// parameter. Several candidates are ErrAmbiguousParam. Roots that are
// parameters, well-known roots or the guard's record binding are left alone.
func IDReferenceRewriter(t guards.Template, wellKnown []string) LineRewriter {
	return func(line string, fn m.FunctionSpan) (string, error) {
		names := fn.ParamNames()
		if len(names) == 0 {
			return line, nil
		}

		var err error

		fixed := idWhereRe.ReplaceAllStringFunc(line, func(match string) string {
			parts := idWhereRe.FindStringSubmatch(match)

			root := m.PathRoot(parts[2])
			if fn.Declares(root) || root == t.RecordBinding || slices.Contains(wellKnown, root) {
				return match
			}

			id, idErr := idParam(names)
			if idErr != nil {
				err = fmt.Errorf("%w: %s could be any of %s", idErr, parts[2], strings.Join(names, ", "))

				return match
			}

			return parts[1] + id + parts[3]
		})

		if err != nil {
			return line, err
		}

		return fixed, nil
	}
}

func idParam(names []string) (string, error) {
	var candidates []string

	for _, n := range names {
		if n == "id" || strings.HasSuffix(n, "Id") || strings.HasSuffix(n, "ID") {
			candidates = append(candidates, n)
		}
	}

	switch {
	case len(candidates) == 1:
		return candidates[0], nil
	case len(candidates) == 0 && len(names) == 1:
		return names[0], nil
	}

	return "", ErrAmbiguousParam
}
