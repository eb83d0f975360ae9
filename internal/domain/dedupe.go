package domain

import (
	"sort"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// FindDuplicates groups complete top-level definitions by name and returns
// the groups holding more than one definition, ordered by first offset.
// Definitions whose body is unterminated never take part.
func FindDuplicates(source string) []m.DuplicateGroup {
	byName := make(map[string]*m.DuplicateGroup)

	var order []string

	for _, span := range LocateAll(source) {
		if !span.Complete() {
			continue
		}

		g, ok := byName[span.Name]
		if !ok {
			g = &m.DuplicateGroup{Name: span.Name}
			byName[span.Name] = g
			order = append(order, span.Name)
		}

		g.Spans = append(g.Spans, span)
	}

	var groups []m.DuplicateGroup

	for _, name := range order {
		if g := byName[name]; len(g.Spans) > 1 {
			groups = append(groups, *g)
		}
	}

	return groups
}

// Dedupe keeps the lowest-offset definition of every duplicated name and
// removes each later one from its signature line through its closing brace.
func Dedupe(source string) (string, int) {
	type cut struct{ start, end int }

	var cuts []cut

	for _, g := range FindDuplicates(source) {
		for _, span := range g.Spans[1:] {
			if Ignored(source, span, PassDedupe) {
				continue
			}

			start, end := removalRange(source, span)
			cuts = append(cuts, cut{start, end})
		}
	}

	if len(cuts) == 0 {
		return source, 0
	}

	sort.Slice(cuts, func(i, j int) bool { return cuts[i].start > cuts[j].start })

	out := source
	limit := len(source)

	for _, c := range cuts {
		out = replaceRange(out, c.start, min(c.end, limit), "")
		limit = c.start
	}

	return out, len(cuts)
}

// removalRange widens a span to whole lines and swallows one blank line so
// removing a definition does not leave a double gap behind. A definition
// that runs to the end of input also takes the blank lines before it.
func removalRange(source string, span m.FunctionSpan) (int, int) {
	start := span.SignatureStart
	if ls := lineStart(source, start); onlySpace(source[ls:start]) {
		start = ls
	}

	end := span.BodyEnd
	for end < len(source) && (source[end] == ' ' || source[end] == '\t' || source[end] == '\r') {
		end++
	}

	if end < len(source) && source[end] == '\n' {
		end++
	}

	if end < len(source) && source[end] == '\n' && start >= 2 && source[start-1] == '\n' && source[start-2] == '\n' {
		end++
	}

	if end == len(source) {
		for start >= 2 && source[start-1] == '\n' && source[start-2] == '\n' {
			start--
		}
	}

	return start, end
}

func onlySpace(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] != ' ' && s[i] != '\t' {
			return false
		}
	}

	return true
}
