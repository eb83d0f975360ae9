package domain

import (
	"strings"

	m "github.com/mouse-blink/guardpatch/internal/model"
)

// IgnoreDirective opts a function, or a whole file, out of some passes:
//
//	// guardpatch:ignore              every pass
//	// guardpatch:ignore apply,fixup  the listed passes only
//
// A directive in the comment block directly above a signature applies to
// that function; one in the file's leading comment block applies to every
// function in the file.
const IgnoreDirective = "guardpatch:ignore"

// Pass names accepted by IgnoreDirective.
const (
	PassApply  = "apply"
	PassDedupe = "dedupe"
	PassFixup  = "fixup"
)

type ignoreRule struct {
	all   bool
	names map[string]struct{}
}

func (r ignoreRule) ignores(pass string) bool {
	if r.all {
		return true
	}

	_, ok := r.names[pass]

	return ok
}

func mergeIgnoreRule(dst *ignoreRule, src ignoreRule) {
	if src.all {
		dst.all = true
		dst.names = nil

		return
	}

	if dst.all || len(src.names) == 0 {
		return
	}

	if dst.names == nil {
		dst.names = make(map[string]struct{}, len(src.names))
	}

	for name := range src.names {
		dst.names[name] = struct{}{}
	}
}

func parseIgnoreDirective(commentText string) (ignoreRule, bool) {
	s := strings.TrimSpace(commentText)
	if strings.HasPrefix(s, "//") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "//"))
	} else if strings.HasPrefix(s, "/*") {
		s = strings.TrimSpace(strings.TrimPrefix(s, "/*"))
		s = strings.TrimSpace(strings.TrimSuffix(s, "*/"))
	} else {
		return ignoreRule{}, false
	}

	if !strings.HasPrefix(s, IgnoreDirective) {
		return ignoreRule{}, false
	}

	rest := strings.TrimSpace(strings.TrimPrefix(s, IgnoreDirective))
	if rest == "" {
		return ignoreRule{all: true}, true
	}

	parts := strings.Split(rest, ",")
	rule := ignoreRule{names: make(map[string]struct{}, len(parts))}

	for _, part := range parts {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}

		rule.names[name] = struct{}{}
	}

	if len(rule.names) == 0 {
		rule.all = true
		rule.names = nil
	}

	return rule, true
}

func isCommentLine(line string) bool {
	s := strings.TrimSpace(line)

	return strings.HasPrefix(s, "//") || strings.HasPrefix(s, "/*") || strings.HasPrefix(s, "*")
}

// fileIgnoreRule merges the directives of the file's leading comments. The
// comment run directly above the first code line belongs to that code, so
// only runs followed by a blank line count.
func fileIgnoreRule(source string) ignoreRule {
	var rule, pending ignoreRule

	for _, line := range strings.Split(source, "\n") {
		if strings.TrimSpace(line) == "" {
			mergeIgnoreRule(&rule, pending)
			pending = ignoreRule{}

			continue
		}

		if !isCommentLine(line) {
			return rule
		}

		if r, ok := parseIgnoreDirective(line); ok {
			mergeIgnoreRule(&pending, r)
		}
	}

	mergeIgnoreRule(&rule, pending)

	return rule
}

// funcIgnoreRule merges the directives of the comment lines directly above
// the signature of span.
func funcIgnoreRule(source string, span m.FunctionSpan) ignoreRule {
	var rule ignoreRule

	end := lineStart(source, span.SignatureStart)

	for end > 0 {
		start := lineStart(source, end-1)
		line := source[start : end-1]

		if !isCommentLine(line) {
			break
		}

		if r, ok := parseIgnoreDirective(line); ok {
			mergeIgnoreRule(&rule, r)
		}

		end = start
	}

	return rule
}

// Ignored reports whether pass must leave span alone.
func Ignored(source string, span m.FunctionSpan, pass string) bool {
	return funcIgnoreRule(source, span).ignores(pass) || fileIgnoreRule(source).ignores(pass)
}
