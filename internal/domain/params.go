package domain

import (
	"strings"

	"github.com/mouse-blink/guardpatch/internal/domain/lexer"
	m "github.com/mouse-blink/guardpatch/internal/model"
)

// parseParams parses the parameter list between the parentheses at
// [from, to). Comments are dropped before splitting.
func parseParams(lx *lexer.Map, from, to int) []m.Param {
	src := lx.Src()

	var b strings.Builder

	for i := from; i < to; i++ {
		switch lx.ClassAt(i) {
		case lexer.LineComment, lexer.BlockComment:
			continue
		}

		b.WriteByte(src[i])
	}

	var params []m.Param

	for _, seg := range splitTopLevel(b.String(), ',') {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}

		params = append(params, parseParam(seg))
	}

	return params
}

func parseParam(seg string) m.Param {
	var p m.Param

	if strings.HasPrefix(seg, "...") {
		p.Rest = true
		seg = strings.TrimSpace(seg[3:])
	}

	if head, def, ok := cutTopLevel(seg, '='); ok {
		seg = strings.TrimSpace(head)
		p.Optional = strings.TrimSpace(def) != ""
	}

	if seg != "" && (seg[0] == '{' || seg[0] == '[') {
		end := matchingInString(seg, 0)
		if end < 0 {
			return p
		}

		p.Bound = patternNames(seg[1:end])

		if rest := strings.TrimSpace(seg[end+1:]); strings.HasPrefix(rest, ":") {
			p.Type = strings.TrimSpace(rest[1:])
		}

		return p
	}

	name, typ, hasType := cutTopLevel(seg, ':')
	name = strings.TrimSpace(name)

	if strings.HasSuffix(name, "?") {
		p.Optional = true
		name = strings.TrimSpace(strings.TrimSuffix(name, "?"))
	}

	// TypeScript parameter properties: `private readonly id: string`
	if fields := strings.Fields(name); len(fields) > 1 {
		name = fields[len(fields)-1]
	}

	if m.IsIdentifier(name) {
		p.Name = name
	}

	if hasType {
		p.Type = strings.TrimSpace(typ)
	}

	return p
}

// patternNames lists the identifiers bound by the inside of an object or
// array destructuring pattern.
func patternNames(inner string) []string {
	var names []string

	for _, el := range splitTopLevel(inner, ',') {
		el = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(el), "..."))
		if el == "" {
			continue
		}

		if head, _, ok := cutTopLevel(el, '='); ok {
			el = strings.TrimSpace(head)
		}

		if _, target, ok := cutTopLevel(el, ':'); ok {
			el = strings.TrimSpace(target)
		}

		if el != "" && (el[0] == '{' || el[0] == '[') {
			if end := matchingInString(el, 0); end > 0 {
				names = append(names, patternNames(el[1:end])...)
			}

			continue
		}

		if m.IsIdentifier(el) {
			names = append(names, el)
		}
	}

	return names
}

// splitTopLevel splits s at sep when outside brackets and quotes.
func splitTopLevel(s string, sep byte) []string {
	var parts []string

	start := 0

	walkTopLevel(s, func(i int) bool {
		if s[i] == sep {
			parts = append(parts, s[start:i])
			start = i + 1
		}

		return true
	})

	return append(parts, s[start:])
}

// cutTopLevel cuts s around the first top-level sep. An `=` that is part of
// `=>` is not a separator.
func cutTopLevel(s string, sep byte) (string, string, bool) {
	at := -1

	walkTopLevel(s, func(i int) bool {
		if s[i] != sep {
			return true
		}

		if sep == '=' && i+1 < len(s) && s[i+1] == '>' {
			return true
		}

		at = i

		return false
	})

	if at < 0 {
		return s, "", false
	}

	return s[:at], s[at+1:], true
}

// walkTopLevel calls fn for each byte of s outside brackets and quotes.
func walkTopLevel(s string, fn func(i int) bool) {
	level := 0

	var quote byte

	for i := 0; i < len(s); i++ {
		c := s[i]

		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}

			continue
		}

		switch c {
		case '\'', '"', '`':
			quote = c

			continue
		case '(', '[', '{':
			level++

			continue
		case '<':
			level++

			continue
		case '>':
			if i > 0 && s[i-1] == '=' {
				break
			}

			level--

			continue
		case ')', ']', '}':
			level--

			continue
		}

		if level == 0 && !fn(i) {
			return
		}
	}
}

// matchingInString returns the index closing the bracket at open in s.
func matchingInString(s string, open int) int {
	level := 0
	found := -1

	for i := open; i < len(s) && found < 0; i++ {
		switch s[i] {
		case '(', '[', '{':
			level++
		case ')', ']', '}':
			level--
			if level == 0 {
				found = i
			}
		}
	}

	return found
}
