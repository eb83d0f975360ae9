// Package lexer classifies every byte of a TypeScript/JavaScript source as
// code, comment, string, template literal or regex literal, and tracks the
// brace depth of code. It is deliberately not a parser: it only answers the
// questions the patch engine needs to anchor matches at real declarations.
package lexer

import "strings"

// Class is the lexical category of a byte.
type Class uint8

// Byte classes.
const (
	Code Class = iota
	LineComment
	BlockComment
	String
	Template
	Regex
)

// keywords after which a `/` starts a regex literal rather than a division.
var regexKeywords = map[string]struct{}{
	"return": {}, "typeof": {}, "case": {}, "do": {}, "else": {}, "in": {}, "of": {},
	"new": {}, "delete": {}, "void": {}, "throw": {}, "yield": {}, "await": {},
}

const regexPrecursors = "(,=:[!&|?{};+-*%<>~^"

// Map is the classification of one source text.
type Map struct {
	src   string
	class []Class
	depth []int32
}

// Scan classifies src in a single pass.
func Scan(src string) *Map {
	n := len(src)
	m := &Map{src: src, class: make([]Class, n), depth: make([]int32, n+1)}

	var (
		depth  int
		tmpl   []int // brace depth at each open `${`
		inTmpl bool
		prev   = -1 // last significant code byte
	)

	mark := func(from, to int, c Class) {
		for k := from; k < to && k < n; k++ {
			m.class[k] = c
			m.depth[k] = int32(depth)
		}
	}

	i := 0
	for i < n {
		if inTmpl {
			j := scanTemplateChunk(src, i)
			switch {
			case j >= n:
				mark(i, n, Template)

				i = n
			case src[j] == '`':
				mark(i, j+1, Template)

				i, prev, inTmpl = j+1, j, false
			default: // `${`
				mark(i, j+2, Template)

				tmpl = append(tmpl, depth)
				i, prev, inTmpl = j+2, j+1, false
			}

			continue
		}

		c := src[i]
		m.depth[i] = int32(depth)

		switch {
		case c == '/' && i+1 < n && src[i+1] == '/':
			j := strings.IndexByte(src[i:], '\n')
			if j < 0 {
				j = n - i
			}

			mark(i, i+j, LineComment)
			i += j

			continue
		case c == '/' && i+1 < n && src[i+1] == '*':
			end := n
			if j := strings.Index(src[i+2:], "*/"); j >= 0 {
				end = i + 2 + j + 2
			}

			mark(i, end, BlockComment)
			i = end

			continue
		case c == '\'' || c == '"':
			j := scanString(src, i)
			mark(i, j, String)

			i, prev = j, j-1

			continue
		case c == '`':
			mark(i, i+1, Template)

			i, inTmpl = i+1, true

			continue
		case c == '/' && regexAllowed(src, prev):
			j := scanRegex(src, i)
			mark(i, j, Regex)

			i, prev = j, j-1

			continue
		case c == '{':
			depth++
		case c == '}':
			if len(tmpl) > 0 && depth == tmpl[len(tmpl)-1] {
				tmpl = tmpl[:len(tmpl)-1]
				m.class[i] = Template

				i, inTmpl = i+1, true

				continue
			}

			if depth > 0 {
				depth--
			}
		}

		m.class[i] = Code
		if !isSpace(c) {
			prev = i
		}

		i++
	}

	m.depth[n] = int32(depth)

	return m
}

// Src returns the classified text.
func (m *Map) Src() string {
	return m.src
}

// Len returns the length of the classified text.
func (m *Map) Len() int {
	return len(m.src)
}

// ClassAt returns the class of the byte at i.
func (m *Map) ClassAt(i int) Class {
	return m.class[i]
}

// IsCode reports whether the byte at i is outside comments and literals.
func (m *Map) IsCode(i int) bool {
	return i >= 0 && i < len(m.src) && m.class[i] == Code
}

// Depth returns the code brace depth in effect at i. For a `{` it is the
// depth outside the brace; for a `}` it is the depth inside.
func (m *Map) Depth(i int) int {
	if i < 0 {
		return 0
	}

	if i > len(m.src) {
		i = len(m.src)
	}

	return int(m.depth[i])
}

// SkipTrivia returns the first offset at or after i that is code and not
// whitespace.
func (m *Map) SkipTrivia(i int) int {
	for i < len(m.src) {
		if m.class[i] == LineComment || m.class[i] == BlockComment || isSpace(m.src[i]) {
			i++

			continue
		}

		return i
	}

	return i
}

// WordAt reports whether word starts at i as a complete code token.
func (m *Map) WordAt(i int, word string) bool {
	end := i + len(word)
	if i < 0 || end > len(m.src) || m.src[i:end] != word || !m.IsCode(i) {
		return false
	}

	if i > 0 && IsIdentByte(m.src[i-1]) {
		return false
	}

	return end == len(m.src) || !IsIdentByte(m.src[end])
}

// Ident returns the identifier starting at i and the offset after it.
func (m *Map) Ident(i int) (string, int) {
	j := i
	for j < len(m.src) && IsIdentByte(m.src[j]) && m.IsCode(j) {
		j++
	}

	if j == i || isDigit(m.src[i]) {
		return "", i
	}

	return m.src[i:j], j
}

// Matching returns the offset of the bracket closing the one at open, or -1.
// Only code brackets of the same kind are counted.
func (m *Map) Matching(open int) int {
	if !m.IsCode(open) {
		return -1
	}

	var closer byte

	switch m.src[open] {
	case '(':
		closer = ')'
	case '[':
		closer = ']'
	case '{':
		closer = '}'
	case '<':
		closer = '>'
	default:
		return -1
	}

	opener := m.src[open]
	level := 0

	for i := open; i < len(m.src); i++ {
		if m.class[i] != Code {
			continue
		}

		switch m.src[i] {
		case opener:
			level++
		case closer:
			if closer == '>' && i > 0 && m.src[i-1] == '=' {
				continue // arrow
			}

			level--
			if level == 0 {
				return i
			}
		}
	}

	return -1
}

// IsIdentByte reports whether b may appear in an identifier.
func IsIdentByte(b byte) bool {
	return b == '_' || b == '$' || isDigit(b) || (b|0x20 >= 'a' && b|0x20 <= 'z')
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f' || b == '\v'
}

// scanTemplateChunk returns the offset of the closing backtick or `${`.
func scanTemplateChunk(src string, i int) int {
	for i < len(src) {
		switch {
		case src[i] == '\\':
			i += 2

			continue
		case src[i] == '`':
			return i
		case src[i] == '$' && i+1 < len(src) && src[i+1] == '{':
			return i
		}

		i++
	}

	return len(src)
}

// scanString returns the offset after the string literal opening at i.
// Unterminated literals end at the newline.
func scanString(src string, i int) int {
	quote := src[i]

	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case quote:
			return j + 1
		case '\n':
			return j
		}
	}

	return len(src)
}

// scanRegex returns the offset after the regex literal (and flags) at i.
func scanRegex(src string, i int) int {
	inClass := false

	for j := i + 1; j < len(src); j++ {
		switch src[j] {
		case '\\':
			j++
		case '\n':
			return j
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if inClass {
				continue
			}

			j++
			for j < len(src) && IsIdentByte(src[j]) {
				j++
			}

			return j
		}
	}

	return len(src)
}

// regexAllowed decides whether a `/` following prev opens a regex literal.
func regexAllowed(src string, prev int) bool {
	if prev < 0 {
		return true
	}

	c := src[prev]
	if strings.IndexByte(regexPrecursors, c) >= 0 {
		return true
	}

	if !IsIdentByte(c) {
		return false
	}

	start := prev
	for start > 0 && IsIdentByte(src[start-1]) {
		start--
	}

	_, ok := regexKeywords[src[start:prev+1]]

	return ok
}
