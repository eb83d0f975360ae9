package domain

import (
	"fmt"
	"strings"

	"github.com/mouse-blink/guardpatch/internal/domain/lexer"
	m "github.com/mouse-blink/guardpatch/internal/model"
)

const exportKeyword = "export"

// Locate finds the first top-level exported function named name. Matches
// inside comments, strings, template literals and nested blocks are never
// considered. A name that is declared but whose body lacks the canonical
// `try {` opening is still returned; callers check HasCanonicalBody.
func Locate(source, name string) (m.FunctionSpan, error) {
	if !m.IsIdentifier(name) {
		return m.FunctionSpan{}, fmt.Errorf("%w: function name %q is not an identifier", ErrInvalidSpec, name)
	}

	return locateIn(lexer.Scan(source), name)
}

// LocateAll returns every top-level exported function declaration in offset
// order, including repeated names.
func LocateAll(source string) []m.FunctionSpan {
	lx := lexer.Scan(source)

	var spans []m.FunctionSpan

	forEachDecl(lx, func(span m.FunctionSpan) bool {
		spans = append(spans, span)

		return true
	})

	return spans
}

func locateIn(lx *lexer.Map, name string) (m.FunctionSpan, error) {
	var (
		found m.FunctionSpan
		ok    bool
	)

	forEachDecl(lx, func(span m.FunctionSpan) bool {
		if span.Name != name {
			return true
		}

		found, ok = span, true

		return false
	})

	if !ok {
		return m.FunctionSpan{}, fmt.Errorf("%w: %s", ErrFunctionNotFound, name)
	}

	return found, nil
}

// forEachDecl calls fn for each declaration until fn returns false.
func forEachDecl(lx *lexer.Map, fn func(m.FunctionSpan) bool) {
	src := lx.Src()

	for from := 0; from < len(src); {
		idx := strings.Index(src[from:], exportKeyword)
		if idx < 0 {
			return
		}

		at := from + idx
		from = at + len(exportKeyword)

		if !lx.WordAt(at, exportKeyword) || lx.Depth(at) != 0 {
			continue
		}

		span, ok := declAt(lx, at)
		if !ok {
			continue
		}

		if !fn(span) {
			return
		}

		if span.Complete() {
			from = span.BodyEnd
		}
	}
}

// declAt parses `export [default] [async] function[*] NAME[<T>](PARAMS)` at i.
func declAt(lx *lexer.Map, i int) (m.FunctionSpan, bool) {
	src := lx.Src()
	span := m.FunctionSpan{SignatureStart: i, BodyStart: -1, BodyOpenOffset: -1, BodyEnd: -1}

	j := lx.SkipTrivia(i + len(exportKeyword))
	if lx.WordAt(j, "default") {
		j = lx.SkipTrivia(j + len("default"))
	}

	if lx.WordAt(j, "async") {
		span.Async = true
		j = lx.SkipTrivia(j + len("async"))
	}

	if !lx.WordAt(j, "function") {
		return span, false
	}

	j = lx.SkipTrivia(j + len("function"))
	if j < len(src) && src[j] == '*' {
		j = lx.SkipTrivia(j + 1)
	}

	name, k := lx.Ident(j)
	if name == "" {
		return span, false
	}

	span.Name = name

	k = lx.SkipTrivia(k)
	if k < len(src) && src[k] == '<' {
		closeGeneric := lx.Matching(k)
		if closeGeneric < 0 {
			return span, false
		}

		k = lx.SkipTrivia(closeGeneric + 1)
	}

	if k >= len(src) || src[k] != '(' || !lx.IsCode(k) {
		return span, false
	}

	closeParams := lx.Matching(k)
	if closeParams < 0 {
		return span, false
	}

	span.Params = parseParams(lx, k+1, closeParams)
	span.SignatureEnd = closeParams + 1

	body := findBodyOpen(lx, span.SignatureEnd)
	if body < 0 {
		return span, false // overload signature or ambient declaration
	}

	span.BodyStart = body
	if end := lx.Matching(body); end >= 0 {
		span.BodyEnd = end + 1
	}

	span.BodyOpenOffset, span.TryIndent = canonicalTry(lx, body)

	return span, true
}

// findBodyOpen skips an optional return type annotation and returns the
// offset of the body's `{`, or -1.
func findBodyOpen(lx *lexer.Map, from int) int {
	src := lx.Src()

	k := lx.SkipTrivia(from)
	if k >= len(src) {
		return -1
	}

	if src[k] == '{' {
		return k
	}

	if src[k] != ':' {
		return -1
	}

	nest := 0
	expectType := true

	for p := k + 1; p < len(src); p++ {
		if !lx.IsCode(p) || isSpace(src[p]) {
			continue
		}

		switch c := src[p]; c {
		case '<', '(', '[':
			nest++
			expectType = true
		case '>':
			if src[p-1] == '=' {
				expectType = true

				continue
			}

			nest--
			expectType = false
		case ')', ']':
			nest--
			expectType = false
		case '{':
			if nest == 0 && !expectType {
				return p
			}

			closeType := lx.Matching(p)
			if closeType < 0 {
				return -1
			}

			p = closeType
			expectType = false
		case '|', '&', ',', ':':
			expectType = true
		case ';':
			if nest <= 0 {
				return -1
			}
		default:
			expectType = false
		}
	}

	return -1
}

// canonicalTry returns the offset just past `try {` and the indent of the
// `try` line when the body opens with an optional guard clause followed by
// a try block.
func canonicalTry(lx *lexer.Map, body int) (int, string) {
	src := lx.Src()

	p := lx.SkipTrivia(body + 1)
	if lx.WordAt(p, "if") {
		p = skipGuardClause(lx, p)
		if p < 0 {
			return -1, ""
		}

		p = lx.SkipTrivia(p)
	}

	if !lx.WordAt(p, "try") {
		return -1, ""
	}

	q := lx.SkipTrivia(p + len("try"))
	if q >= len(src) || src[q] != '{' || !lx.IsCode(q) {
		return -1, ""
	}

	return q + 1, lineIndent(src, p)
}

// skipGuardClause returns the offset after a single `if (...) stmt` or
// `if (...) { ... }` precondition starting at p, or -1.
func skipGuardClause(lx *lexer.Map, p int) int {
	src := lx.Src()

	q := lx.SkipTrivia(p + len("if"))
	if q >= len(src) || src[q] != '(' {
		return -1
	}

	cond := lx.Matching(q)
	if cond < 0 {
		return -1
	}

	r := lx.SkipTrivia(cond + 1)
	if r >= len(src) {
		return -1
	}

	if src[r] == '{' {
		end := lx.Matching(r)
		if end < 0 {
			return -1
		}

		return end + 1
	}

	if !lx.WordAt(r, "return") && !lx.WordAt(r, "throw") {
		return -1
	}

	level := 0

	for s := r; s < len(src); s++ {
		if !lx.IsCode(s) {
			continue
		}

		switch src[s] {
		case '(', '[', '{':
			level++
		case ')', ']', '}':
			level--
			if level < 0 {
				return -1
			}
		case ';':
			if level == 0 {
				return s + 1
			}
		case '\n':
			if level == 0 {
				return s
			}
		}
	}

	return -1
}

// lineIndent returns the leading whitespace of the line containing p when
// nothing but whitespace precedes p on that line.
func lineIndent(src string, p int) string {
	start := strings.LastIndexByte(src[:p], '\n') + 1

	prefix := src[start:p]
	if strings.TrimLeft(prefix, " \t") != "" {
		return ""
	}

	return prefix
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
