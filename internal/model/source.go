// Package model defines the data structures shared by the patch engine,
// the adapters and the CLI.
package model

// Path represents a file system path.
type Path string

// Param is one declared parameter of a located function.
type Param struct {
	// Name is the bound identifier. For destructuring patterns it is empty
	// and Bound lists every identifier the pattern introduces.
	Name     string
	Bound    []string
	Type     string
	Optional bool
	Rest     bool
}

// Names returns every identifier this parameter binds.
func (p Param) Names() []string {
	if p.Name != "" {
		return []string{p.Name}
	}

	return p.Bound
}

// FunctionSpan is the textual extent of one top-level function declaration.
// Offsets are byte offsets into the source text the span was located in and
// become stale as soon as that text is modified before SignatureEnd.
type FunctionSpan struct {
	Name           string
	Async          bool
	SignatureStart int // offset of the `export` keyword
	SignatureEnd   int // offset just past the closing `)` of the parameter list
	BodyStart      int // offset of the body's opening `{`
	BodyOpenOffset int // offset just past the canonical `try {`, -1 when the body has no such sequence
	BodyEnd        int // offset just past the body's matching `}`, -1 when unterminated
	TryIndent      string
	Params         []Param
}

// HasCanonicalBody reports whether the body opens with the `try {` sequence.
func (s FunctionSpan) HasCanonicalBody() bool {
	return s.BodyOpenOffset >= 0
}

// Complete reports whether the body's closing brace was found.
func (s FunctionSpan) Complete() bool {
	return s.BodyEnd > s.BodyStart
}

// ParamNames lists every identifier declared by the parameter list, in order.
func (s FunctionSpan) ParamNames() []string {
	var names []string

	for _, p := range s.Params {
		names = append(names, p.Names()...)
	}

	return names
}

// Declares reports whether name is bound by the parameter list.
func (s FunctionSpan) Declares(name string) bool {
	for _, n := range s.ParamNames() {
		if n == name {
			return true
		}
	}

	return false
}

// DuplicateGroup holds every complete definition sharing one name, ordered
// by offset. The first span is the one that survives deduplication.
type DuplicateGroup struct {
	Name  string
	Spans []FunctionSpan
}
