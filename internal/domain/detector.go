package domain

import "strings"

// DefaultLookahead is the number of bytes after the insertion point the
// detector inspects. It must exceed the offset of the first marker inside
// the largest rendered guard; Apply re-checks this after every insertion
// and fails with ErrLookaheadTooSmall otherwise.
const DefaultLookahead = 1024

// HasGuard reports whether the window of lookahead bytes after offset
// contains one of the markers. The window never extends past the end of
// source, so callers clamp it to the function body by slicing source.
func HasGuard(source string, offset, lookahead int, markers ...string) bool {
	if offset < 0 || offset > len(source) || lookahead <= 0 {
		return false
	}

	end := min(offset+lookahead, len(source))
	window := source[offset:end]

	for _, marker := range markers {
		if marker != "" && strings.Contains(window, marker) {
			return true
		}
	}

	return false
}
