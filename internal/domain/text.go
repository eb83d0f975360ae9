package domain

import "strings"

// replaceRange returns content with [start, end) replaced. Out-of-range
// requests return content unchanged.
func replaceRange(content string, start, end int, replacement string) string {
	if start < 0 || end < start || end > len(content) {
		return content
	}

	var b strings.Builder

	b.Grow(len(content) - (end - start) + len(replacement))
	b.WriteString(content[:start])
	b.WriteString(replacement)
	b.WriteString(content[end:])

	return b.String()
}

// lineStart returns the offset of the first byte of the line containing p.
func lineStart(content string, p int) int {
	return strings.LastIndexByte(content[:p], '\n') + 1
}

// lineOf returns the 0-based line index of offset p.
func lineOf(lineStarts []int, p int) int {
	lo, hi := 0, len(lineStarts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if lineStarts[mid] <= p {
			lo = mid
		} else {
			hi = mid - 1
		}
	}

	return lo
}

func computeLineStarts(content string) []int {
	starts := []int{0}

	for i := 0; i < len(content); i++ {
		if content[i] == '\n' {
			starts = append(starts, i+1)
		}
	}

	return starts
}
