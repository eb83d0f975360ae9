package domain

import "strings"

// StripLines removes every line whose trimmed text starts with one of
// prefixes and returns the number of removed lines.
func StripLines(source string, prefixes []string) (string, int) {
	if len(prefixes) == 0 {
		return source, 0
	}

	lines := strings.Split(source, "\n")
	kept := lines[:0:0]
	removed := 0

	for _, line := range lines {
		if hasAnyPrefix(strings.TrimSpace(line), prefixes) {
			removed++

			continue
		}

		kept = append(kept, line)
	}

	if removed == 0 {
		return source, 0
	}

	return strings.Join(kept, "\n"), removed
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if p != "" && strings.HasPrefix(s, p) {
			return true
		}
	}

	return false
}
