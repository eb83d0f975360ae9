package domain

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// previewContext is the number of unchanged lines kept around each change.
const previewContext = 2

// Preview renders a line diff of before and after for dry runs. Unchanged
// stretches longer than the context are collapsed into `@@` markers.
func Preview(before, after string) string {
	if before == after {
		return ""
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	type row struct {
		op   diffmatchpatch.Operation
		text string
		line int // line number in after (or before for deletions)
	}

	var rows []row

	oldLine, newLine := 1, 1

	for _, d := range diffs {
		for _, text := range splitKeep(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffEqual:
				rows = append(rows, row{d.Type, text, newLine})
				oldLine++
				newLine++
			case diffmatchpatch.DiffInsert:
				rows = append(rows, row{d.Type, text, newLine})
				newLine++
			case diffmatchpatch.DiffDelete:
				rows = append(rows, row{d.Type, text, oldLine})
				oldLine++
			}
		}
	}

	keep := make([]bool, len(rows))

	for i, r := range rows {
		if r.op == diffmatchpatch.DiffEqual {
			continue
		}

		for j := max(0, i-previewContext); j <= min(len(rows)-1, i+previewContext); j++ {
			keep[j] = true
		}
	}

	var out strings.Builder

	gap := true

	for i, r := range rows {
		if !keep[i] {
			gap = true

			continue
		}

		if gap {
			fmt.Fprintf(&out, "@@ line %d @@\n", r.line)

			gap = false
		}

		switch r.op {
		case diffmatchpatch.DiffInsert:
			out.WriteString("+")
		case diffmatchpatch.DiffDelete:
			out.WriteString("-")
		default:
			out.WriteString(" ")
		}

		out.WriteString(r.text)
		out.WriteString("\n")
	}

	return out.String()
}

// splitKeep splits diff text into lines without the trailing empty element.
func splitKeep(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return lines
}
