package types

import (
	"cmp"
	"slices"
)

// sortLines orders lines by subject so the summary is stable across calls.
func sortLines(lines []ScoreLine) {
	slices.SortFunc(lines, func(a, b ScoreLine) int {
		return cmp.Compare(a.Subject, b.Subject)
	})
}
