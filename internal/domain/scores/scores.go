// Package scores extracts subject-score pairs from free text.
package scores

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// pairPattern matches "subject: 85". Whitespace around the colon is optional.
// \w and \d are ASCII-only.
var pairPattern = regexp.MustCompile(`(\w+)\s*:\s*(\d+)`)

// Pair is one extracted subject and its score.
type Pair struct {
	Subject string
	Score   int
}

// Pairs scans text for subject-score pairs. Subjects are lower-cased. A
// subject that appears more than once keeps the position of its first
// occurrence and the value of its last one.
func Pairs(text string) []Pair {
	matches := pairPattern.FindAllStringSubmatch(strings.ToLower(text), -1)
	if len(matches) == 0 {
		return nil
	}

	out := make([]Pair, 0, len(matches))
	index := make(map[string]int, len(matches))
	for _, m := range matches {
		p := Pair{Subject: m[1], Score: parseScore(m[2])}
		if i, ok := index[p.Subject]; ok {
			out[i].Score = p.Score
			continue
		}
		index[p.Subject] = len(out)
		out = append(out, p)
	}
	return out
}

// Extract returns the subject -> score mapping found in text. Text without
// any pair yields an empty, non-nil map.
func Extract(text string) map[string]int {
	pairs := Pairs(text)
	out := make(map[string]int, len(pairs))
	for _, p := range pairs {
		out[p.Subject] = p.Score
	}
	return out
}

// Format renders pairs as "Math: 85, Science: 90".
func Format(pairs []Pair) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = Capitalize(p.Subject) + ": " + strconv.Itoa(p.Score)
	}
	return strings.Join(parts, ", ")
}

// Capitalize upper-cases the first letter of a subject and lower-cases the rest.
func Capitalize(subject string) string {
	if subject == "" {
		return subject
	}
	lower := strings.ToLower(subject)
	r, size := utf8.DecodeRuneInString(lower)
	return string(unicode.ToUpper(r)) + lower[size:]
}

// parseScore converts a digit run. Runs too long for int saturate.
func parseScore(digits string) int {
	n, err := strconv.Atoi(digits)
	if err != nil {
		return math.MaxInt
	}
	return n
}
