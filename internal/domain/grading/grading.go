// Package grading turns a set of subject scores into a letter grade.
package grading

// Letter is a letter grade.
type Letter string

// Letter grades, best first.
const (
	A Letter = "A"
	B Letter = "B"
	C Letter = "C"
	D Letter = "D"
	F Letter = "F"
)

// threshold is the inclusive lower bound of an average for a letter.
type threshold struct {
	min    float64
	letter Letter
}

// thresholds are ordered highest first; the first match wins.
var thresholds = []threshold{
	{min: 90, letter: A},
	{min: 80, letter: B},
	{min: 70, letter: C},
	{min: 60, letter: D},
}

// Result is a computed grade.
type Result struct {
	Letter  Letter
	Average float64
}

// Calculate averages scores and maps the mean to a letter grade. It
// reports false when scores is empty; callers must not treat that as a
// zero average.
func Calculate(scores map[string]int) (Result, bool) {
	if len(scores) == 0 {
		return Result{}, false
	}
	// float64 sum so saturated scores cannot overflow.
	var sum float64
	for _, s := range scores {
		sum += float64(s)
	}
	avg := sum / float64(len(scores))
	return Result{Letter: LetterFor(avg), Average: avg}, true
}

// LetterFor classifies an average.
func LetterFor(avg float64) Letter {
	for _, t := range thresholds {
		if avg >= t.min {
			return t.letter
		}
	}
	return F
}
