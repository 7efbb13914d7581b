// Package intent classifies a line of user text into a fixed set of intents.
package intent

import (
	"strings"

	"github.com/okian/gradebot/internal/domain/scores"
)

// Intent is the category of a user turn.
type Intent string

// Supported intents.
const (
	ProvideScores Intent = "provide_scores"
	Greeting      Intent = "greeting"
	Predict       Intent = "predict"
	Help          Intent = "help"
	Exit          Intent = "exit"
	Fallback      Intent = "fallback"
)

// All lists every intent in classification priority order.
var All = []Intent{ProvideScores, Greeting, Predict, Help, Exit, Fallback}

var (
	greetingWords = []string{"hello", "hi", "hey"}
	helpWords     = []string{"help", "how", "what can you do"}
	exitWords     = []string{"bye", "exit", "quit"}
)

// Classify returns the intent of text. Rules are checked in order and the
// first match wins; a score pair anywhere in the text beats every keyword.
// Keywords match as plain substrings of the lower-cased text, so "hi"
// also matches inside "this".
func Classify(text string) Intent {
	if len(scores.Pairs(text)) > 0 {
		return ProvideScores
	}

	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, greetingWords):
		return Greeting
	case strings.Contains(lower, "predict") && strings.Contains(lower, "grade"):
		return Predict
	case containsAny(lower, helpWords):
		return Help
	case containsAny(lower, exitWords):
		return Exit
	default:
		return Fallback
	}
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
