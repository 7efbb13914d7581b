// Package chat runs one conversational turn against a session.
package chat

import (
	"fmt"

	"github.com/okian/gradebot/internal/domain/grading"
	"github.com/okian/gradebot/internal/domain/intent"
	"github.com/okian/gradebot/internal/domain/model"
	"github.com/okian/gradebot/internal/domain/scores"
)

// Canned replies.
const (
	GreetingText = "Hello! I'm your Student Grade Predictor chatbot. " +
		"Share scores like 'math: 85 science: 90' and I'll predict your grade!"
	NoScoresText = "You haven't given me any scores yet. Provide something like 'math: 85'."
	HelpText     = "I predict grades based on the scores you give me. " +
		"Try: 'math: 80 english: 90', then say 'predict my grade'."
	ExitText     = "Goodbye! Come back any time."
	FallbackText = "Hmm, I didn't understand that. You can give me scores like 'biology: 78', " +
		"ask for 'predict my grade', or say 'help'!"
	WelcomeText = "Welcome to the Student Grade Predictor Chatbot!"
)

// Reply is the outcome of one turn.
type Reply struct {
	Intent   intent.Intent
	Text     string
	Recorded []scores.Pair   // scores parsed from this turn, provide_scores only
	Grade    *grading.Result // set when a prediction was made
}

// Turn records input in the transcript, answers it and records the answer.
func Turn(sess *model.Session, input string) Reply {
	sess.Append(model.RoleUser, input)
	reply := Respond(sess, input)
	sess.Append(model.RoleAssistant, reply.Text)
	return reply
}

// Respond classifies input and produces the reply. For provide_scores it
// merges the parsed scores into sess. It never touches the transcript.
func Respond(sess *model.Session, input string) Reply {
	in := intent.Classify(input)
	reply := Reply{Intent: in}

	switch in {
	case intent.ProvideScores:
		pairs := scores.Pairs(input)
		sess.MergeScores(scores.Extract(input))
		reply.Recorded = pairs
		reply.Text = fmt.Sprintf("Got it! I've recorded your scores: %s. Say 'predict my grade' when you're ready.",
			scores.Format(pairs))
	case intent.Greeting:
		reply.Text = GreetingText
	case intent.Predict:
		res, ok := grading.Calculate(sess.Scores)
		if !ok {
			reply.Text = NoScoresText
			break
		}
		reply.Grade = &res
		reply.Text = PredictionText(res)
	case intent.Help:
		reply.Text = HelpText
	case intent.Exit:
		reply.Text = ExitText
	default:
		reply.Text = FallbackText
	}
	return reply
}

// PredictionText renders a computed grade.
func PredictionText(res grading.Result) string {
	return fmt.Sprintf("Your predicted grade is **%s** with an average of **%.1f%%**. Keep going!", res.Letter, res.Average)
}
