// Package types contains the read shapes shared by the service and the API.
package types

import (
	"time"

	"github.com/okian/gradebot/internal/domain/chat"
	"github.com/okian/gradebot/internal/domain/grading"
	"github.com/okian/gradebot/internal/domain/model"
	"github.com/okian/gradebot/internal/domain/scores"
)

// Message is one transcript entry.
type Message struct {
	Role string    `json:"role"`
	Text string    `json:"text"`
	At   time.Time `json:"at"`
}

// Grade is a computed prediction.
type Grade struct {
	Letter  string  `json:"letter"`
	Average float64 `json:"average"`
}

// ScoreLine is one subject in the score summary.
type ScoreLine struct {
	Subject string `json:"subject"`
	Score   int    `json:"score"`
}

// Summary mirrors the sidebar "Current Scores" block.
type Summary struct {
	Scores []ScoreLine `json:"scores"`
	Grade  *Grade      `json:"grade,omitempty"`
}

// SessionView is the full state of a session as shown on the page.
type SessionView struct {
	ID         string        `json:"id"`
	Transcript []Message     `json:"transcript"`
	Summary    Summary       `json:"summary"`
	Profile    model.Profile `json:"profile"`
	Created    time.Time     `json:"created"`
	Updated    time.Time     `json:"updated"`
}

// Reply is the answer to one turn.
type Reply struct {
	SessionID string      `json:"session_id"`
	Intent    string      `json:"intent"`
	Text      string      `json:"text"`
	Recorded  []ScoreLine `json:"recorded,omitempty"`
	Grade     *Grade      `json:"grade,omitempty"`
}

// NewSessionView builds the view of sess.
func NewSessionView(sess *model.Session) SessionView {
	transcript := make([]Message, len(sess.Transcript))
	for i, e := range sess.Transcript {
		transcript[i] = Message{Role: string(e.Role), Text: e.Text, At: e.At}
	}
	return SessionView{
		ID:         sess.ID,
		Transcript: transcript,
		Summary:    NewSummary(sess.Scores),
		Profile:    sess.Profile.Clone(),
		Created:    sess.Created,
		Updated:    sess.Updated,
	}
}

// NewSummary lists scores by subject name with the current prediction.
func NewSummary(record model.ScoreRecord) Summary {
	lines := make([]ScoreLine, 0, len(record))
	for subject, score := range record {
		lines = append(lines, ScoreLine{Subject: scores.Capitalize(subject), Score: score})
	}
	sortLines(lines)

	sum := Summary{Scores: lines}
	if res, ok := grading.Calculate(record); ok {
		sum.Grade = newGrade(res)
	}
	return sum
}

// NewReply converts a chat reply.
func NewReply(sessionID string, r chat.Reply) Reply {
	out := Reply{SessionID: sessionID, Intent: string(r.Intent), Text: r.Text}
	for _, p := range r.Recorded {
		out.Recorded = append(out.Recorded, ScoreLine{Subject: p.Subject, Score: p.Score})
	}
	if r.Grade != nil {
		out.Grade = newGrade(*r.Grade)
	}
	return out
}

func newGrade(res grading.Result) *Grade {
	return &Grade{Letter: string(res.Letter), Average: res.Average}
}
