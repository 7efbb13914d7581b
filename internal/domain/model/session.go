// Package model contains domain models passed between layers.
package model

import (
	"time"
)

// Role identifies the author of a transcript entry.
type Role string

// Transcript roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TranscriptEntry is one turn of the conversation as displayed to the user.
type TranscriptEntry struct {
	Role Role      // user or assistant
	Text string    // message body
	At   time.Time // time the entry was appended
}

// ScoreRecord maps a lower-cased subject name to its latest score.
type ScoreRecord map[string]int

// Merge copies every score from update into r. A subject present in both
// keeps the value from update.
func (r ScoreRecord) Merge(update map[string]int) {
	for subject, score := range update {
		r[subject] = score
	}
}

// Clone returns an independent copy of r.
func (r ScoreRecord) Clone() ScoreRecord {
	out := make(ScoreRecord, len(r))
	for subject, score := range r {
		out[subject] = score
	}
	return out
}

// Session is the per-user conversation context. It is not safe for
// concurrent use; the session store serializes access.
type Session struct {
	ID         string
	Scores     ScoreRecord
	Transcript []TranscriptEntry
	Profile    Profile
	Created    time.Time
	Updated    time.Time
}

// NewSession creates an empty session with default profile values.
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:         id,
		Scores:     ScoreRecord{},
		Transcript: []TranscriptEntry{},
		Profile:    DefaultProfile(),
		Created:    now,
		Updated:    now,
	}
}

// MergeScores records newly parsed scores into the session.
func (s *Session) MergeScores(update map[string]int) {
	if len(update) == 0 {
		return
	}
	s.Scores.Merge(update)
	s.Updated = time.Now()
}

// Append adds a transcript entry. Entries are never rewritten or removed.
func (s *Session) Append(role Role, text string) {
	now := time.Now()
	s.Transcript = append(s.Transcript, TranscriptEntry{Role: role, Text: text, At: now})
	s.Updated = now
}

// Reset clears scores and transcript, as a page reload would. The id and
// profile survive.
func (s *Session) Reset() {
	s.Scores = ScoreRecord{}
	s.Transcript = []TranscriptEntry{}
	s.Updated = time.Now()
}

// Clone returns a deep copy safe to hand outside the store.
func (s *Session) Clone() *Session {
	transcript := make([]TranscriptEntry, len(s.Transcript))
	copy(transcript, s.Transcript)
	return &Session{
		ID:         s.ID,
		Scores:     s.Scores.Clone(),
		Transcript: transcript,
		Profile:    s.Profile.Clone(),
		Created:    s.Created,
		Updated:    s.Updated,
	}
}
