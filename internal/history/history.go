// Package history owns the per-user conversation state: the ordered message
// transcript and the parallel concern-score series. Both sequences are
// append-only; windowed views are computed at read time and storage retains
// everything.
package history

import (
	"fmt"
	"io"
	"time"
)

// TimestampLayout is the wire format for all persisted timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// RecentWindow is the trailing transcript window considered by analysis.
const RecentWindow = 20

// Message is a single transcript entry. Personality is set only for
// assistant-authored messages (the persona active at authorship) and is
// empty for user messages. Messages are immutable once appended.
type Message struct {
	Text        string `json:"text"`
	IsUser      bool   `json:"is_user"`
	Timestamp   string `json:"timestamp"`
	Personality string `json:"personality,omitempty"`
}

// ScoreEntry is one computed concern score with its computation time. One
// entry is produced per analyzed user message, never per assistant message.
type ScoreEntry struct {
	Timestamp string  `json:"timestamp"`
	Score     float64 `json:"score"`
}

// FormatTimestamp renders t in the persisted layout.
func FormatTimestamp(t time.Time) string {
	return t.Format(TimestampLayout)
}

// ParseTimestamp parses a persisted timestamp string.
func ParseTimestamp(s string) (time.Time, error) {
	return time.Parse(TimestampLayout, s)
}

// Transcript is the in-memory session state for one user identity. It is not
// safe for concurrent use; the turn pipeline guarantees a single writer.
type Transcript struct {
	UserID   string
	Messages []Message
	Scores   []ScoreEntry
}

// NewTranscript returns an empty transcript for the given user identity.
func NewTranscript(userID string) *Transcript {
	return &Transcript{UserID: userID}
}

// AppendUser appends a user-authored message stamped at now.
func (t *Transcript) AppendUser(text string, now time.Time) Message {
	m := Message{Text: text, IsUser: true, Timestamp: FormatTimestamp(now)}
	t.Messages = append(t.Messages, m)
	return m
}

// AppendAssistant appends an assistant message authored by the given persona.
func (t *Transcript) AppendAssistant(text, personality string, now time.Time) Message {
	m := Message{Text: text, Timestamp: FormatTimestamp(now), Personality: personality}
	t.Messages = append(t.Messages, m)
	return m
}

// AppendScore records a computed concern score stamped at now.
func (t *Transcript) AppendScore(score float64, now time.Time) ScoreEntry {
	e := ScoreEntry{Timestamp: FormatTimestamp(now), Score: score}
	t.Scores = append(t.Scores, e)
	return e
}

// RecentUserMessages returns the user-authored messages among the last
// RecentWindow transcript entries, oldest first. Earlier messages are ignored
// even when the transcript is longer.
func (t *Transcript) RecentUserMessages() []Message {
	start := len(t.Messages) - RecentWindow
	if start < 0 {
		start = 0
	}
	var out []Message
	for _, m := range t.Messages[start:] {
		if m.IsUser {
			out = append(out, m)
		}
	}
	return out
}

// RecentMessages returns up to limit most recent messages, oldest first.
// It is used to assemble the LLM context window.
func (t *Transcript) RecentMessages(limit int) []Message {
	if limit <= 0 || limit > len(t.Messages) {
		limit = len(t.Messages)
	}
	return t.Messages[len(t.Messages)-limit:]
}

// RecentScores returns up to limit most recent score entries, oldest first.
func (t *Transcript) RecentScores(limit int) []ScoreEntry {
	if limit <= 0 || limit > len(t.Scores) {
		limit = len(t.Scores)
	}
	return t.Scores[len(t.Scores)-limit:]
}

// LatestScore returns the most recent score entry, if any.
func (t *Transcript) LatestScore() (ScoreEntry, bool) {
	if len(t.Scores) == 0 {
		return ScoreEntry{}, false
	}
	return t.Scores[len(t.Scores)-1], true
}

// Export writes the transcript and score series as a plain-text report.
// classify maps each score to its severity label.
func (t *Transcript) Export(w io.Writer, classify func(float64) string) error {
	if _, err := fmt.Fprint(w, "=== AI Companion Chat History ===\n\n"); err != nil {
		return err
	}
	for _, m := range t.Messages {
		speaker := "User"
		if !m.IsUser {
			speaker = fmt.Sprintf("AI (%s)", m.Personality)
		}
		if _, err := fmt.Fprintf(w, "[%s] %s:\n%s\n\n", m.Timestamp, speaker, m.Text); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(w, "\n=== Emotional Health Indicators ===\n"); err != nil {
		return err
	}
	for _, s := range t.Scores {
		if _, err := fmt.Fprintf(w, "[%s] Score: %.2f - %s\n", s.Timestamp, s.Score, classify(s.Score)); err != nil {
			return err
		}
	}
	return nil
}
