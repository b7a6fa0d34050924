// Package engine runs the conversation turn pipeline: user message in,
// assistant reply out, with concern analysis, score history, classification,
// the resource-suppression gate, and persistence in between.
package engine

import (
	"context"
	"io"
	"log"
	"time"

	"github.com/harshbaithub/helio/internal/brain"
	"github.com/harshbaithub/helio/internal/history"
	"github.com/harshbaithub/helio/internal/observability"
	"github.com/harshbaithub/helio/internal/resources"
	"github.com/harshbaithub/helio/internal/scoring"
	"github.com/harshbaithub/helio/internal/session"
	"github.com/harshbaithub/helio/internal/store"
	"github.com/harshbaithub/helio/internal/voice"
)

// fallbackReply is returned when the LLM provider fails; the turn still
// completes and the failure is only logged.
const fallbackReply = "I'm having trouble understanding. Could you rephrase that?"

// TurnResult is everything a client needs to render one completed turn.
type TurnResult struct {
	TurnID  string
	Reply   string
	Persona string

	// Analysis outcome. Scored is false when the analysis window was empty
	// and no score was recorded.
	Scored  bool
	Score   float64
	Label   string
	Percent float64
	Color   string

	// ShowResources is set when the suppression gate fired; Contacts holds
	// the crisis-support list to display.
	ShowResources bool
	Contacts      []resources.Contact

	Audio       []byte
	AudioFormat string
}

// ScoreUpdate is the analysis outcome alone, used at session bootstrap.
type ScoreUpdate struct {
	Scored        bool
	Score         float64
	Label         string
	Percent       float64
	Color         string
	ShowResources bool
	Contacts      []resources.Contact
}

// Engine owns the in-memory transcripts and drives the turn pipeline. Turn
// processing is single-writer per user identity by construction; the engine
// only guards its transcript map.
type Engine struct {
	store   store.Store
	brain   brain.Provider
	speech  voice.SpeechProvider
	gate    *resources.Gate
	metrics *observability.Metrics
	now     func() time.Time

	transcripts *transcriptCache
}

func New(st store.Store, br brain.Provider, sp voice.SpeechProvider, gate *resources.Gate, metrics *observability.Metrics) *Engine {
	if gate == nil {
		gate = resources.NewGate(0)
	}
	return &Engine{
		store:       st,
		brain:       br,
		speech:      sp,
		gate:        gate,
		metrics:     metrics,
		now:         time.Now,
		transcripts: newTranscriptCache(),
	}
}

// SetClock overrides the engine clock. Tests use it to pin timestamps.
func (e *Engine) SetClock(now func() time.Time) { e.now = now }

// transcript returns the cached transcript for userID, loading persisted
// state on first access. A read failure degrades to empty history.
func (e *Engine) transcript(ctx context.Context, userID string) *history.Transcript {
	if t, ok := e.transcripts.get(userID); ok {
		return t
	}
	t := history.NewTranscript(userID)
	snap, err := e.store.Load(ctx, userID)
	if err != nil {
		log.Printf("engine: load history for %q failed, starting empty: %v", userID, err)
	} else {
		t.Messages = snap.Messages
		t.Scores = snap.Scores
	}
	return e.transcripts.put(userID, t)
}

// Bootstrap loads a user's persisted history and, when prior conversation
// exists, runs an initial analysis so the client meter starts populated.
func (e *Engine) Bootstrap(ctx context.Context, sess *session.Session) ScoreUpdate {
	t := e.transcript(ctx, sess.UserID)
	if len(t.Messages) == 0 {
		return ScoreUpdate{}
	}
	update := e.analyze(ctx, sess, t)
	if update.Scored {
		e.persist(ctx, t)
	}
	return update
}

// ProcessTurn runs one full conversation turn. Core failures (analysis
// persistence, TTS, LLM) degrade gracefully; the returned error is non-nil
// only when the turn could not produce a result at all.
func (e *Engine) ProcessTurn(ctx context.Context, sess *session.Session, turnID, userText string) (TurnResult, error) {
	t := e.transcript(ctx, sess.UserID)

	t.AppendUser(userText, e.now())
	update := e.analyze(ctx, sess, t)
	e.persist(ctx, t)

	reply, err := e.brain.Reply(ctx, brain.Request{
		Persona:  sess.Persona,
		Language: sess.Language,
		Context:  t.RecentMessages(brain.ContextWindow),
		UserText: userText,
	})
	if err != nil {
		log.Printf("engine: llm reply failed: %v", err)
		if e.metrics != nil {
			e.metrics.ProviderErrors.WithLabelValues("llm", "reply_failed").Inc()
		}
		reply = fallbackReply
	}

	t.AppendAssistant(reply, sess.Persona, e.now())
	e.persist(ctx, t)

	if e.metrics != nil {
		e.metrics.Turns.WithLabelValues(sess.Language.String()).Inc()
	}

	res := TurnResult{
		TurnID:        turnID,
		Reply:         reply,
		Persona:       sess.Persona,
		Scored:        update.Scored,
		Score:         update.Score,
		Label:         update.Label,
		Percent:       update.Percent,
		Color:         update.Color,
		ShowResources: update.ShowResources,
		Contacts:      update.Contacts,
	}

	if e.speech != nil {
		audio, format, err := e.speech.Synthesize(ctx, reply, sess.VoiceID, "")
		if err != nil {
			log.Printf("engine: tts synthesis failed: %v", err)
			if e.metrics != nil {
				e.metrics.ProviderErrors.WithLabelValues("tts", "synthesize_failed").Inc()
			}
		} else {
			res.Audio = audio
			res.AudioFormat = format
		}
	}

	return res, nil
}

// analyze scores the trailing user-message window, appends the score entry,
// classifies it, and runs the suppression gate. An empty window skips the
// whole analysis: no entry is appended and Scored stays false.
func (e *Engine) analyze(ctx context.Context, sess *session.Session, t *history.Transcript) ScoreUpdate {
	window := t.RecentUserMessages()
	score, ok := scoring.ComputeScore(window, sess.Language)
	if !ok {
		return ScoreUpdate{}
	}

	now := e.now()
	t.AppendScore(score, now)
	if e.metrics != nil {
		e.metrics.ConcernScore.Observe(score)
	}

	update := ScoreUpdate{
		Scored:  true,
		Score:   score,
		Label:   scoring.Classify(score),
		Percent: scoring.MeterPercent(score),
		Color:   scoring.MeterColor(score),
	}

	lastShown, err := e.store.LastResourceShown(ctx, t.UserID)
	if err != nil {
		log.Printf("engine: read resource marker for %q failed, treating as never shown: %v", t.UserID, err)
		lastShown = ""
	}
	if e.gate.ShouldShow(score, lastShown, now) {
		// Persist the marker before surfacing the notification so a crash
		// mid-display cannot re-trigger it on the next analysis.
		if err := e.store.SetLastResourceShown(ctx, t.UserID, history.FormatTimestamp(now)); err != nil {
			log.Printf("engine: persist resource marker for %q failed: %v", t.UserID, err)
			if e.metrics != nil {
				e.metrics.PersistenceFailures.WithLabelValues("resource_marker").Inc()
			}
		}
		update.ShowResources = true
		update.Contacts = resources.Contacts
		if e.metrics != nil {
			e.metrics.ResourceNotifications.Inc()
		}
	}

	return update
}

// persist writes the full snapshot. Failures are logged and contained; the
// in-memory transcript stays authoritative for the rest of the session.
func (e *Engine) persist(ctx context.Context, t *history.Transcript) {
	err := e.store.Save(ctx, t.UserID, store.Snapshot{Messages: t.Messages, Scores: t.Scores})
	if err != nil {
		log.Printf("engine: save history for %q failed: %v", t.UserID, err)
		if e.metrics != nil {
			e.metrics.PersistenceFailures.WithLabelValues("save").Inc()
		}
	}
}

// History returns the full persisted transcript for a user, oldest first.
func (e *Engine) History(ctx context.Context, userID string) []history.Message {
	t := e.transcript(ctx, userID)
	out := make([]history.Message, len(t.Messages))
	copy(out, t.Messages)
	return out
}

// Scores returns up to limit most recent score entries, oldest first.
// limit <= 0 returns everything.
func (e *Engine) Scores(ctx context.Context, userID string, limit int) []history.ScoreEntry {
	t := e.transcript(ctx, userID)
	recent := t.RecentScores(limit)
	out := make([]history.ScoreEntry, len(recent))
	copy(out, recent)
	return out
}

// Export writes the user's transcript and score series as plain text.
func (e *Engine) Export(ctx context.Context, userID string, w io.Writer) error {
	return e.transcript(ctx, userID).Export(w, scoring.Classify)
}
