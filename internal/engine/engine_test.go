package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/harshbaithub/helio/internal/brain"
	"github.com/harshbaithub/helio/internal/history"
	"github.com/harshbaithub/helio/internal/lexicon"
	"github.com/harshbaithub/helio/internal/resources"
	"github.com/harshbaithub/helio/internal/session"
	"github.com/harshbaithub/helio/internal/store"
)

// fakeStore is an in-memory Store that records its call order so tests can
// assert persistence ordering.
type fakeStore struct {
	snapshots map[string]store.Snapshot
	markers   map[string]string
	calls     []string

	saveErr error
	loadErr error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		snapshots: make(map[string]store.Snapshot),
		markers:   make(map[string]string),
	}
}

func (f *fakeStore) Load(_ context.Context, userID string) (store.Snapshot, error) {
	f.calls = append(f.calls, "load")
	if f.loadErr != nil {
		return store.Snapshot{}, f.loadErr
	}
	return f.snapshots[userID], nil
}

func (f *fakeStore) Save(_ context.Context, userID string, snap store.Snapshot) error {
	f.calls = append(f.calls, "save")
	if f.saveErr != nil {
		return f.saveErr
	}
	f.snapshots[userID] = snap
	return nil
}

func (f *fakeStore) LastResourceShown(_ context.Context, userID string) (string, error) {
	f.calls = append(f.calls, "marker_read")
	return f.markers[userID], nil
}

func (f *fakeStore) SetLastResourceShown(_ context.Context, userID, shownAt string) error {
	f.calls = append(f.calls, "marker_write")
	f.markers[userID] = shownAt
	return nil
}

func (f *fakeStore) Close() error { return nil }

type failingBrain struct{}

func (failingBrain) Reply(context.Context, brain.Request) (string, error) {
	return "", errors.New("provider down")
}

func newTestSession(userID string) *session.Session {
	return &session.Session{
		ID:       "s1",
		UserID:   userID,
		Status:   session.StatusActive,
		Persona:  "Therapist",
		Language: lexicon.English,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestProcessTurnAppendsAndScores(t *testing.T) {
	st := newFakeStore()
	eng := New(st, brain.NewMockProvider("I'm listening."), nil, resources.NewGate(0), nil)
	eng.SetClock(fixedClock(time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)))

	sess := newTestSession("u1")
	res, err := eng.ProcessTurn(context.Background(), sess, "t1", "I feel sad and alone")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}

	if res.Reply != "I'm listening." {
		t.Fatalf("Reply = %q", res.Reply)
	}
	if !res.Scored {
		t.Fatalf("turn was not scored")
	}
	if res.Score != 7.0 {
		t.Fatalf("Score = %.2f, want 7.0", res.Score)
	}
	if res.Label != "Severe concern" {
		t.Fatalf("Label = %q", res.Label)
	}
	if res.Percent != 70 {
		t.Fatalf("Percent = %.1f, want 70", res.Percent)
	}

	snap := st.snapshots["u1"]
	if len(snap.Messages) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(snap.Messages))
	}
	if !snap.Messages[0].IsUser || snap.Messages[1].IsUser {
		t.Fatalf("message roles persisted wrong: %+v", snap.Messages)
	}
	if snap.Messages[1].Personality != "Therapist" {
		t.Fatalf("assistant persona = %q", snap.Messages[1].Personality)
	}
	if len(snap.Scores) != 1 {
		t.Fatalf("persisted %d scores, want 1", len(snap.Scores))
	}
}

func TestProcessTurnNeutralMessageStillScores(t *testing.T) {
	st := newFakeStore()
	eng := New(st, brain.NewMockProvider(), nil, resources.NewGate(0), nil)

	sess := newTestSession("u1")
	res, err := eng.ProcessTurn(context.Background(), sess, "t1", "nice weather today")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	// The window contains one user message, so a zero score is recorded.
	if !res.Scored || res.Score != 0 {
		t.Fatalf("Scored = %v, Score = %.2f; want scored zero", res.Scored, res.Score)
	}
	if res.Label != "Low concern" {
		t.Fatalf("Label = %q", res.Label)
	}
	if res.ShowResources {
		t.Fatalf("resources should not trigger on a zero score")
	}
}

func TestBootstrapEmptyHistorySkipsAnalysis(t *testing.T) {
	st := newFakeStore()
	eng := New(st, brain.NewMockProvider(), nil, resources.NewGate(0), nil)

	update := eng.Bootstrap(context.Background(), newTestSession("fresh"))
	if update.Scored {
		t.Fatalf("Bootstrap scored an empty history")
	}
	for _, c := range st.calls {
		if c == "save" {
			t.Fatalf("Bootstrap persisted state for an empty history: %v", st.calls)
		}
	}
}

func TestBootstrapExistingHistoryScores(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	st := newFakeStore()
	st.snapshots["u1"] = store.Snapshot{
		Messages: []history.Message{
			{Text: "I feel hopeless", IsUser: true, Timestamp: history.FormatTimestamp(now)},
		},
	}

	eng := New(st, brain.NewMockProvider(), nil, resources.NewGate(0), nil)
	eng.SetClock(fixedClock(now))

	update := eng.Bootstrap(context.Background(), newTestSession("u1"))
	if !update.Scored {
		t.Fatalf("Bootstrap did not score existing history")
	}
	if update.Score != 2.0 {
		t.Fatalf("Score = %.2f, want 2.0", update.Score)
	}
	if len(st.snapshots["u1"].Scores) != 1 {
		t.Fatalf("bootstrap score was not persisted")
	}
}

func TestBrainFailureFallsBack(t *testing.T) {
	st := newFakeStore()
	eng := New(st, failingBrain{}, nil, resources.NewGate(0), nil)

	res, err := eng.ProcessTurn(context.Background(), newTestSession("u1"), "t1", "hello")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if res.Reply != "I'm having trouble understanding. Could you rephrase that?" {
		t.Fatalf("Reply = %q, want fallback", res.Reply)
	}
	// The fallback reply is part of the transcript like any other.
	snap := st.snapshots["u1"]
	if len(snap.Messages) != 2 {
		t.Fatalf("persisted %d messages, want 2", len(snap.Messages))
	}
}

func TestResourceAlertPersistsMarkerFirst(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	st := newFakeStore()
	eng := New(st, brain.NewMockProvider(), nil, resources.NewGate(0), nil)
	eng.SetClock(fixedClock(now))

	sess := newTestSession("u1")
	res, err := eng.ProcessTurn(context.Background(), sess, "t1", "I want to end it")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if !res.ShowResources {
		t.Fatalf("high score did not trigger resources: score=%.2f", res.Score)
	}
	if len(res.Contacts) == 0 {
		t.Fatalf("alert carries no contacts")
	}
	if got := st.markers["u1"]; got != history.FormatTimestamp(now) {
		t.Fatalf("marker = %q, want %q", got, history.FormatTimestamp(now))
	}

	// The marker must land before the snapshot save that follows analysis.
	markerAt, saveAt := -1, -1
	for i, c := range st.calls {
		if c == "marker_write" && markerAt == -1 {
			markerAt = i
		}
		if c == "save" && saveAt == -1 {
			saveAt = i
		}
	}
	if markerAt == -1 || saveAt == -1 || markerAt > saveAt {
		t.Fatalf("marker write not ordered before save: %v", st.calls)
	}
}

func TestResourceAlertSuppressedInsideCooldown(t *testing.T) {
	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)
	st := newFakeStore()
	st.markers["u1"] = history.FormatTimestamp(now.Add(-time.Hour))

	eng := New(st, brain.NewMockProvider(), nil, resources.NewGate(0), nil)
	eng.SetClock(fixedClock(now))

	res, err := eng.ProcessTurn(context.Background(), newTestSession("u1"), "t1", "I want to end it")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if res.ShowResources {
		t.Fatalf("alert fired inside cooldown")
	}
	// The score itself is still recorded and classified.
	if !res.Scored || res.Label != "High concern" {
		t.Fatalf("Scored = %v, Label = %q", res.Scored, res.Label)
	}
}

func TestLoadFailureDegradesToEmpty(t *testing.T) {
	st := newFakeStore()
	st.loadErr = errors.New("disk gone")

	eng := New(st, brain.NewMockProvider("still here"), nil, resources.NewGate(0), nil)
	res, err := eng.ProcessTurn(context.Background(), newTestSession("u1"), "t1", "hello")
	if err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}
	if res.Reply != "still here" {
		t.Fatalf("Reply = %q", res.Reply)
	}
}

func TestExportIncludesConversation(t *testing.T) {
	st := newFakeStore()
	eng := New(st, brain.NewMockProvider("take care"), nil, resources.NewGate(0), nil)

	ctx := context.Background()
	if _, err := eng.ProcessTurn(ctx, newTestSession("u1"), "t1", "I feel sad"); err != nil {
		t.Fatalf("ProcessTurn() error = %v", err)
	}

	var b strings.Builder
	if err := eng.Export(ctx, "u1", &b); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out := b.String()
	if !strings.Contains(out, "I feel sad") || !strings.Contains(out, "take care") {
		t.Fatalf("export missing conversation:\n%s", out)
	}
	if !strings.Contains(out, "Moderate concern") {
		t.Fatalf("export missing classification:\n%s", out)
	}
}
