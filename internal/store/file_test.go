package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harshbaithub/helio/internal/history"
)

func TestFileStoreLoadMissingUser(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	snap, err := s.Load(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(snap.Messages) != 0 || len(snap.Scores) != 0 {
		t.Fatalf("missing user should load empty, got %+v", snap)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	now := history.FormatTimestamp(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC))
	snap := Snapshot{
		Messages: []history.Message{
			{Text: "hi", IsUser: true, Timestamp: now},
			{Text: "hello", Timestamp: now, Personality: "Friend"},
		},
		Scores: []history.ScoreEntry{{Timestamp: now, Score: 2.5}},
	}
	if err := s.Save(ctx, "alice", snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "alice")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Messages) != 2 || len(got.Scores) != 1 {
		t.Fatalf("round trip lost data: %+v", got)
	}
	if got.Messages[1].Personality != "Friend" {
		t.Fatalf("personality lost: %+v", got.Messages[1])
	}
	if got.Scores[0].Score != 2.5 {
		t.Fatalf("score = %.2f, want 2.5", got.Scores[0].Score)
	}

	// The on-disk document keeps the stable field names.
	raw, err := os.ReadFile(filepath.Join(dir, "alice_chat_history.json"))
	if err != nil {
		t.Fatalf("read document: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}
	if _, ok := doc["chat_history"]; !ok {
		t.Fatalf("document missing chat_history field: %s", raw)
	}
	if _, ok := doc["depression_scores"]; !ok {
		t.Fatalf("document missing depression_scores field: %s", raw)
	}
}

func TestFileStoreMarkerSurvivesSave(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	shown, err := s.LastResourceShown(ctx, "bob")
	if err != nil {
		t.Fatalf("LastResourceShown() error = %v", err)
	}
	if shown != "" {
		t.Fatalf("marker = %q, want empty for new user", shown)
	}

	stamp := "2025-06-01 12:00:00"
	if err := s.SetLastResourceShown(ctx, "bob", stamp); err != nil {
		t.Fatalf("SetLastResourceShown() error = %v", err)
	}

	// A later snapshot save must not clobber the marker.
	snap := Snapshot{Messages: []history.Message{{Text: "later", IsUser: true, Timestamp: stamp}}}
	if err := s.Save(ctx, "bob", snap); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	shown, err = s.LastResourceShown(ctx, "bob")
	if err != nil {
		t.Fatalf("LastResourceShown() error = %v", err)
	}
	if shown != stamp {
		t.Fatalf("marker = %q, want %q", shown, stamp)
	}
}

func TestSanitizeUserID(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"alice", "alice"},
		{"default_user", "default_user"},
		{"a b/c", "a%20b%2Fc"},
		{"../../etc/passwd", "..%2F..%2Fetc%2Fpasswd"},
		{"50% done", "50%25%20done"},
		{"", "default_user"},
	}
	for _, tt := range tests {
		if got := sanitizeUserID(tt.in); got != tt.want {
			t.Errorf("sanitizeUserID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSanitizeUserIDIsInjective(t *testing.T) {
	// Identities that differ only in disallowed characters must not collapse
	// onto the same file.
	pairs := [][2]string{
		{"a b", "a_b"},
		{"a/b", "a_b"},
		{"a%20b", "a b"},
	}
	for _, p := range pairs {
		if sanitizeUserID(p[0]) == sanitizeUserID(p[1]) {
			t.Errorf("sanitizeUserID collapses %q and %q to %q", p[0], p[1], sanitizeUserID(p[0]))
		}
	}
}

func TestFileStoreKeepsSimilarUsersApart(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error = %v", err)
	}
	ctx := context.Background()

	stamp := "2025-06-01 12:00:00"
	if err := s.Save(ctx, "a b", Snapshot{
		Messages: []history.Message{{Text: "first", IsUser: true, Timestamp: stamp}},
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if err := s.Save(ctx, "a_b", Snapshot{
		Messages: []history.Message{{Text: "second", IsUser: true, Timestamp: stamp}},
	}); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := s.Load(ctx, "a b")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(got.Messages) != 1 || got.Messages[0].Text != "first" {
		t.Fatalf("user namespaces merged: %+v", got)
	}
}
