// Package store persists per-user conversation state: the message transcript,
// the concern-score series, and the resource-notification marker. Three
// backends share one interface; a factory picks the backend from
// configuration.
package store

import (
	"context"

	"github.com/harshbaithub/helio/internal/history"
)

// Snapshot is the complete persisted conversation state for one user.
type Snapshot struct {
	Messages []history.Message    `json:"chat_history"`
	Scores   []history.ScoreEntry `json:"depression_scores"`
}

// Store persists and retrieves per-user conversation state.
//
// Load on an unknown user returns an empty snapshot, not an error. Save is a
// full overwrite of both collections; callers hold the complete up-to-date
// state. The resource marker has its own read/write path so the gate never
// rewrites the collections, but it lives in the same backing store.
type Store interface {
	Load(ctx context.Context, userID string) (Snapshot, error)
	Save(ctx context.Context, userID string, snap Snapshot) error
	LastResourceShown(ctx context.Context, userID string) (string, error)
	SetLastResourceShown(ctx context.Context, userID, shownAt string) error
	Close() error
}
