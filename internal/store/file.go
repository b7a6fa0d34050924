package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/harshbaithub/helio/internal/history"
)

// fileDocument is the on-disk JSON layout. Field names are stable across
// versions; files written by older versions without the marker field load
// with an empty marker.
type fileDocument struct {
	Messages  []history.Message    `json:"chat_history"`
	Scores    []history.ScoreEntry `json:"depression_scores"`
	LastShown string               `json:"resources_last_shown,omitempty"`
}

// FileStore keeps one human-inspectable JSON document per user identity under
// a data directory. It is the default backend.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// NewFileStore creates the data directory if needed and returns the store.
func NewFileStore(dir string) (*FileStore, error) {
	if strings.TrimSpace(dir) == "" {
		dir = "chat_history"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(userID string) string {
	return filepath.Join(s.dir, sanitizeUserID(userID)+"_chat_history.json")
}

func (s *FileStore) Load(_ context.Context, userID string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read(userID)
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Messages: doc.Messages, Scores: doc.Scores}, nil
}

func (s *FileStore) Save(_ context.Context, userID string, snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read(userID)
	if err != nil {
		return err
	}
	doc.Messages = snap.Messages
	doc.Scores = snap.Scores
	return s.write(userID, doc)
}

func (s *FileStore) LastResourceShown(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read(userID)
	if err != nil {
		return "", err
	}
	return doc.LastShown, nil
}

func (s *FileStore) SetLastResourceShown(_ context.Context, userID, shownAt string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.read(userID)
	if err != nil {
		return err
	}
	doc.LastShown = shownAt
	return s.write(userID, doc)
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) read(userID string) (fileDocument, error) {
	raw, err := os.ReadFile(s.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return fileDocument{}, nil
	}
	if err != nil {
		return fileDocument{}, fmt.Errorf("read user document: %w", err)
	}
	var doc fileDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return fileDocument{}, fmt.Errorf("decode user document: %w", err)
	}
	return doc, nil
}

func (s *FileStore) write(userID string, doc fileDocument) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode user document: %w", err)
	}
	// Write-then-rename keeps the document readable if the process dies
	// mid-write.
	tmp := s.path(userID) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("write user document: %w", err)
	}
	if err := os.Rename(tmp, s.path(userID)); err != nil {
		return fmt.Errorf("replace user document: %w", err)
	}
	return nil
}

// sanitizeUserID maps a user identity to a filesystem-safe name. Disallowed
// bytes are percent-encoded so distinct identities can never collapse onto
// the same file ('%' itself is always encoded, which keeps the mapping
// injective).
func sanitizeUserID(userID string) string {
	var b strings.Builder
	for i := 0; i < len(userID); i++ {
		c := userID[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_', c == '.':
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "%%%02X", c)
		}
	}
	if b.Len() == 0 {
		return "default_user"
	}
	return b.String()
}
