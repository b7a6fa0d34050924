package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/harshbaithub/helio/internal/history"
	_ "modernc.org/sqlite"
)

// SQLiteStore persists conversation state in a single-file SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (or creates) the database at dbPath with WAL enabled
// and initializes the schema.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS messages (
		user_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		text TEXT NOT NULL,
		is_user INTEGER NOT NULL,
		ts TEXT NOT NULL,
		personality TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (user_id, seq)
	);
	CREATE TABLE IF NOT EXISTS scores (
		user_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		ts TEXT NOT NULL,
		score REAL NOT NULL,
		PRIMARY KEY (user_id, seq)
	);
	CREATE TABLE IF NOT EXISTS resource_markers (
		user_id TEXT PRIMARY KEY,
		last_shown TEXT NOT NULL
	);
	`
	if _, err := s.db.Exec(query); err != nil {
		return err
	}
	return nil
}

func (s *SQLiteStore) Load(ctx context.Context, userID string) (Snapshot, error) {
	var snap Snapshot

	rows, err := s.db.QueryContext(ctx,
		`SELECT text, is_user, ts, personality FROM messages WHERE user_id = ? ORDER BY seq`, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m history.Message
		var isUser int
		if err := rows.Scan(&m.Text, &isUser, &m.Timestamp, &m.Personality); err != nil {
			return Snapshot{}, fmt.Errorf("scan message: %w", err)
		}
		m.IsUser = isUser != 0
		snap.Messages = append(snap.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate messages: %w", err)
	}

	scoreRows, err := s.db.QueryContext(ctx,
		`SELECT ts, score FROM scores WHERE user_id = ? ORDER BY seq`, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query scores: %w", err)
	}
	defer scoreRows.Close()
	for scoreRows.Next() {
		var e history.ScoreEntry
		if err := scoreRows.Scan(&e.Timestamp, &e.Score); err != nil {
			return Snapshot{}, fmt.Errorf("scan score: %w", err)
		}
		snap.Scores = append(snap.Scores, e)
	}
	if err := scoreRows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate scores: %w", err)
	}

	return snap, nil
}

func (s *SQLiteStore) Save(ctx context.Context, userID string, snap Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	// Full overwrite: callers hold the complete state.
	if _, err := tx.ExecContext(ctx, `DELETE FROM messages WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM scores WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}

	for i, m := range snap.Messages {
		isUser := 0
		if m.IsUser {
			isUser = 1
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO messages (user_id, seq, text, is_user, ts, personality) VALUES (?, ?, ?, ?, ?, ?)`,
			userID, i, m.Text, isUser, m.Timestamp, m.Personality); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}
	for i, e := range snap.Scores {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scores (user_id, seq, ts, score) VALUES (?, ?, ?, ?)`,
			userID, i, e.Timestamp, e.Score); err != nil {
			return fmt.Errorf("insert score: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LastResourceShown(ctx context.Context, userID string) (string, error) {
	var shown string
	err := s.db.QueryRowContext(ctx,
		`SELECT last_shown FROM resource_markers WHERE user_id = ?`, userID).Scan(&shown)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query resource marker: %w", err)
	}
	return shown, nil
}

func (s *SQLiteStore) SetLastResourceShown(ctx context.Context, userID, shownAt string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO resource_markers (user_id, last_shown) VALUES (?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET last_shown = excluded.last_shown`,
		userID, shownAt)
	if err != nil {
		return fmt.Errorf("upsert resource marker: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
