package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/harshbaithub/helio/internal/history"
)

// PostgresStore persists conversation state in PostgreSQL, for deployments
// sharing one database across devices.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := initSchema(ctx, pool); err != nil {
		pool.Close()
		return nil, err
	}
	return &PostgresStore{pool: pool}, nil
}

func initSchema(ctx context.Context, pool *pgxpool.Pool) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS messages (
			user_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			text TEXT NOT NULL,
			is_user BOOLEAN NOT NULL,
			ts TEXT NOT NULL,
			personality TEXT NOT NULL DEFAULT '',
			PRIMARY KEY (user_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS scores (
			user_id TEXT NOT NULL,
			seq INTEGER NOT NULL,
			ts TEXT NOT NULL,
			score DOUBLE PRECISION NOT NULL,
			PRIMARY KEY (user_id, seq)
		);`,
		`CREATE TABLE IF NOT EXISTS resource_markers (
			user_id TEXT PRIMARY KEY,
			last_shown TEXT NOT NULL
		);`,
	}
	for _, stmt := range stmts {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema failed on %q: %w", stmt, err)
		}
	}
	return nil
}

func (s *PostgresStore) Load(ctx context.Context, userID string) (Snapshot, error) {
	var snap Snapshot

	rows, err := s.pool.Query(ctx,
		`SELECT text, is_user, ts, personality FROM messages WHERE user_id=$1 ORDER BY seq`, userID)
	if err != nil {
		return Snapshot{}, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var m history.Message
		if err := rows.Scan(&m.Text, &m.IsUser, &m.Timestamp, &m.Personality); err != nil {
			return Snapshot{}, fmt.Errorf("scan message: %w", err)
		}
		snap.Messages = append(snap.Messages, m)
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("iterate messages: %w", err)
	}

	scoreRows, err := s.pool.Query(ctx,
		`SELECT ts, score FROM scores WHERE user_id=$1 ORDER BY seq`, userID)
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

func (s *PostgresStore) Save(ctx context.Context, userID string, snap Snapshot) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM messages WHERE user_id=$1`, userID); err != nil {
		return fmt.Errorf("clear messages: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM scores WHERE user_id=$1`, userID); err != nil {
		return fmt.Errorf("clear scores: %w", err)
	}

	for i, m := range snap.Messages {
		if _, err := tx.Exec(ctx,
			`INSERT INTO messages (user_id, seq, text, is_user, ts, personality) VALUES ($1, $2, $3, $4, $5, $6)`,
			userID, i, m.Text, m.IsUser, m.Timestamp, m.Personality); err != nil {
			return fmt.Errorf("insert message: %w", err)
		}
	}
	for i, e := range snap.Scores {
		if _, err := tx.Exec(ctx,
			`INSERT INTO scores (user_id, seq, ts, score) VALUES ($1, $2, $3, $4)`,
			userID, i, e.Timestamp, e.Score); err != nil {
			return fmt.Errorf("insert score: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

func (s *PostgresStore) LastResourceShown(ctx context.Context, userID string) (string, error) {
	var shown string
	err := s.pool.QueryRow(ctx,
		`SELECT last_shown FROM resource_markers WHERE user_id=$1`, userID).Scan(&shown)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("query resource marker: %w", err)
	}
	return shown, nil
}

func (s *PostgresStore) SetLastResourceShown(ctx context.Context, userID, shownAt string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO resource_markers (user_id, last_shown) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET last_shown = EXCLUDED.last_shown`,
		userID, shownAt)
	if err != nil {
		return fmt.Errorf("upsert resource marker: %w", err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
