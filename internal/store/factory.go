package store

import (
	"context"
	"strings"
)

// New picks a backend from configuration: Postgres when a database URL is
// set, SQLite when a database path is set, otherwise per-user JSON files
// under dataDir.
func New(ctx context.Context, databaseURL, sqlitePath, dataDir string) (Store, error) {
	if strings.TrimSpace(databaseURL) != "" {
		return NewPostgresStore(ctx, databaseURL)
	}
	if strings.TrimSpace(sqlitePath) != "" {
		return NewSQLiteStore(sqlitePath)
	}
	return NewFileStore(dataDir)
}
