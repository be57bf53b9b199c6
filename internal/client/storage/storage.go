// Package storage is the client's persisted state: a small key-value table
// in a local SQLite database. It stands in for the browser local storage the
// platform UI relies on and holds the session token, persisted cache
// entries, UI preferences and comment drafts.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/spaceshelter/orbitar-sub001/internal/client/storage/migrations"
)

// Repository is the key-value surface the rest of the client uses.
// GetItem returns (nil, nil) for an absent key.
type Repository interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
	DeleteItem(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
	Reset(ctx context.Context, prefixes ...string) error
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the client database at dsn,
// applies migrations and returns a Repository over it.
func InitDatabase(ctx context.Context, dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		return nil, err
	}

	return NewSQLiteRepository(db), nil
}
