// Package sqlite is the default single-user backend: one local database file
// holding every collection, much like the browser storage it replaces.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/bryanwahyu/esg-responder/internal/infra/db/migrations"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

type KVRepository struct {
	db *sql.DB
}

// Open creates or opens the database at path and applies migrations.
// Use ":memory:" for a throwaway database.
func Open(ctx context.Context, path string, log *logger.Logger) (*KVRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply pragmas: %w", err)
	}
	if err := migrations.Up(db, migrations.SQLite, log); err != nil {
		db.Close()
		return nil, err
	}
	return &KVRepository{db: db}, nil
}

func applyPragmas(ctx context.Context, db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

const upsertItem = `
INSERT INTO esg_kv_items (item_key, item_value, updated_at)
VALUES (?, ?, ?)
ON CONFLICT(item_key) DO UPDATE SET
  item_value = excluded.item_value,
  updated_at = excluded.updated_at;`

func (r *KVRepository) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := r.db.QueryRowContext(ctx, `SELECT item_value FROM esg_kv_items WHERE item_key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *KVRepository) SetItem(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, upsertItem, key, value, now())
	return err
}

func (r *KVRepository) SetItems(ctx context.Context, items map[string][]byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	ts := now()
	for k, v := range items {
		if _, err := tx.ExecContext(ctx, upsertItem, k, v, ts); err != nil {
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (r *KVRepository) RemoveItem(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM esg_kv_items WHERE item_key = ?`, key)
	return err
}

func (r *KVRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT item_key FROM esg_kv_items WHERE substr(item_key, 1, ?) = ? ORDER BY item_key`,
		len(prefix), prefix)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []string{}
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		out = append(out, k)
	}
	return out, rows.Err()
}

func (r *KVRepository) Ping(ctx context.Context) error { return r.db.PingContext(ctx) }

func (r *KVRepository) Close() error { return r.db.Close() }

func now() string { return time.Now().UTC().Format(time.RFC3339Nano) }
