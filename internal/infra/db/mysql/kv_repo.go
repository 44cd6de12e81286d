package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// KVRepository stores each backend key as one row of esg_kv_items.
type KVRepository struct {
	db *sql.DB
}

func NewKVRepository(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

const upsertItem = `
INSERT INTO esg_kv_items (item_key, item_value, updated_at)
VALUES (?,?,?)
ON DUPLICATE KEY UPDATE
  item_value=VALUES(item_value), updated_at=VALUES(updated_at);
`

func (r *KVRepository) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	const q = `SELECT item_value FROM esg_kv_items WHERE item_key=? LIMIT 1;`
	var v []byte
	if err := r.db.QueryRowContext(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return v, true, nil
}

func (r *KVRepository) SetItem(ctx context.Context, key string, value []byte) error {
	_, err := r.db.ExecContext(ctx, upsertItem, key, value, time.Now().UTC())
	return err
}

// SetItems writes all entries in one transaction.
func (r *KVRepository) SetItems(ctx context.Context, items map[string][]byte) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertItem)
	if err != nil {
		return fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC()
	for k, v := range items {
		if _, err := stmt.ExecContext(ctx, k, v, now); err != nil {
			return fmt.Errorf("upsert %s: %w", k, err)
		}
	}
	return tx.Commit()
}

func (r *KVRepository) RemoveItem(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM esg_kv_items WHERE item_key=?;`, key)
	return err
}

// Keys lists keys starting with prefix. SUBSTRING keeps the comparison
// case-sensitive under the binary-safe key column, unlike LIKE.
func (r *KVRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	const q = `
SELECT item_key FROM esg_kv_items
WHERE BINARY SUBSTRING(item_key, 1, ?) = BINARY ?
ORDER BY item_key;`
	rows, err := r.db.QueryContext(ctx, q, len(prefix), prefix)
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

func (r *KVRepository) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return r.db.PingContext(ctx)
}

func (r *KVRepository) Close() error { return r.db.Close() }
