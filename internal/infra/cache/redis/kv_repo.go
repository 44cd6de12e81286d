package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// KVRepository keeps each backend key as a plain redis string.
type KVRepository struct {
	rdb *goredis.Client
}

func New(ctx context.Context, addr, password string, db int) (*KVRepository, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &KVRepository{rdb: rdb}, nil
}

func (r *KVRepository) GetItem(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := r.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (r *KVRepository) SetItem(ctx context.Context, key string, value []byte) error {
	return r.rdb.Set(ctx, key, value, 0).Err()
}

// SetItems runs every SET inside MULTI/EXEC.
func (r *KVRepository) SetItems(ctx context.Context, items map[string][]byte) error {
	_, err := r.rdb.TxPipelined(ctx, func(p goredis.Pipeliner) error {
		for k, v := range items {
			p.Set(ctx, k, v, 0)
		}
		return nil
	})
	return err
}

func (r *KVRepository) RemoveItem(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

func (r *KVRepository) Keys(ctx context.Context, prefix string) ([]string, error) {
	out := []string{}
	iter := r.rdb.Scan(ctx, 0, prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		out = append(out, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(out)
	return out, nil
}

func (r *KVRepository) Ping(ctx context.Context) error { return r.rdb.Ping(ctx).Err() }

func (r *KVRepository) Close() error { return r.rdb.Close() }
