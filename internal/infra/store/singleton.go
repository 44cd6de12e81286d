package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
)

// GetSingleton reads a record stored under its own key (company profile,
// user, settings). Absent or unreadable values return nil, nil.
func (s *Store) GetSingleton(ctx context.Context, key string) (entities.Record, error) {
	raw, ok, err := s.backend.GetItem(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if !ok || len(raw) == 0 {
		return nil, nil
	}
	var r entities.Record
	if err := json.Unmarshal(raw, &r); err != nil {
		s.log.Warn("singleton unreadable, treating as absent", "key", key, "error", err)
		return nil, nil
	}
	return r, nil
}

// MergeSingleton merges partial onto the stored value, starting from init()
// when nothing is stored yet, and persists the result.
func (s *Store) MergeSingleton(ctx context.Context, key string, partial entities.Record, init func() entities.Record) (entities.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.GetSingleton(ctx, key)
	if err != nil {
		return nil, err
	}
	if current == nil {
		current = entities.Record{}
		if init != nil {
			current = init()
		}
	}
	patch, err := normalizeRecord(partial)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	merged := current.Clone()
	for k, v := range patch {
		if k == entities.FieldID {
			if _, has := merged[k]; has {
				continue
			}
		}
		merged[k] = v
	}
	merged, err = normalizeRecord(merged)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	raw, err := json.Marshal(merged)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.backend.SetItem(ctx, key, raw); err != nil {
		return nil, fmt.Errorf("write %s: %w", key, err)
	}
	return merged, nil
}

// RemoveSingleton deletes the value under key; absent keys are fine.
func (s *Store) RemoveSingleton(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.backend.RemoveItem(ctx, key)
}
