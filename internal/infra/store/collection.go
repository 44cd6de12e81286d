// Package store implements the entity repository on top of any key/value
// Backend. Each collection lives under a single key as a JSON array, and
// every mutation rewrites the whole array.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/bryanwahyu/esg-responder/internal/application"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// Store is safe for concurrent use within one process. Writers from other
// processes sharing the same backend race with last-write-wins per collection.
type Store struct {
	backend entities.Backend
	clock   application.Clock
	newID   func() string
	log     *logger.Logger

	// mu serializes read-modify-write cycles
	mu sync.Mutex
}

type Option func(*Store)

func WithClock(c application.Clock) Option { return func(s *Store) { s.clock = c } }

func WithIDGenerator(f func() string) Option { return func(s *Store) { s.newID = f } }

func WithLogger(l *logger.Logger) Option { return func(s *Store) { s.log = l } }

func New(backend entities.Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		clock:   application.SystemClock{},
		newID:   func() string { return uuid.New().String() },
		log:     logger.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Exclusive runs fn while holding the write lock, so no collection or
// singleton mutation from this process interleaves with it. fn must not call
// back into the Store.
func (s *Store) Exclusive(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn()
}

// Backend exposes the underlying key/value space (backup, health checks).
func (s *Store) Backend() entities.Backend { return s.backend }

var _ entities.Repository = (*Store)(nil)

func (s *Store) List(ctx context.Context, c entities.Collection) ([]entities.Record, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownCollection, c)
	}
	records, err := s.read(ctx, c)
	if err != nil {
		if errors.Is(err, entities.ErrCorruptCollection) {
			s.log.Warn("collection unreadable, returning empty list", "collection", c)
			return []entities.Record{}, nil
		}
		return nil, err
	}
	return records, nil
}

func (s *Store) Filter(ctx context.Context, c entities.Collection, criteria map[string]any) ([]entities.Record, error) {
	norm, err := entities.Normalize(criteria)
	if err != nil {
		return nil, fmt.Errorf("normalize criteria: %w", err)
	}
	all, err := s.List(ctx, c)
	if err != nil {
		return nil, err
	}
	out := make([]entities.Record, 0, len(all))
	for _, r := range all {
		if entities.Matches(r, norm) {
			out = append(out, r)
		}
	}
	return out, nil
}

// Get returns nil, nil when the id is absent.
func (s *Store) Get(ctx context.Context, c entities.Collection, id string) (entities.Record, error) {
	all, err := s.List(ctx, c)
	if err != nil {
		return nil, err
	}
	for _, r := range all {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, nil
}

func (s *Store) Create(ctx context.Context, c entities.Collection, data entities.Record) (entities.Record, error) {
	out, err := s.BulkCreate(ctx, c, []entities.Record{data})
	if err != nil {
		return nil, err
	}
	return out[0], nil
}

// BulkCreate stores every record with a single backend write.
func (s *Store) BulkCreate(ctx context.Context, c entities.Collection, data []entities.Record) ([]entities.Record, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownCollection, c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx, c)
	if err != nil {
		return nil, err
	}
	now := s.timestamp()
	created := make([]entities.Record, 0, len(data))
	for _, d := range data {
		r, err := normalizeRecord(d)
		if err != nil {
			return nil, fmt.Errorf("encode record: %w", err)
		}
		r[entities.FieldID] = s.newID()
		r[entities.FieldCreatedDate] = now
		r[entities.FieldUpdatedDate] = now
		created = append(created, r)
	}
	if len(created) == 0 {
		return created, nil
	}
	if err := s.write(ctx, c, append(all, created...)); err != nil {
		return nil, err
	}
	return created, nil
}

// Update merges partial onto the stored record. Unknown ids fail with
// ErrNotFound; id and created_date never change.
func (s *Store) Update(ctx context.Context, c entities.Collection, id string, partial entities.Record) (entities.Record, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownCollection, c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx, c)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i, r := range all {
		if r.ID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("%s %q: %w", c, id, entities.ErrNotFound)
	}
	patch, err := normalizeRecord(partial)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}
	merged := entities.Merge(all[idx], patch)
	merged[entities.FieldUpdatedDate] = s.timestamp()
	all[idx] = merged
	if err := s.write(ctx, c, all); err != nil {
		return nil, err
	}
	return merged, nil
}

// Delete is idempotent: a missing id is not an error.
func (s *Store) Delete(ctx context.Context, c entities.Collection, id string) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s", entities.ErrUnknownCollection, c)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.read(ctx, c)
	if err != nil {
		return err
	}
	kept := all[:0]
	for _, r := range all {
		if r.ID() != id {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(all) {
		return nil
	}
	return s.write(ctx, c, kept)
}

func (s *Store) read(ctx context.Context, c entities.Collection) ([]entities.Record, error) {
	raw, ok, err := s.backend.GetItem(ctx, c.Key())
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c, err)
	}
	if !ok || len(raw) == 0 {
		return []entities.Record{}, nil
	}
	records, err := DecodeCollection(raw)
	if err != nil {
		return nil, entities.ErrCorruptCollection
	}
	return records, nil
}

func (s *Store) write(ctx context.Context, c entities.Collection, records []entities.Record) error {
	raw, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode %s: %w", c, err)
	}
	if err := s.backend.SetItem(ctx, c.Key(), raw); err != nil {
		return fmt.Errorf("write %s: %w", c, err)
	}
	return nil
}

func (s *Store) timestamp() string {
	return s.clock.Now().UTC().Format(time.RFC3339Nano)
}

// DecodeCollection parses a serialized collection. null decodes to empty.
func DecodeCollection(raw []byte) ([]entities.Record, error) {
	var records []entities.Record
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []entities.Record{}
	}
	for i, r := range records {
		if r == nil {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
	}
	return records, nil
}

// normalizeRecord round-trips through JSON so the returned record is
// exactly what a later read will decode.
func normalizeRecord(r entities.Record) (entities.Record, error) {
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	var out entities.Record
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = entities.Record{}
	}
	return out, nil
}
