// Package backup exports and restores everything the application keeps in
// its backend as one JSON document.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/bryanwahyu/esg-responder/internal/application"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// Version of the document layout written by Export.
const Version = 1

// ErrInvalidBackup is returned by Import before anything is written.
var ErrInvalidBackup = errors.New("invalid backup")

// Document is the export format.
type Document struct {
	Version    int                        `json:"version"`
	ExportedAt time.Time                  `json:"exported_at"`
	Data       map[string]json.RawMessage `json:"data"`
}

// Summary reports how many keys an operation touched.
type Summary struct {
	Keys    int `json:"keys"`
	Records int `json:"records"`
}

// Serializer runs fn with every other writer of the backend held off.
type Serializer interface {
	Exclusive(fn func() error) error
}

type unserialized struct{}

func (unserialized) Exclusive(fn func() error) error { return fn() }

type Service struct {
	Backend entities.Backend
	Writes  Serializer
	Clock   application.Clock
	Log     *logger.Logger
}

// NewService builds the service. writes is usually the entity store sharing
// backend; nil runs restores and resets without coordination.
func NewService(backend entities.Backend, writes Serializer, clock application.Clock, log *logger.Logger) *Service {
	if writes == nil {
		writes = unserialized{}
	}
	if clock == nil {
		clock = application.SystemClock{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{Backend: backend, Writes: writes, Clock: clock, Log: log}
}

// Export dumps every namespaced key. Values that are not valid JSON are skipped.
func (s *Service) Export(ctx context.Context) (Document, error) {
	keys, err := s.Backend.Keys(ctx, entities.KeyPrefix)
	if err != nil {
		return Document{}, fmt.Errorf("list keys: %w", err)
	}
	doc := Document{Version: Version, ExportedAt: s.Clock.Now().UTC(), Data: make(map[string]json.RawMessage, len(keys))}
	for _, k := range keys {
		v, ok, err := s.Backend.GetItem(ctx, k)
		if err != nil {
			return Document{}, fmt.Errorf("read %s: %w", k, err)
		}
		if !ok {
			continue
		}
		if !json.Valid(v) {
			s.Log.Warn("skipping unreadable key in export", "key", k)
			continue
		}
		doc.Data[k] = json.RawMessage(v)
	}
	return doc, nil
}

// Import validates the whole document, then writes every key in one batch.
// Keys not present in the document are left as they are.
func (s *Service) Import(ctx context.Context, raw []byte) (Summary, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(raw))
	if err := dec.Decode(&doc); err != nil {
		return Summary{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	if doc.Version != Version {
		return Summary{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidBackup, doc.Version)
	}
	if len(doc.Data) == 0 {
		return Summary{}, fmt.Errorf("%w: no data", ErrInvalidBackup)
	}

	collections := map[string]bool{}
	for _, c := range entities.Collections() {
		collections[c.Key()] = true
	}
	singletons := map[string]bool{
		entities.KeyCompanyProfile: true,
		entities.KeyUser:           true,
		entities.KeySettings:       true,
	}

	items := make(map[string][]byte, len(doc.Data))
	var sum Summary
	for key, value := range doc.Data {
		switch {
		case collections[key]:
			n, err := validateCollection(value)
			if err != nil {
				return Summary{}, fmt.Errorf("%w: %s: %v", ErrInvalidBackup, key, err)
			}
			sum.Records += n
		case singletons[key]:
			var obj map[string]any
			if err := json.Unmarshal(value, &obj); err != nil || obj == nil {
				return Summary{}, fmt.Errorf("%w: %s must be an object", ErrInvalidBackup, key)
			}
		default:
			return Summary{}, fmt.Errorf("%w: unknown key %s", ErrInvalidBackup, key)
		}
		items[key] = []byte(value)
	}
	err := s.Writes.Exclusive(func() error {
		return s.Backend.SetItems(ctx, items)
	})
	if err != nil {
		return Summary{}, fmt.Errorf("restore: %w", err)
	}
	sum.Keys = len(items)
	s.Log.Info("backup restored", "keys", sum.Keys, "records", sum.Records)
	return sum, nil
}

// Reset removes every namespaced key.
func (s *Service) Reset(ctx context.Context) (Summary, error) {
	var keys []string
	err := s.Writes.Exclusive(func() error {
		var err error
		if keys, err = s.Backend.Keys(ctx, entities.KeyPrefix); err != nil {
			return fmt.Errorf("list keys: %w", err)
		}
		for _, k := range keys {
			if err := s.Backend.RemoveItem(ctx, k); err != nil {
				return fmt.Errorf("remove %s: %w", k, err)
			}
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	s.Log.Warn("all data removed", "keys", len(keys))
	return Summary{Keys: len(keys)}, nil
}

// validateCollection requires an array of objects that each carry a string id.
func validateCollection(raw json.RawMessage) (int, error) {
	var records []map[string]any
	if err := json.Unmarshal(raw, &records); err != nil {
		return 0, errors.New("must be an array of objects")
	}
	for i, r := range records {
		if r == nil {
			return 0, fmt.Errorf("record %d is not an object", i)
		}
		id, ok := r[entities.FieldID].(string)
		if !ok || id == "" {
			return 0, fmt.Errorf("record %d has no id", i)
		}
	}
	return len(records), nil
}
