package entities

import (
	"context"
	"fmt"

	domain "github.com/bryanwahyu/esg-responder/internal/domain/entities"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// DeleteGuard may veto deleting a record of one collection.
type DeleteGuard func(ctx context.Context, id string) error

// WriteGuard rewrites or rejects payloads bound for one collection before
// they reach the repository. A nil func lets that kind of write through.
type WriteGuard struct {
	Create func(data domain.Record) (domain.Record, error)
	Update func(partial domain.Record) (domain.Record, error)
}

// Service exposes generic CRUD over the public collections.
// Service is safe for concurrent use.
type Service struct {
	Repo   domain.Repository
	Log    *logger.Logger
	guards map[domain.Collection]DeleteGuard
	writes map[domain.Collection]WriteGuard
}

func NewService(repo domain.Repository, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{
		Repo:   repo,
		Log:    log,
		guards: map[domain.Collection]DeleteGuard{},
		writes: map[domain.Collection]WriteGuard{},
	}
}

// GuardDelete registers a veto for deletes in c. Call before serving.
func (s *Service) GuardDelete(c domain.Collection, g DeleteGuard) {
	s.guards[c] = g
}

// GuardWrite registers payload rules for creates and updates in c. Call before serving.
func (s *Service) GuardWrite(c domain.Collection, g WriteGuard) {
	s.writes[c] = g
}

func (s *Service) prepareCreate(c domain.Collection, data domain.Record) (domain.Record, error) {
	if g := s.writes[c]; g.Create != nil {
		return g.Create(data)
	}
	return data, nil
}

// public rejects unknown collections and the internal blob collection,
// which is only reachable through the files service.
func public(c domain.Collection) error {
	if !c.Valid() {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCollection, c)
	}
	if c == domain.UploadedFile {
		return fmt.Errorf("%w: %s is managed through the files api", pkgerrors.ErrInvalidArgument, c)
	}
	return nil
}

func (s *Service) List(ctx context.Context, c domain.Collection) ([]domain.Record, error) {
	if err := public(c); err != nil {
		return nil, err
	}
	return s.Repo.List(ctx, c)
}

func (s *Service) Filter(ctx context.Context, c domain.Collection, criteria map[string]any) ([]domain.Record, error) {
	if err := public(c); err != nil {
		return nil, err
	}
	return s.Repo.Filter(ctx, c, criteria)
}

// Get fails with ErrNotFound when the id is absent.
func (s *Service) Get(ctx context.Context, c domain.Collection, id string) (domain.Record, error) {
	if err := public(c); err != nil {
		return nil, err
	}
	r, err := s.Repo.Get(ctx, c, id)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, fmt.Errorf("%s %q: %w", c, id, domain.ErrNotFound)
	}
	return r, nil
}

func (s *Service) Create(ctx context.Context, c domain.Collection, data domain.Record) (domain.Record, error) {
	if err := public(c); err != nil {
		return nil, err
	}
	data, err := s.prepareCreate(c, data)
	if err != nil {
		return nil, err
	}
	r, err := s.Repo.Create(ctx, c, data)
	if err != nil {
		return nil, err
	}
	s.Log.Debug("record created", "collection", c, "id", r.ID())
	return r, nil
}

func (s *Service) BulkCreate(ctx context.Context, c domain.Collection, data []domain.Record) ([]domain.Record, error) {
	if err := public(c); err != nil {
		return nil, err
	}
	prepared := make([]domain.Record, 0, len(data))
	for i, d := range data {
		p, err := s.prepareCreate(c, d)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		prepared = append(prepared, p)
	}
	out, err := s.Repo.BulkCreate(ctx, c, prepared)
	if err != nil {
		return nil, err
	}
	s.Log.Debug("records created", "collection", c, "count", len(out))
	return out, nil
}

func (s *Service) Update(ctx context.Context, c domain.Collection, id string, partial domain.Record) (domain.Record, error) {
	if err := public(c); err != nil {
		return nil, err
	}
	if g := s.writes[c]; g.Update != nil {
		var err error
		if partial, err = g.Update(partial); err != nil {
			return nil, err
		}
	}
	r, err := s.Repo.Update(ctx, c, id, partial)
	if err != nil {
		return nil, err
	}
	s.Log.Debug("record updated", "collection", c, "id", id)
	return r, nil
}

func (s *Service) Delete(ctx context.Context, c domain.Collection, id string) error {
	if err := public(c); err != nil {
		return err
	}
	if g, ok := s.guards[c]; ok {
		if err := g(ctx, id); err != nil {
			return err
		}
	}
	if err := s.Repo.Delete(ctx, c, id); err != nil {
		return err
	}
	s.Log.Debug("record deleted", "collection", c, "id", id)
	return nil
}
