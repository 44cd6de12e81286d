package policies

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/domain/esg"
	"github.com/bryanwahyu/esg-responder/internal/domain/readiness"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// ErrSeededPolicy is returned when deleting a policy from the default catalog.
var ErrSeededPolicy = errors.New("seeded policies cannot be deleted")

// Service manages the policy register on top of the Policy collection.
type Service struct {
	Repo     entities.Repository
	Defaults []esg.Policy
	Log      *logger.Logger

	// seedMu keeps concurrent first reads from seeding twice
	seedMu sync.Mutex
}

func NewService(repo entities.Repository, defaults []esg.Policy, log *logger.Logger) *Service {
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{Repo: repo, Defaults: defaults, Log: log}
}

// Seed writes the default catalog when the collection is empty and
// reports how many policies were added.
func (s *Service) Seed(ctx context.Context) (int, error) {
	s.seedMu.Lock()
	defer s.seedMu.Unlock()

	existing, err := s.Repo.List(ctx, entities.Policy)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 || len(s.Defaults) == 0 {
		return 0, nil
	}
	recs := make([]entities.Record, 0, len(s.Defaults))
	for _, p := range s.Defaults {
		p.ID = ""
		p.Origin = esg.OriginSeeded
		r, err := esg.ToRecord(p)
		if err != nil {
			return 0, fmt.Errorf("encode default policy %q: %w", p.Name, err)
		}
		delete(r, entities.FieldID)
		recs = append(recs, r)
	}
	created, err := s.Repo.BulkCreate(ctx, entities.Policy, recs)
	if err != nil {
		return 0, fmt.Errorf("seed policies: %w", err)
	}
	s.Log.Info("default policies seeded", "count", len(created))
	return len(created), nil
}

// List returns every policy sorted by priority then name, seeding the
// defaults on first use.
func (s *Service) List(ctx context.Context) ([]esg.Policy, error) {
	if _, err := s.Seed(ctx); err != nil {
		return nil, err
	}
	recs, err := s.Repo.List(ctx, entities.Policy)
	if err != nil {
		return nil, err
	}
	out := esg.Decode[esg.Policy](recs, func(id string, err error) {
		s.Log.Debug("stored record does not fit its type", "collection", entities.Policy, "id", id, "error", err)
	})
	readiness.SortPolicies(out)
	return out, nil
}

// Create adds a user-defined policy.
func (s *Service) Create(ctx context.Context, data entities.Record) (entities.Record, error) {
	rec, err := s.PrepareCreate(data)
	if err != nil {
		return nil, err
	}
	return s.Repo.Create(ctx, entities.Policy, rec)
}

// PrepareCreate checks a new policy and fills its defaults. Whatever origin
// the caller sends, new policies are custom.
func (s *Service) PrepareCreate(data entities.Record) (entities.Record, error) {
	name, _ := data["name"].(string)
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: name is required", pkgerrors.ErrInvalidArgument)
	}
	rec := data.Clone()
	rec["origin"] = string(esg.OriginCustom)
	if _, ok := rec["status"]; !ok {
		rec["status"] = string(esg.PolicyNotStarted)
	}
	if _, ok := rec["priority"]; !ok {
		rec["priority"] = string(esg.PriorityMedium)
	}
	if _, ok := rec["exists"]; !ok {
		rec["exists"] = false
	}
	return rec, nil
}

// Update merges partial into the policy.
func (s *Service) Update(ctx context.Context, id string, partial entities.Record) (entities.Record, error) {
	patch, _ := s.PrepareUpdate(partial)
	return s.Repo.Update(ctx, entities.Policy, id, patch)
}

// PrepareUpdate drops origin from a patch; it is fixed at creation.
func (s *Service) PrepareUpdate(partial entities.Record) (entities.Record, error) {
	patch := partial.Clone()
	delete(patch, "origin")
	return patch, nil
}

// Delete removes a custom policy. Unknown ids succeed; seeded ones fail
// with ErrSeededPolicy.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.CheckDeletable(ctx, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, entities.Policy, id)
}

// CheckDeletable reports ErrSeededPolicy for catalog policies. Records
// without an origin predate tagging and count as custom.
func (s *Service) CheckDeletable(ctx context.Context, id string) error {
	rec, err := s.Repo.Get(ctx, entities.Policy, id)
	if err != nil || rec == nil {
		return err
	}
	if esg.Origin(rec.String("origin")) == esg.OriginSeeded {
		return fmt.Errorf("policy %q: %w", id, ErrSeededPolicy)
	}
	return nil
}

func (s *Service) Stats(ctx context.Context) (readiness.PolicyStats, error) {
	list, err := s.List(ctx)
	if err != nil {
		return readiness.PolicyStats{}, err
	}
	return readiness.ComputePolicyStats(list), nil
}
