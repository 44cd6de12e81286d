package readiness

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/esg-responder/internal/application"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/domain/esg"
	domain "github.com/bryanwahyu/esg-responder/internal/domain/readiness"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// Service derives readiness views from stored records. It never writes.
type Service struct {
	Repo   entities.Repository
	Topics domain.TopicMapping
	Clock  application.Clock
	Log    *logger.Logger
}

func NewService(repo entities.Repository, topics domain.TopicMapping, clock application.Clock, log *logger.Logger) *Service {
	if clock == nil {
		clock = application.SystemClock{}
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Service{Repo: repo, Topics: topics, Clock: clock, Log: log}
}

// DocumentView is a document plus its expiry, computed at read time.
type DocumentView struct {
	esg.Document
	Expiry domain.ExpiryStatus `json:"expiry"`
}

// DocumentCounts buckets documents by expiry status.
type DocumentCounts struct {
	Total        int `json:"total"`
	Valid        int `json:"valid"`
	ExpiringSoon int `json:"expiring_soon"`
	Expired      int `json:"expired"`
	NoExpiry     int `json:"no_expiry"`
}

// Dashboard is the overview shown on the home page.
type Dashboard struct {
	Confidence  domain.ConfidenceSummary `json:"confidence"`
	Policies    domain.PolicyStats       `json:"policies"`
	Documents   DocumentCounts           `json:"documents"`
	ActionItems map[string]int           `json:"action_items"`
	Requests    map[string]int           `json:"requests"`
	GeneratedAt time.Time                `json:"generated_at"`
}

// misfit logs stored records whose fields do not match their typed view.
func (s *Service) misfit(c entities.Collection) func(id string, err error) {
	return func(id string, err error) {
		s.Log.Debug("stored record does not fit its type", "collection", c, "id", id, "error", err)
	}
}

type snapshot struct {
	confidence []esg.ConfidenceRecord
	policies   []esg.Policy
	documents  []esg.Document
	actions    []esg.ActionItem
	requests   []esg.CustomerRequest
}

// load reads the collections a dashboard needs concurrently.
func (s *Service) load(ctx context.Context) (*snapshot, error) {
	var snap snapshot
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.Repo.List(ctx, entities.ConfidenceRecord)
		snap.confidence = esg.Decode[esg.ConfidenceRecord](recs, s.misfit(entities.ConfidenceRecord))
		return err
	})
	g.Go(func() error {
		recs, err := s.Repo.List(ctx, entities.Policy)
		snap.policies = esg.Decode[esg.Policy](recs, s.misfit(entities.Policy))
		return err
	})
	g.Go(func() error {
		recs, err := s.Repo.List(ctx, entities.Document)
		snap.documents = esg.Decode[esg.Document](recs, s.misfit(entities.Document))
		return err
	})
	g.Go(func() error {
		recs, err := s.Repo.List(ctx, entities.ActionItem)
		snap.actions = esg.Decode[esg.ActionItem](recs, s.misfit(entities.ActionItem))
		return err
	})
	g.Go(func() error {
		recs, err := s.Repo.List(ctx, entities.CustomerRequest)
		snap.requests = esg.Decode[esg.CustomerRequest](recs, s.misfit(entities.CustomerRequest))
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load readiness data: %w", err)
	}
	return &snap, nil
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	now := s.Clock.Now()
	d := Dashboard{
		Confidence:  domain.Summarize(snap.confidence),
		Policies:    domain.ComputePolicyStats(snap.policies),
		ActionItems: map[string]int{},
		Requests:    map[string]int{},
		GeneratedAt: now.UTC(),
	}
	for _, doc := range snap.documents {
		d.Documents.Total++
		switch domain.DocumentExpiry(doc.ValidUntil, now).Status {
		case domain.ExpiryExpired:
			d.Documents.Expired++
		case domain.ExpiryExpiringSoon:
			d.Documents.ExpiringSoon++
		case domain.ExpiryValid:
			d.Documents.Valid++
		default:
			d.Documents.NoExpiry++
		}
	}
	for _, a := range snap.actions {
		status := a.Status
		if status == "" {
			status = esg.ActionTodo
		}
		d.ActionItems[string(status)]++
	}
	for status, reqs := range domain.PartitionRequests(snap.requests) {
		d.Requests[status] = len(reqs)
	}
	return d, nil
}

// RequestReadiness evaluates one customer request against the tracked data points.
func (s *Service) RequestReadiness(ctx context.Context, requestID string) (domain.RequestReadiness, error) {
	var (
		req     entities.Record
		records []entities.Record
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		req, err = s.Repo.Get(gctx, entities.CustomerRequest, requestID)
		return err
	})
	g.Go(func() (err error) {
		records, err = s.Repo.List(gctx, entities.ConfidenceRecord)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.RequestReadiness{}, err
	}
	if req == nil {
		return domain.RequestReadiness{}, fmt.Errorf("customer request %q: %w", requestID, entities.ErrNotFound)
	}
	cr := esg.Decode[esg.CustomerRequest]([]entities.Record{req}, s.misfit(entities.CustomerRequest))[0]
	return domain.ForRequest(cr.SelectedTopics, s.Topics, esg.Decode[esg.ConfidenceRecord](records, s.misfit(entities.ConfidenceRecord))), nil
}

// ForTopics evaluates an ad hoc topic selection, e.g. while drafting a request.
func (s *Service) ForTopics(ctx context.Context, topics []string) (domain.RequestReadiness, error) {
	records, err := s.Repo.List(ctx, entities.ConfidenceRecord)
	if err != nil {
		return domain.RequestReadiness{}, err
	}
	return domain.ForRequest(topics, s.Topics, esg.Decode[esg.ConfidenceRecord](records, s.misfit(entities.ConfidenceRecord))), nil
}

func (s *Service) Confidence(ctx context.Context) (domain.ConfidenceSummary, error) {
	records, err := s.Repo.List(ctx, entities.ConfidenceRecord)
	if err != nil {
		return domain.ConfidenceSummary{}, err
	}
	return domain.Summarize(esg.Decode[esg.ConfidenceRecord](records, s.misfit(entities.ConfidenceRecord))), nil
}

// Documents lists documents in storage order with their expiry.
func (s *Service) Documents(ctx context.Context) ([]DocumentView, error) {
	recs, err := s.Repo.List(ctx, entities.Document)
	if err != nil {
		return nil, err
	}
	now := s.Clock.Now()
	docs := esg.Decode[esg.Document](recs, s.misfit(entities.Document))
	out := make([]DocumentView, 0, len(docs))
	for _, d := range docs {
		out = append(out, DocumentView{Document: d, Expiry: domain.DocumentExpiry(d.ValidUntil, now)})
	}
	return out, nil
}

func (s *Service) SortedActionItems(ctx context.Context) ([]esg.ActionItem, error) {
	recs, err := s.Repo.List(ctx, entities.ActionItem)
	if err != nil {
		return nil, err
	}
	items := esg.Decode[esg.ActionItem](recs, s.misfit(entities.ActionItem))
	domain.SortActionItems(items)
	return items, nil
}
