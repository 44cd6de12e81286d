package readiness

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/bryanwahyu/esg-responder/internal/application"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	domain "github.com/bryanwahyu/esg-responder/internal/domain/readiness"
	"github.com/bryanwahyu/esg-responder/internal/infra/store"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

var now = time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

func seed(t *testing.T, st *store.Store, c entities.Collection, recs ...entities.Record) []entities.Record {
	t.Helper()
	out, err := st.BulkCreate(context.Background(), c, recs)
	require.NoError(t, err)
	return out
}

func newService(t *testing.T) (*Service, *store.Store) {
	st := store.New(store.NewMemoryBackend())
	topics := domain.NewTopicMapping([]domain.Topic{
		{Code: "climate", Name: "Climate", DataPoints: []domain.DataPoint{
			{Key: "scope1", Label: "Scope 1", Category: "environmental", Required: true},
			{Key: "scope2", Label: "Scope 2", Category: "environmental", Required: true},
		}},
		{Code: "people", Name: "People", DataPoints: []domain.DataPoint{
			{Key: "headcount", Label: "Headcount", Category: "social"},
		}},
	})
	return NewService(st, topics, application.FixedClock(now), nil), st
}

func TestDashboard(t *testing.T) {
	svc, st := newService(t)
	seed(t, st, entities.ConfidenceRecord,
		entities.Record{"data_point": "scope1", "category": "environmental", "status": "complete", "confidence": "high"},
		entities.Record{"data_point": "scope2", "category": "environmental", "status": "in_progress", "confidence": "low"},
	)
	seed(t, st, entities.Policy,
		entities.Record{"name": "Env", "priority": "high", "exists": true, "status": "approved"},
		entities.Record{"name": "H&S", "priority": "low", "exists": false, "status": "not_started"},
	)
	seed(t, st, entities.Document,
		entities.Record{"filename": "a", "valid_until": "2026-05-01"},
		entities.Record{"filename": "b", "valid_until": "2026-07-01"},
		entities.Record{"filename": "c", "valid_until": "2030-01-01"},
		entities.Record{"filename": "d", "valid_until": "soon"},
	)
	seed(t, st, entities.ActionItem,
		entities.Record{"name": "x", "status": "done"},
		entities.Record{"name": "y"},
	)
	seed(t, st, entities.CustomerRequest,
		entities.Record{"customer_name": "A", "status": "in_progress"},
		entities.Record{"customer_name": "B"},
	)

	d, err := svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, d.Confidence.Overall.Total)
	assert.Equal(t, 1, d.Confidence.Overall.SafeToShare)
	assert.Equal(t, 50, d.Policies.CompletionPercent)
	assert.Equal(t, DocumentCounts{Total: 4, Valid: 1, ExpiringSoon: 1, Expired: 1, NoExpiry: 1}, d.Documents)
	assert.Equal(t, map[string]int{"done": 1, "todo": 1}, d.ActionItems)
	assert.Equal(t, map[string]int{"in_progress": 1, "new": 1}, d.Requests)
	assert.Equal(t, now, d.GeneratedAt)
}

func TestRequestReadiness(t *testing.T) {
	svc, st := newService(t)
	seed(t, st, entities.ConfidenceRecord,
		entities.Record{"data_point": "scope1", "status": "complete", "confidence": "medium"},
		entities.Record{"data_point": "scope2", "status": "complete", "confidence": "low"},
	)
	req := seed(t, st, entities.CustomerRequest, entities.Record{
		"customer_name": "Retailer", "selected_topics": []string{"climate", "people", "oceans"},
	})[0]

	rr, err := svc.RequestReadiness(context.Background(), req.ID())
	require.NoError(t, err)
	keys := func(states []domain.DataPointState) []string {
		out := []string{}
		for _, s := range states {
			out = append(out, s.Key)
		}
		return out
	}
	if diff := cmp.Diff([]string{"scope1"}, keys(rr.Ready)); diff != "" {
		t.Errorf("ready mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []string{"scope2"}, keys(rr.NeedsAttention))
	assert.Equal(t, []string{"headcount"}, keys(rr.NotTracked))
	assert.Equal(t, []string{"oceans"}, rr.UnknownTopics)
	assert.Equal(t, 3, rr.Total)

	_, err = svc.RequestReadiness(context.Background(), "missing")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestDocumentsAndActionItems(t *testing.T) {
	svc, st := newService(t)
	seed(t, st, entities.Document, entities.Record{"filename": "cert.pdf", "valid_until": "2026-06-11"})
	seed(t, st, entities.ActionItem,
		entities.Record{"name": "late", "priority": "low", "due_date": "2026-01-01"},
		entities.Record{"name": "undated", "priority": "high"},
		entities.Record{"name": "soon", "priority": "high", "due_date": "2026-06-05"},
	)

	docs, err := svc.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Equal(t, domain.ExpiryExpiringSoon, docs[0].Expiry.Status)
	require.NotNil(t, docs[0].Expiry.DaysUntil)
	assert.Equal(t, 10, *docs[0].Expiry.DaysUntil)

	items, err := svc.SortedActionItems(context.Background())
	require.NoError(t, err)
	names := []string{}
	for _, it := range items {
		names = append(names, it.Name)
	}
	assert.Equal(t, []string{"soon", "undated", "late"}, names)
}

func TestReadsNeverWrite(t *testing.T) {
	svc, st := newService(t)
	ctx := context.Background()
	seed(t, st, entities.ConfidenceRecord, entities.Record{"data_point": "scope1"})
	before, err := st.List(ctx, entities.ConfidenceRecord)
	require.NoError(t, err)

	_, err = svc.Dashboard(ctx)
	require.NoError(t, err)
	_, err = svc.Confidence(ctx)
	require.NoError(t, err)
	_, err = svc.ForTopics(ctx, []string{"climate"})
	require.NoError(t, err)

	after, err := st.List(ctx, entities.ConfidenceRecord)
	require.NoError(t, err)
	assert.Equal(t, before, after)
	policies, err := st.List(ctx, entities.Policy)
	require.NoError(t, err)
	assert.Empty(t, policies)
}

func TestMisfitRecordsAreLogged(t *testing.T) {
	svc, st := newService(t)
	core, logs := observer.New(zap.DebugLevel)
	svc.Log = &logger.Logger{SugaredLogger: zap.New(core).Sugar()}

	bad := seed(t, st, entities.Document,
		entities.Record{"filename": "ok.pdf", "valid_until": "2030-01-01"},
		entities.Record{"filename": "odd.pdf", "valid_until": 20300101},
	)[1]

	docs, err := svc.Documents(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 2)
	assert.Equal(t, "odd.pdf", docs[1].Filename)
	assert.Equal(t, domain.ExpiryNone, docs[1].Expiry.Status)

	entries := logs.FilterMessage("stored record does not fit its type").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.DebugLevel, entries[0].Level)
	assert.Equal(t, bad.ID(), entries[0].ContextMap()["id"])
}
