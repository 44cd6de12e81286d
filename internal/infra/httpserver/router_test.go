package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appai "github.com/bryanwahyu/esg-responder/internal/application/ai"
	"github.com/bryanwahyu/esg-responder/internal/bootstrap"
	"github.com/bryanwahyu/esg-responder/internal/config"
	domai "github.com/bryanwahyu/esg-responder/internal/domain/ai"
	"github.com/bryanwahyu/esg-responder/internal/infra/store"
	"github.com/bryanwahyu/esg-responder/internal/middleware"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

type fakeEnhancer struct {
	out string
	err error
}

func (f fakeEnhancer) Enhance(context.Context, string) (string, error) { return f.out, f.err }

type testServer struct {
	*httptest.Server
	svc *bootstrap.Services
}

func newTestServer(t *testing.T, mutate func(*config.Config)) *testServer {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Driver = config.DriverMemory
	if mutate != nil {
		mutate(cfg)
	}
	backend := store.NewMemoryBackend()
	svc, err := bootstrap.Build(context.Background(), cfg, backend, logger.NewNop())
	require.NoError(t, err)

	h := NewRouter(svc, Options{
		CORSOrigins: []string{"http://localhost:5173"},
		Health:      map[string]middleware.HealthChecker{"storage": middleware.PingChecker{Target: backend}},
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &testServer{Server: srv, svc: svc}
}

func (s *testServer) do(t *testing.T, method, path string, body any) (*http.Response, []byte) {
	t.Helper()
	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rdr = bytes.NewReader(b)
	}
	req, err := http.NewRequest(method, s.URL+path, rdr)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func decode[T any](t *testing.T, b []byte) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(b, &v), string(b))
	return v
}

func TestHealthEndpoints(t *testing.T) {
	s := newTestServer(t, nil)
	resp, body := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", string(body))

	resp, body = s.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"healthy"`)

	resp, _ = s.do(t, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestEntityCRUD(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodPost, "/v1/entities/ActionItem", map[string]any{
		"name": "Install sub-meters", "priority": "high", "id": "caller-chosen",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	created := decode[map[string]any](t, body)
	id := created["id"].(string)
	assert.NotEqual(t, "caller-chosen", id)
	assert.NotEmpty(t, created["created_date"])

	resp, body = s.do(t, http.MethodGet, "/v1/entities/ActionItem/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, created, decode[map[string]any](t, body))

	resp, body = s.do(t, http.MethodPatch, "/v1/entities/ActionItem/"+id, map[string]any{"status": "done"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[map[string]any](t, body)
	assert.Equal(t, "done", updated["status"])
	assert.Equal(t, created["created_date"], updated["created_date"])

	resp, body = s.do(t, http.MethodPost, "/v1/entities/ActionItem/filter", map[string]any{"status": "done"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]map[string]any](t, body), 1)

	resp, _ = s.do(t, http.MethodDelete, "/v1/entities/ActionItem/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp, _ = s.do(t, http.MethodDelete, "/v1/entities/ActionItem/"+id, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/v1/entities/ActionItem", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `[]`, string(body))
}

func TestEntityErrors(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodGet, "/v1/entities/Spaceship", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, string(body), "unknown collection")

	resp, _ = s.do(t, http.MethodPatch, "/v1/entities/Document/nope", map[string]any{"x": 1})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/v1/entities/Document/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/v1/entities/UploadedFile", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	req, err := http.NewRequest(http.MethodPost, s.URL+"/v1/entities/Document", strings.NewReader("{not json"))
	require.NoError(t, err)
	r, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	r.Body.Close()
	assert.Equal(t, http.StatusBadRequest, r.StatusCode)
}

func TestBulkCreate(t *testing.T) {
	s := newTestServer(t, nil)
	resp, body := s.do(t, http.MethodPost, "/v1/entities/MasterAnswer/bulk", []map[string]any{
		{"question": "Do you have an environmental policy?"},
		{"question": "Scope 1 emissions?"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[[]map[string]any](t, body)
	require.Len(t, out, 2)
	assert.NotEqual(t, out[0]["id"], out[1]["id"])
}

func TestPolicies(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodGet, "/v1/policies", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]map[string]any](t, body)
	require.Len(t, list, 12)
	assert.Equal(t, "high", list[0]["priority"])
	seededID := list[0]["id"].(string)

	resp, body = s.do(t, http.MethodDelete, "/v1/policies/"+seededID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(body))
	resp, _ = s.do(t, http.MethodDelete, "/v1/entities/Policy/"+seededID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// origin cannot be rewritten through the generic route either
	resp, body = s.do(t, http.MethodPatch, "/v1/entities/Policy/"+seededID, map[string]any{"origin": "custom", "notes": "x"})
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	patched := decode[map[string]any](t, body)
	assert.Equal(t, "seeded", patched["origin"])
	assert.Equal(t, "x", patched["notes"])
	resp, _ = s.do(t, http.MethodDelete, "/v1/policies/"+seededID, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	resp, body = s.do(t, http.MethodPost, "/v1/entities/Policy", map[string]any{"name": "Anti-bribery", "origin": "seeded"})
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	minted := decode[map[string]any](t, body)
	assert.Equal(t, "custom", minted["origin"])
	assert.Equal(t, "not_started", minted["status"])
	resp, _ = s.do(t, http.MethodDelete, "/v1/entities/Policy/"+minted["id"].(string), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/v1/entities/Policy/bulk", []map[string]any{{"name": "A", "origin": "seeded"}, {"category": "social"}})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/v1/policies", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, decode[[]map[string]any](t, body), 12)

	resp, body = s.do(t, http.MethodPost, "/v1/policies", map[string]any{"name": "Modern Slavery Statement", "origin": "seeded"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	custom := decode[map[string]any](t, body)
	assert.Equal(t, "custom", custom["origin"])

	resp, body = s.do(t, http.MethodPatch, "/v1/policies/"+seededID, map[string]any{"exists": true, "status": "approved", "origin": "custom"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "seeded", decode[map[string]any](t, body)["origin"])

	resp, body = s.do(t, http.MethodGet, "/v1/policies/stats", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stats := decode[map[string]int](t, body)
	assert.Equal(t, 13, stats["total"])
	assert.Equal(t, 1, stats["exists"])
	assert.Equal(t, 1, stats["high_priority_complete"])

	resp, _ = s.do(t, http.MethodDelete, "/v1/policies/"+custom["id"].(string), nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func upload(t *testing.T, s *testServer, name, contentType string, data []byte) (*http.Response, []byte) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(map[string][]string)
	hdr["Content-Disposition"] = []string{fmt.Sprintf(`form-data; name="file"; filename=%q`, name)}
	hdr["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	resp, err := http.Post(s.URL+"/v1/files", mw.FormDataContentType(), &buf)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, b
}

func TestFileUploadAndResolve(t *testing.T) {
	s := newTestServer(t, nil)
	content := []byte("%PDF-1.4 certificate")

	resp, body := upload(t, s, "iso14001.pdf", "application/pdf", content)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	res := decode[map[string]string](t, body)
	assert.Equal(t, "local://"+res["id"], res["file_url"])

	resp, got := s.do(t, http.MethodGet, "/v1/files/"+res["id"], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, content, got)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))

	resp, body = s.do(t, http.MethodGet, "/v1/files/resolve?url="+res["file_url"], nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(decode[map[string]string](t, body)["url"], "data:application/pdf;base64,"))

	resp, body = s.do(t, http.MethodGet, "/v1/files/resolve?url=https://example.com/a.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "https://example.com/a.pdf", decode[map[string]string](t, body)["url"])

	resp, _ = s.do(t, http.MethodGet, "/v1/files/resolve?url=local://missing", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFileUploadRejections(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) { c.Files.MaxUploadBytes = 16 })

	resp, _ := upload(t, s, "big.pdf", "application/pdf", bytes.Repeat([]byte("x"), 17))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = upload(t, s, "run.exe", "application/x-msdownload", []byte("MZ"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAuthStub(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodGet, "/v1/auth/me", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	me := decode[map[string]any](t, body)
	assert.Equal(t, "user@local", me["email"])
	assert.Equal(t, "admin", me["role"])

	resp, body = s.do(t, http.MethodPatch, "/v1/auth/me", map[string]any{"full_name": "Dana", "id": "hijack"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[map[string]any](t, body)
	assert.Equal(t, "Dana", updated["full_name"])
	assert.Equal(t, me["id"], updated["id"])

	resp, body = s.do(t, http.MethodPost, "/v1/auth/logout", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"redirect":"/"}`, string(body))
}

func TestCompanyProfile(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodGet, "/v1/company", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{}`, string(body))

	resp, _ = s.do(t, http.MethodPut, "/v1/company", map[string]any{"legal_name": "Acme Ltd", "employee_count": 42})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body = s.do(t, http.MethodPut, "/v1/company", map[string]any{"trading_name": "Acme"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"legal_name":"Acme Ltd","employee_count":42,"trading_name":"Acme"}`, string(body))

	resp, _ = s.do(t, http.MethodPut, "/v1/company", map[string]any{"legal_name": " "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReadinessRoutes(t *testing.T) {
	s := newTestServer(t, nil)

	_, body := s.do(t, http.MethodPost, "/v1/entities/CustomerRequest", map[string]any{
		"customer_name": "BigRetail", "selected_topics": []string{"climate"},
	})
	reqID := decode[map[string]any](t, body)["id"].(string)

	topic, ok := s.svc.Catalog.Topics.Lookup("climate")
	require.True(t, ok)
	first := topic.DataPoints[0].Key
	s.do(t, http.MethodPost, "/v1/entities/ConfidenceRecord", map[string]any{
		"data_point": first, "status": "complete", "confidence": "high",
	})

	resp, body := s.do(t, http.MethodGet, "/v1/readiness/requests/"+reqID, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	rr := decode[struct {
		Ready      []map[string]any `json:"ready"`
		NotTracked []map[string]any `json:"not_tracked"`
		Total      int              `json:"total"`
	}](t, body)
	require.Len(t, rr.Ready, 1)
	assert.Equal(t, first, rr.Ready[0]["key"])
	assert.Len(t, rr.NotTracked, rr.Total-1)

	resp, _ = s.do(t, http.MethodGet, "/v1/readiness/requests/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, body = s.do(t, http.MethodGet, "/v1/readiness/dashboard", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"requests":{"new":1}`)

	resp, _ = s.do(t, http.MethodGet, "/v1/readiness/topics", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestDocumentsCarryExpiry(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/v1/entities/Document", map[string]any{"filename": "old.pdf", "valid_until": "2000-01-01"})
	s.do(t, http.MethodPost, "/v1/entities/Document", map[string]any{"filename": "none.pdf"})

	resp, body := s.do(t, http.MethodGet, "/v1/documents", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	docs := decode[[]struct {
		Filename string `json:"filename"`
		Expiry   struct {
			Status string `json:"status"`
		} `json:"expiry"`
	}](t, body)
	require.Len(t, docs, 2)
	assert.Equal(t, "expired", docs[0].Expiry.Status)
	assert.Equal(t, "none", docs[1].Expiry.Status)
}

func TestBackupRoutes(t *testing.T) {
	s := newTestServer(t, nil)
	s.do(t, http.MethodPost, "/v1/entities/GapAnalysis", map[string]any{"topic_id": "t1", "status": "red"})

	resp, exported := s.do(t, http.MethodGet, "/v1/backup", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "esg-backup-")

	resp, _ = s.do(t, http.MethodPost, "/v1/backup/reset", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, body := s.do(t, http.MethodGet, "/v1/entities/GapAnalysis", nil)
	assert.JSONEq(t, `[]`, string(body))

	resp, _ = s.do(t, http.MethodPost, "/v1/backup/restore", json.RawMessage(`{"version":2,"data":{}}`))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodPost, "/v1/backup/restore", json.RawMessage(exported))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	_, body = s.do(t, http.MethodGet, "/v1/entities/GapAnalysis", nil)
	assert.Len(t, decode[[]map[string]any](t, body), 1)
}

func TestEmissionsRoute(t *testing.T) {
	s := newTestServer(t, nil)
	resp, body := s.do(t, http.MethodPost, "/v1/emissions/calculate", map[string]any{
		"activities": []map[string]any{{"factor_key": "diesel_litre", "quantity": 1000}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	res := decode[map[string]any](t, body)
	assert.InDelta(t, 2512.79, res["scope1_kg"], 0.001)
}

func TestEnhance(t *testing.T) {
	s := newTestServer(t, nil)

	resp, body := s.do(t, http.MethodPost, "/api/enhance", map[string]any{"message": "we recycle"})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode, "not configured")
	assert.Contains(t, string(body), "not configured")

	resp, _ = s.do(t, http.MethodPost, "/api/enhance", map[string]any{"message": "  "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = s.do(t, http.MethodPost, "/api/enhance", map[string]any{"message": strings.Repeat("a", domai.MaxMessageLength+1)})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	s.svc.AI = appai.NewService(fakeEnhancer{out: "We recycle all office waste."}, nil)
	resp, body = s.do(t, http.MethodPost, "/api/enhance", map[string]any{"message": "we recycle"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"enhanced":"We recycle all office waste."}`, string(body))

	s.svc.AI = appai.NewService(fakeEnhancer{err: &domai.UpstreamError{StatusCode: 401, Message: "bad key"}}, nil)
	resp, body = s.do(t, http.MethodPost, "/api/enhance", map[string]any{"message": "x"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.JSONEq(t, `{"error":"bad key"}`, string(body))

	s.svc.AI = appai.NewService(fakeEnhancer{err: fmt.Errorf("%w: slow down", domai.ErrQuotaExceeded)}, nil)
	resp, _ = s.do(t, http.MethodPost, "/api/enhance", map[string]any{"message": "x"})
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestLicenseProxy(t *testing.T) {
	var gotForm string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotForm = r.URL.Path + "?" + r.PostForm.Encode()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"valid":false,"error":"license_key not found."}`))
	}))
	defer upstream.Close()

	s := newTestServer(t, func(c *config.Config) { c.License.BaseURL = upstream.URL })

	resp, body := s.do(t, http.MethodPost, "/api/license/validate", map[string]any{"license_key": "ABC"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.JSONEq(t, `{"valid":false,"error":"license_key not found."}`, string(body))
	assert.Equal(t, "/v1/licenses/validate?license_key=ABC", gotForm)

	resp, _ = s.do(t, http.MethodPost, "/api/license/validate", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp, _ = s.do(t, http.MethodPost, "/api/license/deactivate", map[string]any{"license_key": "ABC"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = s.do(t, http.MethodGet, "/api/license/validate", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestLicenseUpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	s := newTestServer(t, func(c *config.Config) { c.License.BaseURL = url })
	resp, body := s.do(t, http.MethodPost, "/api/license/activate", map[string]any{"license_key": "ABC"})
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	assert.JSONEq(t, `{"error":"could not reach license server"}`, string(body))
}

func TestSafeToShareFollowsConfidenceUpdates(t *testing.T) {
	s := newTestServer(t, nil)
	type summary struct {
		Overall struct {
			Total       int `json:"total"`
			SafeToShare int `json:"safe_to_share"`
		} `json:"overall"`
	}
	confidence := func() summary {
		resp, body := s.do(t, http.MethodGet, "/v1/readiness/confidence", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		return decode[summary](t, body)
	}

	resp, body := s.do(t, http.MethodPost, "/v1/entities/ConfidenceRecord", map[string]any{
		"data_point": "scope2_emissions", "category": "environmental", "status": "complete", "confidence": "medium",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[map[string]any](t, body)
	id := created["id"].(string)

	got := confidence()
	assert.Equal(t, 1, got.Overall.Total)
	assert.Equal(t, 1, got.Overall.SafeToShare)

	resp, body = s.do(t, http.MethodPatch, "/v1/entities/ConfidenceRecord/"+id, map[string]any{"confidence": "low"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	updated := decode[map[string]any](t, body)
	assert.Equal(t, id, updated["id"])
	assert.Equal(t, created["created_date"], updated["created_date"])

	got = confidence()
	assert.Equal(t, 1, got.Overall.Total)
	assert.Equal(t, 0, got.Overall.SafeToShare)

	resp, body = s.do(t, http.MethodGet, "/v1/entities/ConfidenceRecord/"+id, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "low", decode[map[string]any](t, body)["confidence"])
}

func TestAnswerSearch(t *testing.T) {
	s := newTestServer(t, nil)
	resp, _ := s.do(t, http.MethodPost, "/v1/entities/MasterAnswer/bulk", []map[string]any{
		{"question": "Do you track Scope 1 emissions?", "answer": "Yes, via fuel invoices.", "topic": "climate", "confidence": "high", "keywords": "ghg carbon"},
		{"question": "Do you publish a carbon target?", "answer": "Not yet.", "topic": "climate", "confidence": "low"},
		{"question": "Is there a whistleblowing channel?", "answer": "Yes, an external hotline.", "topic": "governance"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	search := func(query string) []string {
		resp, body := s.do(t, http.MethodGet, "/v1/answers/search?"+query, nil)
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
		out := []string{}
		for _, a := range decode[[]map[string]any](t, body) {
			out = append(out, a["question"].(string))
		}
		return out
	}

	assert.Len(t, search(""), 3)
	assert.Equal(t, []string{"Do you track Scope 1 emissions?", "Do you publish a carbon target?"}, search("q=Carbon"))
	assert.Equal(t, []string{"Do you publish a carbon target?"}, search("q=carbon&confidence=low"))
	assert.Equal(t, []string{"Is there a whistleblowing channel?"}, search("q=hotline&confidence=all"))
	assert.Empty(t, search("q=biodiversity"))

	resp, _ = s.do(t, http.MethodGet, "/v1/answers/search?confidence=sure", nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
