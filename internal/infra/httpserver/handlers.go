package httpserver

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/esg-responder/internal/domain/answers"
	"github.com/bryanwahyu/esg-responder/internal/domain/emissions"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/middleware"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

// ==== policies ====

// GET /v1/policies
func (r *Router) handleListPolicies(w http.ResponseWriter, req *http.Request) error {
	list, err := r.svc.Policies.List(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/policies
func (r *Router) handleCreatePolicy(w http.ResponseWriter, req *http.Request) error {
	var body entities.Record
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	rec, err := r.svc.Policies.Create(req.Context(), body)
	if err != nil {
		return err
	}
	middleware.AddEntityWrites(1)
	return writeJSON(w, http.StatusCreated, rec)
}

// GET /v1/policies/stats
func (r *Router) handlePolicyStats(w http.ResponseWriter, req *http.Request) error {
	stats, err := r.svc.Policies.Stats(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, stats)
}

// PATCH /v1/policies/{id}
func (r *Router) handleUpdatePolicy(w http.ResponseWriter, req *http.Request) error {
	var body entities.Record
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	rec, err := r.svc.Policies.Update(req.Context(), chi.URLParam(req, "id"), body)
	if err != nil {
		return err
	}
	middleware.AddEntityWrites(1)
	return writeJSON(w, http.StatusOK, rec)
}

// DELETE /v1/policies/{id}
func (r *Router) handleDeletePolicy(w http.ResponseWriter, req *http.Request) error {
	if err := r.svc.Policies.Delete(req.Context(), chi.URLParam(req, "id")); err != nil {
		return err
	}
	middleware.AddEntityWrites(1)
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// ==== documents & files ====

// GET /v1/documents
func (r *Router) handleDocuments(w http.ResponseWriter, req *http.Request) error {
	docs, err := r.svc.Readiness.Documents(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, docs)
}

// POST /v1/files (multipart, field "file")
func (r *Router) handleUpload(w http.ResponseWriter, req *http.Request) error {
	limit := r.svc.Files.Cfg.MaxBytes
	req.Body = http.MaxBytesReader(w, req.Body, limit+(1<<20))
	f, hdr, err := req.FormFile("file")
	if err != nil {
		return fmt.Errorf("%w: multipart field \"file\" is required: %v", errBadRequest, err)
	}
	defer f.Close()

	res, err := r.svc.Files.Upload(req.Context(),
		middleware.SanitizeFilename(hdr.Filename),
		hdr.Header.Get("Content-Type"),
		f,
	)
	if err != nil {
		return err
	}
	middleware.IncrementFilesUploaded()
	return writeJSON(w, http.StatusCreated, res)
}

// GET /v1/files/{id}
func (r *Router) handleDownload(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRecordID(id); err != nil {
		return err
	}
	blob, err := r.svc.Files.Get(req.Context(), id)
	if err != nil {
		return err
	}
	if blob == nil {
		return fmt.Errorf("file %q: %w", id, entities.ErrNotFound)
	}
	w.Header().Set("Content-Type", blob.MimeType)
	w.Header().Set("Content-Length", strconv.Itoa(len(blob.Content)))
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", blob.Name))
	w.WriteHeader(http.StatusOK)
	_, err = w.Write(blob.Content)
	return err
}

// DELETE /v1/files/{id}
func (r *Router) handleDeleteFile(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	if err := middleware.ValidateRecordID(id); err != nil {
		return err
	}
	if err := r.svc.Files.Delete(req.Context(), id); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

// GET /v1/files/resolve?url=local://<id>
func (r *Router) handleResolve(w http.ResponseWriter, req *http.Request) error {
	raw := req.URL.Query().Get("url")
	if err := middleware.ValidateURL(raw); err != nil {
		return err
	}
	u, err := r.svc.Files.Resolve(req.Context(), raw)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"url": u})
}

// ==== auth, company, settings ====

// GET /v1/auth/me
func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) error {
	u, err := r.svc.Auth.Me(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, u)
}

// PATCH /v1/auth/me
func (r *Router) handleUpdateMe(w http.ResponseWriter, req *http.Request) error {
	var body entities.Record
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	u, err := r.svc.Auth.UpdateMe(req.Context(), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, u)
}

// POST /v1/auth/logout
func (r *Router) handleLogout(w http.ResponseWriter, req *http.Request) error {
	return writeJSON(w, http.StatusOK, r.svc.Auth.Logout(req.Context()))
}

// GET /v1/company
func (r *Router) handleGetCompany(w http.ResponseWriter, req *http.Request) error {
	p, err := r.svc.Settings.GetProfile(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, p)
}

// PUT /v1/company
func (r *Router) handleSaveCompany(w http.ResponseWriter, req *http.Request) error {
	var body entities.Record
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	p, err := r.svc.Settings.SaveProfile(req.Context(), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, p)
}

// GET /v1/settings
func (r *Router) handleGetSettings(w http.ResponseWriter, req *http.Request) error {
	s, err := r.svc.Settings.GetSettings(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s)
}

// PUT /v1/settings
func (r *Router) handleSaveSettings(w http.ResponseWriter, req *http.Request) error {
	var body entities.Record
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	s, err := r.svc.Settings.SaveSettings(req.Context(), body)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s)
}

// ==== readiness ====

// GET /v1/readiness/dashboard
func (r *Router) handleDashboard(w http.ResponseWriter, req *http.Request) error {
	d, err := r.svc.Readiness.Dashboard(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, d)
}

// GET /v1/readiness/confidence
func (r *Router) handleConfidence(w http.ResponseWriter, req *http.Request) error {
	s, err := r.svc.Readiness.Confidence(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, s)
}

// GET /v1/readiness/requests/{id}
func (r *Router) handleRequestReadiness(w http.ResponseWriter, req *http.Request) error {
	rr, err := r.svc.Readiness.RequestReadiness(req.Context(), chi.URLParam(req, "id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rr)
}

// GET /v1/readiness/topics?topics=climate,energy
func (r *Router) handleTopicReadiness(w http.ResponseWriter, req *http.Request) error {
	var topics []string
	for _, t := range strings.Split(req.URL.Query().Get("topics"), ",") {
		if t = strings.TrimSpace(t); t != "" {
			topics = append(topics, t)
		}
	}
	if len(topics) == 0 {
		return fmt.Errorf("%w: topics is required", pkgerrors.ErrInvalidArgument)
	}
	rr, err := r.svc.Readiness.ForTopics(req.Context(), topics)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rr)
}

// GET /v1/action-items/sorted
func (r *Router) handleSortedActionItems(w http.ResponseWriter, req *http.Request) error {
	items, err := r.svc.Readiness.SortedActionItems(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, items)
}

// GET /v1/answers/search?q=scope+1&confidence=high
func (r *Router) handleSearchAnswers(w http.ResponseWriter, req *http.Request) error {
	conf, err := answers.ParseConfidence(req.URL.Query().Get("confidence"))
	if err != nil {
		return err
	}
	list, err := r.svc.Answers.Search(req.Context(), answers.Query{
		Text:       req.URL.Query().Get("q"),
		Confidence: conf,
	})
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// ==== catalog ====

// GET /v1/topics
func (r *Router) handleTopics(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, r.svc.Catalog.Topics.Topics())
}

// GET /v1/emissions/factors
func (r *Router) handleEmissionFactors(w http.ResponseWriter, _ *http.Request) error {
	return writeJSON(w, http.StatusOK, r.svc.Catalog.Factors.All())
}

// POST /v1/emissions/calculate
// Body: {"activities": [{"factor_key": "...", "quantity": 1.5}]}
func (r *Router) handleCalculateEmissions(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Activities []emissions.Activity `json:"activities"`
	}
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, r.svc.Catalog.Factors.Calculate(body.Activities))
}

// ==== backup ====

// GET /v1/backup
func (r *Router) handleExport(w http.ResponseWriter, req *http.Request) error {
	doc, err := r.svc.Backup.Export(req.Context())
	if err != nil {
		return err
	}
	name := fmt.Sprintf("esg-backup-%s.json", doc.ExportedAt.Format("2006-01-02"))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	return writeJSON(w, http.StatusOK, doc)
}

// POST /v1/backup/restore (body: an exported document)
func (r *Router) handleRestore(w http.ResponseWriter, req *http.Request) error {
	raw, err := io.ReadAll(http.MaxBytesReader(w, req.Body, maxBackupBody))
	if err != nil {
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	sum, err := r.svc.Backup.Import(req.Context(), raw)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, sum)
}

// POST /v1/backup/reset
func (r *Router) handleReset(w http.ResponseWriter, req *http.Request) error {
	sum, err := r.svc.Backup.Reset(req.Context())
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, sum)
}
