package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/middleware"
)

func collectionParam(req *http.Request) (entities.Collection, error) {
	return middleware.ValidateCollection(chi.URLParam(req, "collection"))
}

// GET /v1/entities/{collection}
func (r *Router) handleListEntities(w http.ResponseWriter, req *http.Request) error {
	c, err := collectionParam(req)
	if err != nil {
		return err
	}
	list, err := r.svc.Entities.List(req.Context(), c)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// POST /v1/entities/{collection}/filter
// Body: {"field": value, ...}, matched by exact equality
func (r *Router) handleFilterEntities(w http.ResponseWriter, req *http.Request) error {
	c, err := collectionParam(req)
	if err != nil {
		return err
	}
	var criteria map[string]any
	if err := decodeJSON(w, req, maxJSONBody, &criteria); err != nil {
		return err
	}
	list, err := r.svc.Entities.Filter(req.Context(), c, criteria)
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, list)
}

// GET /v1/entities/{collection}/{id}
func (r *Router) handleGetEntity(w http.ResponseWriter, req *http.Request) error {
	c, err := collectionParam(req)
	if err != nil {
		return err
	}
	rec, err := r.svc.Entities.Get(req.Context(), c, chi.URLParam(req, "id"))
	if err != nil {
		return err
	}
	return writeJSON(w, http.StatusOK, rec)
}

// POST /v1/entities/{collection}
func (r *Router) handleCreateEntity(w http.ResponseWriter, req *http.Request) error {
	c, err := collectionParam(req)
	if err != nil {
		return err
	}
	var body entities.Record
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	rec, err := r.svc.Entities.Create(req.Context(), c, body)
	if err != nil {
		return err
	}
	middleware.AddEntityWrites(1)
	return writeJSON(w, http.StatusCreated, rec)
}

// POST /v1/entities/{collection}/bulk
// Body: [{...}, {...}]
func (r *Router) handleBulkCreate(w http.ResponseWriter, req *http.Request) error {
	c, err := collectionParam(req)
	if err != nil {
		return err
	}
	var body []entities.Record
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	out, err := r.svc.Entities.BulkCreate(req.Context(), c, body)
	if err != nil {
		return err
	}
	middleware.AddEntityWrites(len(out))
	return writeJSON(w, http.StatusCreated, out)
}

// PATCH /v1/entities/{collection}/{id}
func (r *Router) handleUpdateEntity(w http.ResponseWriter, req *http.Request) error {
	c, err := collectionParam(req)
	if err != nil {
		return err
	}
	var body entities.Record
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	rec, err := r.svc.Entities.Update(req.Context(), c, chi.URLParam(req, "id"), body)
	if err != nil {
		return err
	}
	middleware.AddEntityWrites(1)
	return writeJSON(w, http.StatusOK, rec)
}

// DELETE /v1/entities/{collection}/{id}
func (r *Router) handleDeleteEntity(w http.ResponseWriter, req *http.Request) error {
	c, err := collectionParam(req)
	if err != nil {
		return err
	}
	if err := r.svc.Entities.Delete(req.Context(), c, chi.URLParam(req, "id")); err != nil {
		return err
	}
	middleware.AddEntityWrites(1)
	w.WriteHeader(http.StatusNoContent)
	return nil
}
