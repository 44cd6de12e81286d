package httpserver

import (
	"errors"
	"net/http"

	"github.com/bryanwahyu/esg-responder/internal/domain/license"
	"github.com/bryanwahyu/esg-responder/internal/middleware"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
)

// POST /api/enhance
// Body: {"message": "<draft answer>"}
func (r *Router) handleEnhance(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
		return err
	}
	middleware.IncrementEnhance()
	out, err := r.svc.AI.Enhance(req.Context(), body.Message)
	if err != nil {
		middleware.IncrementEnhanceFailed()
		return err
	}
	return writeJSON(w, http.StatusOK, map[string]string{"enhanced": out})
}

// POST /api/license/{validate,activate,deactivate}
// The upstream answer is relayed with its status and body unchanged.
func (r *Router) handleLicense(action license.Action) handlerFunc {
	return func(w http.ResponseWriter, req *http.Request) error {
		var body license.Request
		if err := decodeJSON(w, req, maxJSONBody, &body); err != nil {
			return err
		}
		resp, err := r.svc.License.Do(req.Context(), action, body)
		if errors.Is(err, pkgerrors.ErrUpstreamUnavailable) {
			writeError(w, http.StatusBadGateway, "could not reach license server")
			return nil
		}
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		_, err = w.Write(resp.Body)
		return err
	}
}
