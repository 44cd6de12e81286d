package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	appbackup "github.com/bryanwahyu/esg-responder/internal/application/backup"
	apppolicies "github.com/bryanwahyu/esg-responder/internal/application/policies"
	"github.com/bryanwahyu/esg-responder/internal/bootstrap"
	domai "github.com/bryanwahyu/esg-responder/internal/domain/ai"
	"github.com/bryanwahyu/esg-responder/internal/domain/entities"
	"github.com/bryanwahyu/esg-responder/internal/middleware"
	pkgerrors "github.com/bryanwahyu/esg-responder/internal/pkg/errors"
	"github.com/bryanwahyu/esg-responder/internal/pkg/logger"
)

// maxJSONBody caps ordinary request bodies; backups get maxBackupBody.
const (
	maxJSONBody   = 1 << 20
	maxBackupBody = 64 << 20
)

type Options struct {
	CORSOrigins []string
	// Limiter guards the AI and license proxies. nil disables limiting.
	Limiter *middleware.RateLimiter
	Health  map[string]middleware.HealthChecker
	Log     *logger.Logger
}

type Router struct {
	svc *bootstrap.Services
	log *logger.Logger
}

func NewRouter(svc *bootstrap.Services, opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.NewNop()
	}
	r := &Router{svc: svc, log: log}
	mux := chi.NewRouter()

	mux.Use(chimw.RequestID)
	mux.Use(chimw.RealIP)
	mux.Use(middleware.Logging(log))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	mux.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	mux.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})

	mux.Get("/health", middleware.LivenessHandler)
	mux.Get("/healthz", middleware.HealthHandler(opts.Health))
	mux.Get("/readyz", middleware.ReadinessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Route("/v1", func(rt chi.Router) {
		rt.Route("/entities/{collection}", func(rt chi.Router) {
			rt.Get("/", r.wrap(r.handleListEntities))
			rt.Post("/", r.wrap(r.handleCreateEntity))
			rt.Post("/bulk", r.wrap(r.handleBulkCreate))
			rt.Post("/filter", r.wrap(r.handleFilterEntities))
			rt.Get("/{id}", r.wrap(r.handleGetEntity))
			rt.Patch("/{id}", r.wrap(r.handleUpdateEntity))
			rt.Delete("/{id}", r.wrap(r.handleDeleteEntity))
		})

		rt.Get("/policies", r.wrap(r.handleListPolicies))
		rt.Post("/policies", r.wrap(r.handleCreatePolicy))
		rt.Get("/policies/stats", r.wrap(r.handlePolicyStats))
		rt.Patch("/policies/{id}", r.wrap(r.handleUpdatePolicy))
		rt.Delete("/policies/{id}", r.wrap(r.handleDeletePolicy))

		rt.Get("/documents", r.wrap(r.handleDocuments))

		rt.Post("/files", r.wrap(r.handleUpload))
		rt.Get("/files/resolve", r.wrap(r.handleResolve))
		rt.Get("/files/{id}", r.wrap(r.handleDownload))
		rt.Delete("/files/{id}", r.wrap(r.handleDeleteFile))

		rt.Get("/auth/me", r.wrap(r.handleMe))
		rt.Patch("/auth/me", r.wrap(r.handleUpdateMe))
		rt.Post("/auth/logout", r.wrap(r.handleLogout))

		rt.Get("/company", r.wrap(r.handleGetCompany))
		rt.Put("/company", r.wrap(r.handleSaveCompany))
		rt.Get("/settings", r.wrap(r.handleGetSettings))
		rt.Put("/settings", r.wrap(r.handleSaveSettings))

		rt.Get("/readiness/dashboard", r.wrap(r.handleDashboard))
		rt.Get("/readiness/confidence", r.wrap(r.handleConfidence))
		rt.Get("/readiness/requests/{id}", r.wrap(r.handleRequestReadiness))
		rt.Get("/readiness/topics", r.wrap(r.handleTopicReadiness))
		rt.Get("/action-items/sorted", r.wrap(r.handleSortedActionItems))
		rt.Get("/answers/search", r.wrap(r.handleSearchAnswers))

		rt.Get("/topics", r.wrap(r.handleTopics))
		rt.Get("/emissions/factors", r.wrap(r.handleEmissionFactors))
		rt.Post("/emissions/calculate", r.wrap(r.handleCalculateEmissions))

		rt.Get("/backup", r.wrap(r.handleExport))
		rt.Post("/backup/restore", r.wrap(r.handleRestore))
		rt.Post("/backup/reset", r.wrap(r.handleReset))
	})

	mux.Route("/api", func(rt chi.Router) {
		if opts.Limiter != nil {
			rt.Use(middleware.RateLimit(opts.Limiter))
		}
		rt.Post("/enhance", r.wrap(r.handleEnhance))
		rt.Post("/license/validate", r.wrap(r.handleLicense("validate")))
		rt.Post("/license/activate", r.wrap(r.handleLicense("activate")))
		rt.Post("/license/deactivate", r.wrap(r.handleLicense("deactivate")))
	})

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// errBadRequest marks bodies that could not be decoded.
var errBadRequest = errors.New("bad request")

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		var upstream *domai.UpstreamError
		switch {
		case errors.Is(err, entities.ErrNotFound), errors.Is(err, entities.ErrUnknownCollection):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, pkgerrors.ErrInvalidArgument),
			errors.Is(err, errBadRequest),
			errors.Is(err, appbackup.ErrInvalidBackup),
			errors.Is(err, domai.ErrInvalidMessage):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, apppolicies.ErrSeededPolicy):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, domai.ErrQuotaExceeded):
			writeError(w, http.StatusTooManyRequests, "ai quota exceeded")
		case errors.As(err, &upstream):
			status := upstream.StatusCode
			if status < 400 {
				status = http.StatusBadGateway
			}
			writeError(w, status, upstream.Message)
		case errors.Is(err, domai.ErrNotConfigured), errors.Is(err, domai.ErrEmptyCompletion):
			writeError(w, http.StatusInternalServerError, err.Error())
		case errors.Is(err, pkgerrors.ErrUpstreamUnavailable):
			writeError(w, http.StatusBadGateway, "upstream service unavailable")
		default:
			r.log.Error("request failed", "method", req.Method, "path", req.URL.Path, "error", err)
			writeError(w, http.StatusInternalServerError, "internal server error")
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	_ = writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads at most limit bytes of JSON into v.
func decodeJSON(w http.ResponseWriter, req *http.Request, limit int64, v any) error {
	body := http.MaxBytesReader(w, req.Body, limit)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", errBadRequest)
		}
		return fmt.Errorf("%w: %v", errBadRequest, err)
	}
	return nil
}
