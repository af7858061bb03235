// Package api implements the glucoscope REST API and serves the web UI.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/handlers"

	"github.com/glucoscope/glucoscope/internal/assessment"
	"github.com/glucoscope/glucoscope/internal/logger"
	"github.com/glucoscope/glucoscope/internal/observability"
	"github.com/glucoscope/glucoscope/pkg/validate"
)

// Handler is the top-level API handler for the glucoscope service.
type Handler struct {
	svc     *assessment.Service
	log     *logger.Logger
	metrics *observability.Metrics
}

// NewHandler creates a new API handler. log and metrics may be nil.
func NewHandler(svc *assessment.Service, log *logger.Logger, metrics *observability.Metrics) *Handler {
	if log == nil {
		log = logger.Nop()
	}
	return &Handler{svc: svc, log: log, metrics: metrics}
}

// Options controls the outer layers added by Routes.
type Options struct {
	StaticDir   string   // built web UI; empty disables static serving
	CORSOrigins []string // empty allows any origin
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	h.handle(mux, "POST /api/predictions", h.handleCreatePrediction)
	h.handle(mux, "GET /api/predictions", h.handleListPredictions)
	h.handle(mux, "GET /api/predictions/{id}", h.handleGetPrediction)
	h.handle(mux, "GET /api/predictions/{id}/recommendations", h.handleRecommendations)
	h.handle(mux, "GET /api/predictions/{id}/explanation", h.handleExplanation)
	h.handle(mux, "GET /api/dashboard", h.handleDashboard)

	h.handle(mux, "POST /api/tools/bmi", h.handleBMI)
	h.handle(mux, "POST /api/tools/glucose", h.handleGlucose)
	h.handle(mux, "GET /api/resources", h.handleResources)

	h.handle(mux, "GET /api/", func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.Handle("GET /metrics", h.metrics.Handler())
}

// Routes builds the complete server handler: API routes, optional static UI,
// request logging, CORS, gzip and panic recovery.
func (h *Handler) Routes(opts Options) http.Handler {
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	if opts.StaticDir != "" {
		mux.Handle("GET /", SPA(opts.StaticDir))
	}

	var handler http.Handler = mux
	handler = RequestLogger(h.log)(handler)
	handler = CORS(opts.CORSOrigins)(handler)
	handler = handlers.CompressHandler(handler)
	handler = handlers.RecoveryHandler(handlers.RecoveryLogger(recoveryLogger{h.log}))(handler)
	return handler
}

func (h *Handler) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, h.metrics.WrapHandler(pattern, fn))
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type validationResponse struct {
	Error   string               `json:"error"`
	Details []validate.Violation `json:"details"`
}

func writeValidationError(w http.ResponseWriter, violations []validate.Violation) {
	writeJSON(w, http.StatusBadRequest, validationResponse{Error: "Invalid input data", Details: violations})
}
