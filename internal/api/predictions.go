package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/glucoscope/glucoscope/internal/assessment"
)

const maxBodyBytes = 1 << 20

// readBody reads at most maxBodyBytes. It writes the error response itself
// and reports false when the body could not be read.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return nil, false
		}
		writeError(w, http.StatusBadRequest, "could not read request body")
		return nil, false
	}
	return body, true
}

// writeServiceError maps assessment errors onto HTTP responses.
func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *assessment.ValidationError
	switch {
	case errors.As(err, &verr):
		writeValidationError(w, verr.Violations)
	case errors.Is(err, assessment.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.log.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (h *Handler) handleCreatePrediction(w http.ResponseWriter, r *http.Request) {
	body, ok := readBody(w, r)
	if !ok {
		return
	}

	rec, err := h.svc.Submit(r.Context(), body)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, rec)
}

func (h *Handler) handleListPredictions(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.FetchAll(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleGetPrediction(w http.ResponseWriter, r *http.Request) {
	rec, err := h.svc.FetchOne(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (h *Handler) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	recs, err := h.svc.Recommendations(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (h *Handler) handleExplanation(w http.ResponseWriter, r *http.Request) {
	exp, err := h.svc.Explain(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, exp)
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sum, err := h.svc.Summary(r.Context())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
