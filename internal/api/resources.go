package api

import (
	"net/http"

	"github.com/glucoscope/glucoscope/internal/content"
)

func (h *Handler) handleResources(w http.ResponseWriter, r *http.Request) {
	catalogue, err := content.Resources()
	if err != nil {
		h.log.Error("load resources", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(w, http.StatusOK, catalogue)
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Healthy(r.Context()); err != nil {
		h.log.Warn("health check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
