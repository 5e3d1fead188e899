package http

import (
	"net/http"

	"masareef/internal/services"
)

type handlers struct {
	svc           *services.LedgerService
	defaultUserID int64
}

func (h *handlers) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
