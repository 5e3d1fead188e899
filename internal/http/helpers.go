package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"masareef/internal/core"
	"masareef/internal/ledger"
)

// userHeader names the header carrying the authenticated user reference.
// Authentication itself happens upstream; the core trusts the value.
const userHeader = "X-User-ID"

func (h *handlers) userID(r *http.Request) int64 {
	if v := strings.TrimSpace(r.Header.Get(userHeader)); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id
		}
	}
	return h.defaultUserID
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ledger.ErrStoreUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, core.ErrMissingDate),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidPeriod):
		status = http.StatusBadRequest
	}

	slog.ErrorContext(r.Context(), "Request failed",
		"path", r.URL.Path,
		"status_code", status,
		"error", err)

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// parseDate parses a date string in YYYY-MM-DD format.
func parseDate(dateStr string) (core.Date, error) {
	parsed, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return core.Date{}, err
	}
	return core.DateOf(parsed), nil
}
