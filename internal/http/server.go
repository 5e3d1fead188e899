package http

import (
	"net/http"

	"masareef/internal/middleware/ratelimit"
	"masareef/internal/middleware/trace"
	"masareef/internal/services"
)

// NewServer wires the dashboard API routes behind trace and rate-limit
// middleware.
func NewServer(addr string, svc *services.LedgerService, defaultUserID int64) *http.Server {
	h := &handlers{svc: svc, defaultUserID: defaultUserID}

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", h.handleHealth)
	mux.HandleFunc("/api/kpis", h.handleKPIs)
	mux.HandleFunc("/api/balances", h.handleBalances)
	mux.HandleFunc("/api/summary/monthly", h.handleMonthlySummary)
	mux.HandleFunc("/api/summary/categories", h.handleCategorySummary)
	mux.HandleFunc("/api/report", h.handleReport)
	mux.HandleFunc("/api/transactions", h.handleTransactions)

	limiter := ratelimit.NewLimiter(ratelimit.DefaultConfig())
	handler := trace.Middleware(limiter.Middleware(trace.ClientIP)(mux))

	return &http.Server{
		Addr:    addr,
		Handler: handler,
	}
}
