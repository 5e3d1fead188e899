package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"masareef/internal/core"
)

type kpiResponse struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	WalletBalance    decimal.Decimal `json:"wallet_balance"`
	BankBalance      decimal.Decimal `json:"bank_balance"`
	InvestmentsValue decimal.Decimal `json:"investments_value"`
}

type sourceBalanceResponse struct {
	Source  string          `json:"source"`
	Balance decimal.Decimal `json:"balance"`
}

type monthBucketResponse struct {
	Month string          `json:"month"`
	Value decimal.Decimal `json:"value"`
}

type categoryTotalResponse struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
}

type reportResponse struct {
	Label        string                `json:"label"`
	StartDate    string                `json:"start_date"`
	EndDate      string                `json:"end_date"`
	Stats        reportStatsResponse   `json:"stats"`
	Transactions []transactionResponse `json:"transactions"`
}

type reportStatsResponse struct {
	TotalIncome      decimal.Decimal `json:"total_income"`
	TotalExpenses    decimal.Decimal `json:"total_expenses"`
	TotalInvestments decimal.Decimal `json:"total_investments"`
	NetBalance       decimal.Decimal `json:"net_balance"`
	TransactionCount int             `json:"transaction_count"`
}

// handleKPIs returns the headline metrics for the dashboard.
func (h *handlers) handleKPIs(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	txns, err := h.svc.Load(ctx, h.userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	b := core.ComputeKPIs(txns)
	writeJSON(w, http.StatusOK, kpiResponse{
		TotalIncome:      b.TotalIncome,
		TotalExpenses:    b.TotalExpenses,
		NetBalance:       b.NetBalance,
		WalletBalance:    b.WalletBalance,
		BankBalance:      b.BankBalance,
		InvestmentsValue: b.InvestmentsValue,
	})
}

// handleBalances returns per-source net flows for the wallets view.
func (h *handlers) handleBalances(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	txns, err := h.svc.Load(ctx, h.userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	balances := core.SourceBalances(txns)
	out := make([]sourceBalanceResponse, 0, len(balances))
	for _, sb := range balances {
		out = append(out, sourceBalanceResponse{Source: sb.Source, Balance: sb.Balance})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleMonthlySummary returns the sparse monthly series for trend charts.
// Optional query params: type (transaction type filter), op (sum|count).
func (h *handlers) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	txns, err := h.svc.Load(ctx, h.userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	op := core.AggregateSum
	if strings.EqualFold(r.URL.Query().Get("op"), "count") {
		op = core.AggregateCount
	}

	buckets := core.MonthlySummary(core.Filter(txns, criteria), op)
	out := make([]monthBucketResponse, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, monthBucketResponse{Month: b.Label, Value: b.Value})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleCategorySummary returns category totals for pie/bar charts.
func (h *handlers) handleCategorySummary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	txns, err := h.svc.Load(ctx, h.userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	criteria, err := criteriaFromQuery(r)
	if err != nil {
		writeError(w, r, err)
		return
	}

	totals := core.GroupByCategory(core.Filter(txns, criteria))
	out := make([]categoryTotalResponse, 0, len(totals))
	for _, ct := range totals {
		out = append(out, categoryTotalResponse{Category: ct.Category, Total: ct.Total})
	}
	writeJSON(w, http.StatusOK, out)
}

// handleReport returns the weekly or monthly report slice.
func (h *handlers) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	txns, err := h.svc.Load(ctx, h.userID(r))
	if err != nil {
		writeError(w, r, err)
		return
	}

	period := core.PeriodKind(r.URL.Query().Get("period"))
	if period == "" {
		period = core.PeriodWeekly
	}

	slice, err := core.PeriodSlice(txns, period, time.Now())
	if err != nil {
		writeError(w, r, err)
		return
	}

	out := reportResponse{
		Label:     slice.Label,
		StartDate: slice.Start.Format("2006-01-02"),
		EndDate:   slice.End.Format("2006-01-02"),
		Stats: reportStatsResponse{
			TotalIncome:      slice.Stats.TotalIncome,
			TotalExpenses:    slice.Stats.TotalExpenses,
			TotalInvestments: slice.Stats.TotalInvestments,
			NetBalance:       slice.Stats.NetBalance,
			TransactionCount: slice.Stats.TransactionCount,
		},
		Transactions: toTransactionResponses(slice.Transactions),
	}
	writeJSON(w, http.StatusOK, out)
}
