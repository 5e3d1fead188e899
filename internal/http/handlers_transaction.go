package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"masareef/internal/core"
)

type transactionResponse struct {
	Date        string          `json:"date"`
	Type        string          `json:"type"`
	Category    string          `json:"category"`
	Source      string          `json:"source"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

type transactionRequest struct {
	Date        string `json:"date"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Source      string `json:"source"`
	Amount      string `json:"amount"`
	Description string `json:"description"`
}

func toTransactionResponses(txns []core.Transaction) []transactionResponse {
	out := make([]transactionResponse, 0, len(txns))
	for _, t := range txns {
		out = append(out, transactionResponse{
			Date:        t.Date.Format("2006-01-02"),
			Type:        string(t.Type),
			Category:    t.Category,
			Source:      t.Source,
			Amount:      t.Amount,
			Description: t.Description,
		})
	}
	return out
}

// criteriaFromQuery builds filter criteria from the optional query params
// start, end, category, source, type.
func criteriaFromQuery(r *http.Request) (core.Criteria, error) {
	var c core.Criteria
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("start")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return c, core.ErrInvalidDate
		}
		c.Start = &d
	}
	if v := strings.TrimSpace(q.Get("end")); v != "" {
		d, err := parseDate(v)
		if err != nil {
			return c, core.ErrInvalidDate
		}
		c.End = &d
	}
	if vs, ok := q["category"]; ok {
		c.Categories = vs
	}
	if vs, ok := q["source"]; ok {
		c.Sources = vs
	}
	if v := strings.TrimSpace(q.Get("type")); v != "" {
		typ, err := core.ParseTxnType(v)
		if err != nil {
			return c, err
		}
		c.Type = &typ
	}

	return c, nil
}

func (h *handlers) handleTransactions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listTransactions(w, r)
	case http.MethodPost:
		h.createTransaction(w, r)
	default:
		w.Header().Set("Allow", "GET, POST")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *handlers) listTransactions(w http.ResponseWriter, r *http.Request) {
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

	writeJSON(w, http.StatusOK, toTransactionResponses(core.Filter(txns, criteria)))
}

func (h *handlers) createTransaction(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 7*time.Second)
	defer cancel()

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON body"})
		return
	}

	reqDate := strings.TrimSpace(req.Date)
	if reqDate == "" {
		writeError(w, r, core.ErrMissingDate)
		return
	}
	date, err := parseDate(reqDate)
	if err != nil {
		writeError(w, r, core.ErrInvalidDate)
		return
	}

	typ, err := core.ParseTxnType(req.Type)
	if err != nil {
		writeError(w, r, err)
		return
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil {
		writeError(w, r, core.ErrInvalidAmount)
		return
	}

	t := core.Transaction{
		Date:        date,
		Type:        typ,
		Category:    strings.TrimSpace(req.Category),
		Source:      strings.TrimSpace(req.Source),
		Amount:      amount,
		Description: strings.TrimSpace(req.Description),
	}

	if err := h.svc.Append(ctx, h.userID(r), t); err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toTransactionResponses([]core.Transaction{t})[0])
}
