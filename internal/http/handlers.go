package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"financehq/internal/core"
)

// handleOverview returns the full aggregate set for one period.
// GET /api/overview?month=2025-01 (defaults to the current month).
func (s *Server) handleOverview(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	period := core.PeriodOf(s.now())
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		p, err := core.ParsePeriod(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "month must look like 2025-01")
			return
		}
		period = p
	}

	ov, err := s.dash.Overview(ctx, period)
	if err != nil {
		slog.ErrorContext(ctx, "Overview failed", "period", period.Key(), "error", err)
		writeError(w, http.StatusBadGateway, "could not load transactions dataset")
		return
	}
	writeJSON(w, http.StatusOK, ov)
}

// handlePeriods returns the period keys present in the data, newest first.
func (s *Server) handlePeriods(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet) {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	periods, err := s.dash.Periods(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Period listing failed", "error", err)
		writeError(w, http.StatusBadGateway, "could not load transactions dataset")
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"periods": periods})
}

type transactionRequest struct {
	Timestamp   string `json:"timestamp"` // "2006-01-02 15:04:05", optional
	Amount      string `json:"amount"`
	Category    string `json:"category"`
	Description string `json:"description"`
	PaymentMode string `json:"payment_mode"`
}

// handleAddTransaction appends a new transaction. Unlike the read path, the
// write path is strict: a malformed amount or timestamp is rejected instead
// of degrading to zero.
func (s *Server) handleAddTransaction(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	var req transactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	ts := s.now().In(core.IST)
	if strings.TrimSpace(req.Timestamp) != "" {
		parsed, err := time.ParseInLocation("2006-01-02 15:04:05", strings.TrimSpace(req.Timestamp), core.IST)
		if err != nil {
			writeError(w, http.StatusBadRequest, "timestamp must look like 2025-01-10 14:30:00")
			return
		}
		ts = parsed
	}

	amount, ok := parseStrictAmount(req.Amount)
	if !ok {
		writeError(w, http.StatusBadRequest, "amount must be a non-negative decimal")
		return
	}

	t := core.Transaction{
		Timestamp:   ts,
		Amount:      amount,
		Category:    req.Category,
		Description: req.Description,
		PaymentMode: req.PaymentMode,
	}
	if err := s.dash.AddTransaction(ctx, t); err != nil {
		slog.ErrorContext(ctx, "Transaction append failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

type timeEntryRequest struct {
	Date     string  `json:"date"` // "2006-01-02"
	Category string  `json:"category"`
	Activity string  `json:"activity"`
	Hours    float64 `json:"hours"`
}

func (s *Server) handleAddTimeEntry(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	ctx, cancel := requestContext(r)
	defer cancel()

	var req timeEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	day, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must look like 2025-01-10")
		return
	}

	e := core.TimeLogEntry{
		Date:     day,
		Category: req.Category,
		Activity: req.Activity,
		Hours:    req.Hours,
	}
	if err := s.dash.AddTimeEntry(ctx, e); err != nil {
		slog.ErrorContext(ctx, "Time entry append failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "created"})
}

// handleRefresh forces cache invalidation so the next read refetches.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost) {
		return
	}
	s.dash.Refresh()
	writeJSON(w, http.StatusOK, map[string]string{"status": "invalidated"})
}

// parseStrictAmount accepts plain decimals only; the lossy read-side parser
// would happily turn typos into zero-value writes.
func parseStrictAmount(s string) (core.Money, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return core.Money{}, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return core.Money{}, false
	}
	return core.MoneyFromUnits(f), true
}
