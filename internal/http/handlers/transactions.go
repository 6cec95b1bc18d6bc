package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"ledger/internal/domain"
	"ledger/internal/ledger"
)

type transactionFilter struct {
	collectiveIDs []int64
	startDate     time.Time
	endDate       time.Time
	query         domain.TransactionQuery
}

func parseTransactionFilter(r *http.Request) (transactionFilter, string) {
	var f transactionFilter

	raw := r.URL.Query().Get("collectiveIds")
	if raw == "" {
		return f, "collectiveIds is required"
	}
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return f, "collectiveIds must be a comma-separated list of ids"
		}
		f.collectiveIDs = append(f.collectiveIDs, id)
	}
	if len(f.collectiveIDs) == 0 {
		return f, "collectiveIds is required"
	}

	var errMsg string
	if f.startDate, errMsg = parseDateParam(r, "start"); errMsg != "" {
		return f, errMsg
	}
	if f.endDate, errMsg = parseDateParam(r, "end"); errMsg != "" {
		return f, errMsg
	}
	if f.startDate.IsZero() {
		f.startDate = ledger.PlatformEpoch
	}
	if f.endDate.IsZero() {
		f.endDate = time.Now()
	}

	if v := r.URL.Query().Get("limit"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit < 0 {
			return f, "limit must be a non-negative integer"
		}
		f.query.Limit = limit
	}
	f.query.IncludeRelated = r.URL.Query().Get("include") == "related"

	return f, ""
}

func parseDateParam(r *http.Request, name string) (time.Time, string) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return time.Time{}, ""
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, ""
		}
	}
	return time.Time{}, name + " must be an RFC3339 timestamp or YYYY-MM-DD date"
}

// TransactionsList serves GET /v1/transactions.
func (a *App) TransactionsList(w http.ResponseWriter, r *http.Request) {
	filter, errMsg := parseTransactionFilter(r)
	if errMsg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", errMsg)
		return
	}

	transactions, err := a.Ledger.GetTransactions(r.Context(), filter.collectiveIDs, filter.startDate, filter.endDate, filter.query)
	if err != nil {
		a.Logger.Error().Err(err).Msg("list transactions failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load transactions")
		return
	}

	items := make([]map[string]any, 0, len(transactions))
	for i := range transactions {
		tx := &transactions[i]
		item := map[string]any{"transaction": tx.Info()}
		if tx.User != nil {
			item["user"] = tx.User
		}
		if tx.Collective != nil {
			item["collective"] = tx.Collective
		}
		items = append(items, item)
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

// TransactionsExport serves GET /v1/transactions/export as CSV.
func (a *App) TransactionsExport(w http.ResponseWriter, r *http.Request) {
	filter, errMsg := parseTransactionFilter(r)
	if errMsg != "" {
		a.error(w, http.StatusBadRequest, "bad_request", errMsg)
		return
	}

	transactions, err := a.Ledger.GetTransactions(r.Context(), filter.collectiveIDs, filter.startDate, filter.endDate, filter.query)
	if err != nil {
		a.Logger.Error().Err(err).Msg("export transactions failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load transactions")
		return
	}

	var attributes []string
	if v := r.URL.Query().Get("attributes"); v != "" {
		for _, attr := range strings.Split(v, ",") {
			if attr = strings.TrimSpace(attr); attr != "" {
				attributes = append(attributes, attr)
			}
		}
	}

	csvBody, err := ledger.ExportTransactions(transactions, attributes)
	if err != nil {
		a.Logger.Error().Err(err).Msg("csv serialization failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to serialize transactions")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="transactions.csv"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(csvBody))
}
