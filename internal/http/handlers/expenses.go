package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"ledger/internal/domain"
	"ledger/internal/middleware"
	"ledger/internal/paypal"
)

type payExpenseRequest struct {
	HostID             int64                    `json:"hostId"`
	PaymentMethodID    *int64                   `json:"paymentMethodId"`
	PaymentResponses   *paypal.PaymentResponses `json:"paymentResponses"`
	PreapprovalDetails json.RawMessage          `json:"preapprovalDetails"`
}

// ExpensesPay serves POST /v1/expenses/{expenseID}/pay. It loads the expense,
// host and optional payment method, then hands them to the ledger builder.
func (a *App) ExpensesPay(w http.ResponseWriter, r *http.Request) {
	expenseID, err := strconv.ParseInt(chi.URLParam(r, "expenseID"), 10, 64)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid expense id")
		return
	}

	var req payExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.HostID == 0 {
		a.error(w, http.StatusBadRequest, "bad_request", "hostId is required")
		return
	}

	userID := middleware.UserIDFromContext(r.Context())
	if userID == 0 {
		a.error(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return
	}

	ctx := r.Context()

	expense, err := a.Expenses.GetByID(ctx, expenseID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "expense not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Int64("expense_id", expenseID).Msg("load expense failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load expense")
		return
	}

	host, err := a.Collectives.GetHostByID(ctx, req.HostID)
	if errors.Is(err, domain.ErrNotFound) {
		a.error(w, http.StatusNotFound, "not_found", "host not found")
		return
	}
	if err != nil {
		a.Logger.Error().Err(err).Int64("host_id", req.HostID).Msg("load host failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to load host")
		return
	}

	var paymentMethod *domain.PaymentMethod
	if req.PaymentMethodID != nil {
		paymentMethod, err = a.PaymentMethods.GetByID(ctx, *req.PaymentMethodID)
		if errors.Is(err, domain.ErrNotFound) {
			a.error(w, http.StatusNotFound, "not_found", "payment method not found")
			return
		}
		if err != nil {
			a.Logger.Error().Err(err).Int64("payment_method_id", *req.PaymentMethodID).Msg("load payment method failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to load payment method")
			return
		}
	}

	tx, err := a.Ledger.CreateFromPaidExpense(ctx, host, paymentMethod, expense, req.PaymentResponses, req.PreapprovalDetails, userID)
	if err != nil {
		var actionRequired *domain.PaymentActionRequiredError
		var gatewayErr *domain.GatewayError
		switch {
		case errors.As(err, &actionRequired):
			a.error(w, http.StatusBadRequest, "payment_approval_required", actionRequired.Error())
		case errors.As(err, &gatewayErr):
			a.Logger.Error().Err(err).Int64("expense_id", expenseID).Msg("gateway reported unexpected state")
			a.error(w, http.StatusInternalServerError, "gateway_error", gatewayErr.Error())
		default:
			a.Logger.Error().Err(err).Int64("expense_id", expenseID).Msg("pay expense failed")
			a.error(w, http.StatusInternalServerError, "internal", "failed to record paid expense")
		}
		return
	}

	if err := a.Expenses.MarkPaid(ctx, expenseID); err != nil {
		a.Logger.Warn().Err(err).Int64("expense_id", expenseID).Msg("expense status not updated")
	}

	a.json(w, http.StatusCreated, map[string]any{"transaction": tx.Info()})
}
