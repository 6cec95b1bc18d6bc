package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"ledger/internal/domain"
	"ledger/internal/ledger"
)

// App is the handler container carrying the ledger service and the
// repositories handlers need for request-scoped lookups.
type App struct {
	Ledger         *ledger.Service
	Expenses       domain.ExpenseRepository
	Collectives    domain.CollectiveRepository
	PaymentMethods domain.PaymentMethodRepository
	Logger         zerolog.Logger
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}
