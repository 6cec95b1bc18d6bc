package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"ledger/internal/http/handlers"
	"ledger/internal/infra"
	"ledger/internal/middleware"
)

// NewRouter assembles the API surface with its middleware stack.
func NewRouter(app *handlers.App, cfg *infra.Config, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		chimiddleware.RealIP,
		chimiddleware.Recoverer,
		middleware.Logger(logger),
		middleware.CORS(cfg.AllowedOrigins),
		middleware.RateLimit(cfg.RateLimitPerMin, time.Minute),
	)

	r.Get("/v1/healthz", app.Health)

	r.Route("/v1/transactions", func(r chi.Router) {
		r.Get("/", app.TransactionsList)
		r.Get("/export", app.TransactionsExport)
	})

	r.Route("/v1/expenses", func(r chi.Router) {
		r.Use(middleware.AuthJWT(cfg.JWTSecret))
		r.Post("/{expenseID}/pay", app.ExpensesPay)
	})

	return r
}
