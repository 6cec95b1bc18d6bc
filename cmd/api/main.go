package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"ledger/internal/adapter/repo"
	"ledger/internal/currency"
	"ledger/internal/http/handlers"
	"ledger/internal/http/httpapi"
	"ledger/internal/infra"
	"ledger/internal/ledger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	transactions := repo.NewTransactionRepository(runner)
	activities := repo.NewActivityRepository(runner)
	users := repo.NewUserRepository(runner)
	collectives := repo.NewCollectiveRepository(runner)
	expenses := repo.NewExpenseRepository(runner)
	paymentMethods := repo.NewPaymentMethodRepository(runner)

	rates := currency.NewService(cfg.FxAPIBaseURL, logger)
	service := ledger.NewService(transactions, activities, users, collectives, rates, logger)

	app := &handlers.App{
		Ledger:         service,
		Expenses:       expenses,
		Collectives:    collectives,
		PaymentMethods: paymentMethods,
		Logger:         logger,
	}

	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
