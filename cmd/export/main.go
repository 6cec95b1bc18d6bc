// Command export writes a CSV of ledger transactions for a set of collectives
// and a date range to stdout.
//
//	export -collectives 5,12 -start 2020-01-01 -end 2020-02-01
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ledger/internal/adapter/repo"
	"ledger/internal/currency"
	"ledger/internal/domain"
	"ledger/internal/infra"
	"ledger/internal/ledger"
)

func main() {
	_ = godotenv.Load()

	collectivesFlag := flag.String("collectives", "", "comma-separated collective ids (required)")
	startFlag := flag.String("start", "", "start date YYYY-MM-DD (default platform epoch)")
	endFlag := flag.String("end", "", "end date YYYY-MM-DD, exclusive (default now)")
	attributesFlag := flag.String("attributes", "", "comma-separated CSV columns (default standard set)")
	limitFlag := flag.Int("limit", 0, "maximum rows (0 = no limit)")
	flag.Parse()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	collectiveIDs, err := parseIDs(*collectivesFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -collectives")
	}

	startDate, err := parseDate(*startFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -start")
	}
	endDate, err := parseDate(*endFlag)
	if err != nil {
		logger.Fatal().Err(err).Msg("invalid -end")
	}

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
	rates := currency.NewService(cfg.FxAPIBaseURL, logger)
	service := ledger.NewService(transactions, activities, users, collectives, rates, logger)

	items, err := service.GetTransactions(ctx, collectiveIDs, startDate, endDate, domain.TransactionQuery{Limit: *limitFlag})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load transactions")
	}

	var attributes []string
	if *attributesFlag != "" {
		for _, attr := range strings.Split(*attributesFlag, ",") {
			if attr = strings.TrimSpace(attr); attr != "" {
				attributes = append(attributes, attr)
			}
		}
	}

	csvBody, err := ledger.ExportTransactions(items, attributes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to serialize transactions")
	}
	fmt.Fprint(os.Stdout, csvBody)
}

func parseIDs(raw string) ([]int64, error) {
	if raw == "" {
		return nil, fmt.Errorf("at least one collective id is required")
	}
	var ids []int64
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", part, err)
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("at least one collective id is required")
	}
	return ids, nil
}

func parseDate(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}
