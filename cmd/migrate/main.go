// Command migrate applies the goose SQL migrations under migrations/.
//
//	migrate [up|down|status|version]
package main

import (
	"context"
	"database/sql"
	"flag"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"

	"ledger/internal/infra"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	flag.Parse()
	command := "up"
	var rest []string
	if args := flag.Args(); len(args) > 0 {
		command = args[0]
		rest = args[1:]
	}

	db, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Fatal().Err(err).Msg("failed to ping database")
	}

	if err := goose.SetDialect("postgres"); err != nil {
		logger.Fatal().Err(err).Msg("failed to set goose dialect")
	}

	if err := goose.RunContext(context.Background(), command, db, cfg.MigrationsDir, rest...); err != nil {
		logger.Fatal().Err(err).Str("command", command).Msg("migration failed")
	}
	logger.Info().Str("command", command).Msg("migrations done")
}
