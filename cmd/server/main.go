// Package main implements the entry point for the pace API server,
// which generates adaptive daily study goals for IELTS preparation and
// tracks learner progress toward a target band score.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/phrazzld/pace-api/internal/config"
	"github.com/phrazzld/pace-api/internal/platform/logger"
)

func main() {
	// Migration flags let the binary double as the schema management tool
	migrateCmd := flag.String("migrate", "", "Run migrations: up, down, status, version, or create")
	migrationName := flag.String("name", "", "Name for a new migration (used with -migrate create)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-migrate <command> [-name <migration-name>]]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if err := run(*migrateCmd, *migrationName); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

// run wires configuration, logging, the database, and the application
// together. Separated from main so that errors flow out as values.
func run(migrateCmd, migrationName string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Info("configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel))

	// Migration commands run and exit without starting the server
	if migrateCmd != "" {
		if err := runMigrations(cfg, appLogger, migrateCmd, migrationName); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		return nil
	}

	db, err := setupDatabase(cfg, appLogger)
	if err != nil {
		return fmt.Errorf("failed to set up database: %w", err)
	}

	ctx := context.Background()
	app, err := newApplication(ctx, cfg, appLogger, db)
	if err != nil {
		// The database is open at this point; close it before bailing
		if closeErr := db.Close(); closeErr != nil {
			appLogger.Error("failed to close database", slog.String("error", closeErr.Error()))
		}
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	if err := app.Run(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
