package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/phrazzld/pace-api/internal/config"
	"github.com/phrazzld/pace-api/internal/content"
	"github.com/phrazzld/pace-api/internal/domain/pacing"
	"github.com/phrazzld/pace-api/internal/platform/bank"
	"github.com/phrazzld/pace-api/internal/platform/gemini"
	"github.com/phrazzld/pace-api/internal/platform/postgres"
	"github.com/phrazzld/pace-api/internal/service"
	"github.com/phrazzld/pace-api/internal/service/auth"
	"github.com/phrazzld/pace-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore     store.UserStore
	profileStore  store.ProfileStore
	progressStore store.ProgressStore
	goalStore     store.GoalStore
	streakStore   store.StreakStore

	// Service interfaces
	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	questionBank     content.Bank
	pacer            pacing.Service
	userService      service.UserService
	plannerService   service.PlannerService
	profileService   service.ProfileService
	insightService   service.InsightService
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies like configuration, logger, and
// database connection that must be established before application
// initialization.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize JWT service
	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	// Initialize password verifier
	app.passwordVerifier = auth.NewBcryptVerifier()

	// Initialize stores
	app.userStore = postgres.NewPostgresUserStore(db, logger, cfg.Auth.BcryptCost)
	app.profileStore = postgres.NewPostgresProfileStore(db, logger)
	app.progressStore = postgres.NewPostgresProgressStore(db, logger)
	app.goalStore = postgres.NewPostgresGoalStore(db, logger)
	app.streakStore = postgres.NewPostgresStreakStore(db, logger)

	// Initialize the question bank. The static corpus always serves first;
	// a configured Gemini API key adds LLM-backed generation for requests
	// the corpus cannot fill.
	app.questionBank, err = setupQuestionBank(ctx, cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize question bank: %w", err)
	}

	// Initialize the pacing engine
	app.pacer = pacing.NewService(app.questionBank, logger)

	// Initialize services
	app.userService = service.NewUserService(
		app.userStore,
		app.profileStore,
		app.progressStore,
		db,
		logger,
	)
	app.plannerService = service.NewPlannerService(
		db,
		app.goalStore,
		app.profileStore,
		app.progressStore,
		app.streakStore,
		app.pacer,
		logger,
	)
	app.profileService = service.NewProfileService(
		app.profileStore,
		app.progressStore,
		logger,
	)
	app.insightService = service.NewInsightService(
		app.goalStore,
		app.profileStore,
		app.progressStore,
		app.streakStore,
		logger,
	)

	logger.Info("application initialized successfully")
	return app, nil
}

// setupQuestionBank builds the content source for goal generation. Without
// a Gemini API key the static corpus serves alone.
func setupQuestionBank(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
) (content.Bank, error) {
	staticBank := bank.NewStaticBank(logger)

	if cfg.Content.GeminiAPIKey == "" {
		logger.Info("question bank initialized", slog.String("source", "static"))
		return staticBank, nil
	}

	geminiBank, err := gemini.NewGeminiBank(
		ctx,
		logger.With(slog.String("component", "gemini_bank")),
		cfg.Content,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini bank: %w", err)
	}

	logger.Info("question bank initialized", slog.String("source", "static+gemini"))
	return bank.NewFallbackBank(staticBank, geminiBank, logger), nil
}

// Run starts the application server, handling lifecycle and cleanup.
// It returns an error if the server fails to start or encounters problems.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}

	app.logger.Info("application shutdown completed")
}
