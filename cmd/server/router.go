package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/pace-api/internal/api"
	apiMiddleware "github.com/phrazzld/pace-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	// Create API handlers using the application's services
	tokenLifetime := time.Duration(app.config.Auth.TokenLifetimeMinutes) * time.Minute
	authHandler := api.NewAuthHandler(
		app.userService,
		app.jwtService,
		app.passwordVerifier,
		tokenLifetime,
		app.logger,
	)
	goalHandler := api.NewGoalHandler(app.plannerService, app.logger)
	profileHandler := api.NewProfileHandler(app.profileService, app.logger)
	dashboardHandler := api.NewDashboardHandler(app.insightService, app.logger)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	// Register routes
	r.Route("/api", func(r chi.Router) {
		// Authentication endpoints (public)
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)
		r.Post("/auth/refresh", authHandler.RefreshToken)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Daily goal endpoints
			r.Get("/goals/today", goalHandler.GetToday)
			r.Post("/goals/{id}/complete", goalHandler.Complete)
			r.Post("/goals/recovery", goalHandler.StartRecovery)
			r.Get("/goals/completed", goalHandler.ListCompleted)

			// Profile and onboarding endpoints
			r.Get("/profile", profileHandler.Get)
			r.Patch("/profile", profileHandler.Update)
			r.Post("/assessment", profileHandler.SubmitAssessment)

			// Progress dashboard
			r.Get("/dashboard", dashboardHandler.Get)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
