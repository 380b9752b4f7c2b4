package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/wastegate/wastegate/internal/api/handlers"
	"github.com/wastegate/wastegate/internal/api/middleware"
	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/metrics"
)

// Handlers bundles every handler the router mounts
type Handlers struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Scan           *handlers.ScanHandler
	Recommendation *handlers.RecommendationHandler
	Finding        *handlers.FindingHandler
	Remediation    *handlers.RemediationHandler
	SafeOps        *handlers.SafeOpsHandler
	Breaker        *handlers.BreakerHandler
	Guard          *handlers.GuardHandler
	Settings       *handlers.SettingsHandler
	Spend          *handlers.SpendHandler
	Notification   *handlers.NotificationHandler
}

// New builds the HTTP handler tree
func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec per IP, burst of 200
	r.Use(chimiddleware.Heartbeat("/ping"))
	r.Use(metrics.Middleware)

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Observability
		r.Get("/metrics", metrics.Handler().ServeHTTP)

		// Health checks
		r.Get("/health", h.Health.Healthz)
		r.Get("/ready", h.Health.Readyz)

		// Auth
		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.RefreshToken)
		r.Post("/api/v1/auth/logout", h.Auth.Logout)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))
		r.Use(middleware.UserRateLimit(20, 40)) // 20 req/sec per user, burst of 40

		// Auth
		r.Get("/api/v1/auth/me", h.Auth.Me)

		// Scans
		r.Route("/api/v1/scans", func(r chi.Router) {
			r.Post("/", h.Scan.Submit)
			r.Get("/", h.Scan.List)
			r.Get("/{id}", h.Scan.Get)
			r.Get("/{id}/analysis", h.Scan.GetAnalysis)
		})

		// Recommendations
		r.Route("/api/v1/recommendations", func(r chi.Router) {
			r.Get("/", h.Recommendation.List)
			r.Get("/savings", h.Recommendation.GetSavings)
			r.Get("/{id}", h.Recommendation.Get)
			r.Post("/{id}/dismiss", h.Recommendation.Dismiss)
		})

		// Findings
		r.Get("/api/v1/findings", h.Finding.List)

		// Remediations
		r.Route("/api/v1/remediations", func(r chi.Router) {
			r.Post("/", h.Remediation.Create)
			r.Get("/", h.Remediation.List)
			r.Get("/pending", h.Remediation.ListPending)
			r.Get("/summary", h.Remediation.GetSummary)
			r.Get("/{id}", h.Remediation.Get)
			r.Post("/{id}/execute", h.Remediation.Execute)
			r.Post("/{id}/approve", h.Remediation.Approve)
		})

		// SafeOps
		r.Route("/api/v1/safeops", func(r chi.Router) {
			r.Post("/check", h.SafeOps.Check)
			r.Post("/filter", h.SafeOps.Filter)
		})

		// Circuit breakers
		r.Route("/api/v1/breakers", func(r chi.Router) {
			r.Get("/{tenantID}", h.Breaker.GetStatus)
			r.Post("/{tenantID}/reset", h.Breaker.Reset)
		})

		// Guards
		r.Post("/api/v1/guards/check", h.Guard.Check)

		// Tenant settings
		r.Route("/api/v1/settings", func(r chi.Router) {
			r.Get("/", h.Settings.Get)
			r.Put("/", h.Settings.Update)
			r.Delete("/", h.Settings.Reset)
		})

		// Spend ledger
		r.Route("/api/v1/spend", func(r chi.Router) {
			r.Post("/costs", h.Spend.RecordCost)
			r.Get("/daily", h.Spend.GetDaily)
			r.Get("/monthly", h.Spend.GetMonthly)
			r.Get("/savings", h.Spend.ListSavings)
		})

		// Notifications
		r.Route("/api/v1/notifications", func(r chi.Router) {
			r.Get("/channels", h.Notification.ListChannels)
			r.Put("/channels", h.Notification.ConfigureChannel)
			r.Get("/history", h.Notification.GetHistory)
		})
	})

	return r
}
