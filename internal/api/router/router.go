package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/pausely/pausely/internal/api/handlers"
	"github.com/pausely/pausely/internal/api/middleware"
	"github.com/pausely/pausely/internal/config"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/metrics"
)

// Handlers collects every handler the router mounts.
type Handlers struct {
	Health       *handlers.HealthHandler
	Auth         *handlers.AuthHandler
	Profile      *handlers.ProfileHandler
	Subscription *handlers.SubscriptionHandler
	Pausing      *handlers.PausingHandler
	Cancellation *handlers.CancellationHandler
	Insight      *handlers.InsightHandler
	Billing      *handlers.BillingHandler
}

func New(cfg *config.Config, log *logger.Logger, h *Handlers) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	r.Use(middleware.RateLimit(100, 200)) // 100 req/sec, burst of 200

	// Public routes
	r.Group(func(r chi.Router) {
		// Swagger documentation
		r.Get("/swagger/*", httpSwagger.WrapHandler)

		// Health checks
		r.Get("/health", h.Health.Healthz)
		r.Get("/healthz", h.Health.Healthz)
		r.Get("/readyz", h.Health.Readyz)

		// Prometheus scrape endpoint
		r.Handle("/metrics", metrics.Handler())

		// Auth endpoints
		r.Post("/api/v1/auth/register", h.Auth.Register)
		r.Post("/api/v1/auth/login", h.Auth.Login)
		r.Post("/api/v1/auth/refresh", h.Auth.RefreshToken)
		r.Post("/api/v1/auth/password/reset", h.Auth.RequestPasswordReset)
		r.Post("/api/v1/auth/logout", h.Auth.Logout)

		// Billing webhook authenticates itself by signature
		r.Post("/api/v1/billing/webhook", h.Billing.Webhook)

		// Plans are public so the pricing page needs no session
		r.Get("/api/v1/billing/plans", h.Billing.Plans)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

		// Auth
		r.Get("/api/v1/auth/me", h.Auth.Me)

		// Profile
		r.Route("/api/v1/profile", func(r chi.Router) {
			r.Get("/", h.Profile.Get)
			r.Put("/", h.Profile.Update)
		})

		// Subscriptions
		r.Route("/api/v1/subscriptions", func(r chi.Router) {
			r.Get("/", h.Subscription.List)
			r.Post("/", h.Subscription.Create)
			r.Get("/summary", h.Subscription.Summary)
			r.Get("/pauses", h.Subscription.PauseHistory)
			r.Get("/{id}", h.Subscription.Get)
			r.Put("/{id}", h.Subscription.Update)
			r.Delete("/{id}", h.Subscription.Delete)
			r.Post("/{id}/pause", h.Subscription.Pause)
			r.Post("/{id}/resume", h.Subscription.Resume)
			r.Post("/{id}/cancel", h.Subscription.Cancel)
		})

		// Pause recommendations
		r.Get("/api/v1/pausing/recommendations", h.Pausing.Report)

		// Cancellation workflows
		r.Route("/api/v1/cancellations", func(r chi.Router) {
			r.Get("/", h.Cancellation.List)
			r.Post("/", h.Cancellation.Start)
			r.Get("/{id}", h.Cancellation.Get)
			r.Post("/{id}/send", h.Cancellation.Send)
			r.Post("/{id}/reply", h.Cancellation.Reply)
			r.Post("/{id}/resolve", h.Cancellation.Resolve)
			r.Get("/{id}/messages", h.Cancellation.Messages)
		})

		// Insights
		r.Route("/api/v1/insights", func(r chi.Router) {
			r.Get("/", h.Insight.List)
			r.Get("/unread", h.Insight.UnreadCount)
			r.Get("/{id}", h.Insight.Get)
			r.Delete("/{id}", h.Insight.Dismiss)
			r.Post("/{id}/read", h.Insight.MarkRead)
			r.Post("/{id}/action", h.Insight.MarkActioned)
		})

		// Billing
		r.Get("/api/v1/billing/info", h.Billing.Info)
		r.Post("/api/v1/billing/checkout", h.Billing.Checkout)
	})

	return r
}
