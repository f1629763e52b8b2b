package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pausely/pausely/internal/api/handlers"
	"github.com/pausely/pausely/internal/api/router"
	"github.com/pausely/pausely/internal/auth"
	"github.com/pausely/pausely/internal/config"
	"github.com/pausely/pausely/internal/integrations"
	"github.com/pausely/pausely/internal/pkg/logger"
	"github.com/pausely/pausely/internal/pkg/validator"
	"github.com/pausely/pausely/internal/repository/postgres"
	"github.com/pausely/pausely/internal/services"
	"github.com/pausely/pausely/internal/templates"
	"github.com/pausely/pausely/internal/worker"
	"github.com/pausely/pausely/migrations"
)

// @title Pausely API
// @version 1.0
// @description Subscription tracking, pause recommendations and cancellation workflows.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})

	db, err := postgres.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := postgres.RunMigrations(db, migrations.GetFS()); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	catalog, err := templates.Load()
	if err != nil {
		log.Fatalf("Failed to load cancellation templates: %v", err)
	}

	// Repositories
	userRepo := postgres.NewUserRepository(db)
	subscriptionRepo := postgres.NewSubscriptionRepository(db)
	cancellationRepo := postgres.NewCancellationRepository(db)
	insightRepo := postgres.NewInsightRepository(db)

	// Services
	limiter := auth.NewRateLimiter(auth.RateLimiterConfig{
		MaxAttempts: cfg.Auth.RateLimitMaxAttempts,
		Window:      cfg.Auth.RateLimitWindow,
		BaseDelay:   cfg.Auth.RateLimitBaseDelay,
		MaxDelay:    cfg.Auth.RateLimitMaxDelay,
	})
	lemon := integrations.NewLemonSqueezy(cfg.Billing.StoreSlug, cfg.Billing.ProVariantID, cfg.Billing.WebhookSecret)

	authService := services.NewAuthService(userRepo, limiter, cfg.Auth, log)
	userService := services.NewUserService(userRepo, log)
	subscriptionService := services.NewSubscriptionService(subscriptionRepo, userRepo, log)
	pausingService := services.NewPausingService(subscriptionRepo, log)
	cancellationService := services.NewCancellationService(cancellationRepo, subscriptionRepo, userRepo, catalog, log)
	insightService := services.NewInsightService(insightRepo, log)
	briefingService := services.NewBriefingService(userRepo, subscriptionRepo, insightRepo, log)
	billingService := services.NewBillingService(userRepo, lemon, log)

	val := validator.New()

	h := &router.Handlers{
		Health:       handlers.NewHealthHandler(db, log),
		Auth:         handlers.NewAuthHandler(authService, userService, cfg, log, val),
		Profile:      handlers.NewProfileHandler(userService, log, val),
		Subscription: handlers.NewSubscriptionHandler(subscriptionService, log, val),
		Pausing:      handlers.NewPausingHandler(pausingService, log),
		Cancellation: handlers.NewCancellationHandler(cancellationService, log, val),
		Insight:      handlers.NewInsightHandler(insightService, log),
		Billing:      handlers.NewBillingHandler(billingService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var briefing *worker.BriefingWorker
	if cfg.Briefing.Enabled {
		briefing = worker.NewBriefingWorker(briefingService, cfg.Briefing.Schedule, log)
		if err := briefing.Start(ctx); err != nil {
			log.Fatalf("Failed to start briefing worker: %v", err)
		}
	}

	go func() {
		log.Infof("Starting server on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server")
	cancel()
	if briefing != nil {
		briefing.Stop()
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}

	log.Info("Server stopped")
}
