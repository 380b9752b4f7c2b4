// WasteGate API server.
//
//	@title			WasteGate API
//	@version		1.0
//	@description	Cloud waste remediation with deterministic classification and layered execution safety.
//	@BasePath		/api/v1
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	_ "github.com/wastegate/wastegate/docs"
	"github.com/wastegate/wastegate/internal/api/handlers"
	"github.com/wastegate/wastegate/internal/api/router"
	"github.com/wastegate/wastegate/internal/breaker"
	"github.com/wastegate/wastegate/internal/config"
	"github.com/wastegate/wastegate/internal/guard"
	"github.com/wastegate/wastegate/internal/pkg/logger"
	"github.com/wastegate/wastegate/internal/pkg/validator"
	"github.com/wastegate/wastegate/internal/repository/postgres"
	"github.com/wastegate/wastegate/internal/safeops"
	"github.com/wastegate/wastegate/internal/services"
	"github.com/wastegate/wastegate/internal/worker"
	"github.com/wastegate/wastegate/migrations"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "wastegate-api: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	log := logger.New(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
	})
	log.WithFields(map[string]interface{}{
		"environment": cfg.Server.Environment,
		"driver":      cfg.Database.Driver,
	}).Info("starting wastegate api")

	db, err := postgres.New(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	applied, err := postgres.RunMigrations(db, migrations.GetFS())
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if applied > 0 {
		log.Infof("applied %d migrations", applied)
	}

	// Repositories
	classificationRepo := postgres.NewClassificationRepository(db)
	remediationRepo := postgres.NewRemediationRepository(db)
	spendRepo := postgres.NewSpendRepository(db)
	tenantRepo := postgres.NewTenantRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)
	userRepo := postgres.NewUserRepository(db)

	// Breaker state store: Redis when configured, otherwise process-local.
	var store breaker.Store
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		err := rdb.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer rdb.Close()
		store = breaker.NewRedisStore(rdb, cfg.Redis.KeyPrefix)
		log.Info("breaker state store: redis")
	} else {
		store = breaker.NewMemoryStore()
		log.Info("breaker state store: memory")
	}

	breakerDefaults := breaker.Settings{
		FailureThreshold:   cfg.Breaker.FailureThreshold,
		RecoveryTimeout:    cfg.Breaker.RecoveryTimeout,
		MaxDailySavingsUSD: cfg.Breaker.MaxDailySavingsUSD,
	}

	// Services. The settings source is attached to the cache after the
	// tenant service exists; the cache itself is a tenant-service dependency
	// so settings updates can invalidate cached breakers.
	userService := services.NewUserService(userRepo, cfg, log)
	classificationService := services.NewClassificationService(classificationRepo, log)
	analysisService := services.NewAnalysisService(classificationService, cfg, log)
	spendService := services.NewSpendService(spendRepo, log)
	notificationService := services.NewNotificationService(notificationRepo, cfg, log)

	breakerCache, err := breaker.NewTenantCache(cfg.Breaker.CacheCapacity, store, breakerDefaults, nil, log)
	if err != nil {
		return fmt.Errorf("failed to build breaker cache: %w", err)
	}
	tenantService := services.NewTenantService(tenantRepo, cfg, breakerCache, log)
	breakerCache.SetSettingsSource(services.BreakerSettingsSource(tenantService))

	guards := guard.NewCoordinator(
		spendRepo,
		services.NewGuardSettingsSource(tenantService),
		breakerCache,
		notificationService,
		log,
	)

	rules := safeops.DefaultRuleset()
	if cfg.SafeOps.RulesPath != "" {
		rules, err = safeops.LoadRules(cfg.SafeOps.RulesPath)
		if err != nil {
			return fmt.Errorf("failed to load safety rules: %w", err)
		}
	}
	if cfg.SafeOps.MinAgeEnabled {
		rules = rules.WithMinAge(true, cfg.SafeOps.MinAgeDays)
	}
	interceptor := safeops.NewInterceptor(rules, log)

	executor := services.NewSimulatedExecutor(log)
	remediationService := services.NewRemediationService(
		remediationRepo,
		classificationService,
		interceptor,
		guards,
		breakerCache,
		tenantService,
		spendService,
		notificationService,
		executor,
		log,
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.Jobs.Enabled {
		jobs := services.NewJobService(cfg, classificationService, spendService, tenantService, notificationService, log)
		if err := jobs.Start(ctx); err != nil {
			return fmt.Errorf("failed to start scheduled jobs: %w", err)
		}
		defer jobs.Stop()
	}

	reporter := worker.NewBreakerReporter(breakerCache, cfg.Worker.ReportInterval, log)
	go reporter.Start(ctx)

	val := validator.New()
	h := &router.Handlers{
		Health:         handlers.NewHealthHandler(db, log),
		Auth:           handlers.NewAuthHandler(userService, cfg, log, val),
		Scan:           handlers.NewScanHandler(classificationService, analysisService, log, val),
		Recommendation: handlers.NewRecommendationHandler(classificationService, log),
		Finding:        handlers.NewFindingHandler(classificationService, log),
		Remediation:    handlers.NewRemediationHandler(remediationService, log, val),
		SafeOps:        handlers.NewSafeOpsHandler(interceptor, log, val),
		Breaker:        handlers.NewBreakerHandler(breakerCache, log),
		Guard:          handlers.NewGuardHandler(guards, log, val),
		Settings:       handlers.NewSettingsHandler(tenantService, log, val),
		Spend:          handlers.NewSpendHandler(spendService, log, val),
		Notification:   handlers.NewNotificationHandler(notificationService, log, val),
	}

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infof("listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
