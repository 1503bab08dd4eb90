package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/baharkarakas/budget-backend/internal/api"
	"github.com/baharkarakas/budget-backend/internal/auth"
	"github.com/baharkarakas/budget-backend/internal/config"
	"github.com/baharkarakas/budget-backend/internal/db"
	"github.com/baharkarakas/budget-backend/internal/logger"
	"github.com/baharkarakas/budget-backend/internal/metrics"
	repo "github.com/baharkarakas/budget-backend/internal/repository"
	"github.com/baharkarakas/budget-backend/internal/repository/memory"
	"github.com/baharkarakas/budget-backend/internal/repository/postgres"
	"github.com/baharkarakas/budget-backend/internal/services"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repos, closeRepos, err := openRepositories(ctx, cfg, log)
	if err != nil {
		log.Error("storage", "backend", cfg.DataBackend, "err", err)
		os.Exit(1)
	}
	defer closeRepos()

	tm := auth.NewTokenManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.JWTIssuer, cfg.AccessTTL, cfg.RefreshTTL)
	clock := services.SystemClock(cfg.Location())

	metrics.Init()
	r := api.NewRouter(api.RouterDeps{
		Cfg:        cfg,
		Log:        log,
		TM:         tm,
		UserSvc:    services.NewUserService(repos.Users, tm),
		BudgetSvc:  services.NewBudgetService(repos.Budgets, repos.AuditLogs, log),
		ExpenseSvc: services.NewExpenseService(repos.Expenses, repos.Budgets, repos.AuditLogs, clock, log),
		ReportSvc:  services.NewReportService(repos.Reports, clock),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("server starting", "port", cfg.HTTPPort, "env", cfg.Env, "backend", cfg.DataBackend, "tz", clock.Loc.String())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server", "err", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown", "err", err)
	}
}

// openRepositories selects the storage backend. The returned func releases it.
func openRepositories(ctx context.Context, cfg config.Config, log *slog.Logger) (repo.Repositories, func(), error) {
	if cfg.DataBackend == "memory" {
		log.Warn("using in-memory storage; data is lost on exit")
		return memory.New().Repositories(), func() {}, nil
	}

	if cfg.Migrate {
		if err := db.RunMigrations(cfg.DatabaseURL); err != nil {
			return repo.Repositories{}, nil, err
		}
		log.Info("migrations applied")
	}
	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return repo.Repositories{}, nil, err
	}
	return postgres.NewRepositories(pool), pool.Close, nil
}
