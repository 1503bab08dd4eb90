package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/baharkarakas/budget-backend/internal/api/handlers"
	"github.com/baharkarakas/budget-backend/internal/auth"
	"github.com/baharkarakas/budget-backend/internal/config"
	"github.com/baharkarakas/budget-backend/internal/metrics"
	"github.com/baharkarakas/budget-backend/internal/middleware"
	"github.com/baharkarakas/budget-backend/internal/models"
	"github.com/baharkarakas/budget-backend/internal/services"
)

type RouterDeps struct {
	Cfg        config.Config
	Log        *slog.Logger
	TM         *auth.TokenManager
	UserSvc    *services.UserService
	BudgetSvc  *services.BudgetService
	ExpenseSvc *services.ExpenseService
	ReportSvc  *services.ReportService
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Log
	if log == nil {
		log = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.Recover, middleware.Logging(log), middleware.HTTPMetrics)
	r.Use(middleware.RateLimit(d.Cfg.RateRPS))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: d.Cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	}))
	r.Use(chimw.StripSlashes)

	// health & metrics
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { _, _ = w.Write([]byte("ok")) })
	r.Handle("/metrics", metrics.Handler())

	authH := handlers.NewAuthHandler(d.UserSvc, log)
	userH := &handlers.UserHandler{Users: d.UserSvc, Log: log, PageSize: d.Cfg.PageSize}
	budgetH := &handlers.BudgetHandler{Svc: d.BudgetSvc, Log: log, PageSize: d.Cfg.PageSize}
	expenseH := &handlers.ExpenseHandler{Svc: d.ExpenseSvc, Log: log, PageSize: d.Cfg.PageSize}
	reportH := &handlers.ReportHandler{Svc: d.ReportSvc, Log: log}
	am := middleware.NewAuthMiddleware(d.TM, d.Cfg.Env)

	r.Route("/api/v1", func(r chi.Router) {
		// ---------- auth ----------
		r.Post("/auth/register", authH.Register)
		r.Post("/auth/login", authH.Login)
		r.Post("/auth/refresh", authH.Refresh)

		r.Group(func(r chi.Router) {
			r.Use(am.Auth)

			// ---------- users ----------
			r.Get("/users/me", userH.Me)
			r.With(middleware.RequireRole(models.RoleAdmin)).Get("/users", userH.List)

			// ---------- budgets ----------
			r.Route("/budgets", func(r chi.Router) {
				r.Get("/", budgetH.List)
				r.Post("/", budgetH.Create)
				r.Get("/{id}", budgetH.Get)
				r.Put("/{id}", budgetH.Replace)
				r.Patch("/{id}", budgetH.Patch)
				r.Delete("/{id}", budgetH.Delete)
			})

			// ---------- expenses ----------
			r.Route("/expenses", func(r chi.Router) {
				r.Get("/", expenseH.List)
				r.Post("/", expenseH.Create)
				r.Get("/{id}", expenseH.Get)
				r.Put("/{id}", expenseH.Replace)
				r.Patch("/{id}", expenseH.Patch)
				r.Delete("/{id}", expenseH.Delete)
			})

			// ---------- reports ----------
			r.Get("/reports/monthly", reportH.Monthly)
			r.Get("/reports/weekly", reportH.Weekly)
		})
	})

	return r
}
