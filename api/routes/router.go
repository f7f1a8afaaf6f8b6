package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/igreja360/tesouraria-backend/api/controllers"
	"github.com/igreja360/tesouraria-backend/api/middleware"
	"github.com/igreja360/tesouraria-backend/internal/audit"
	"github.com/igreja360/tesouraria-backend/internal/reports"
	"github.com/igreja360/tesouraria-backend/internal/transactions"
	"github.com/igreja360/tesouraria-backend/pkg/config"
	"github.com/igreja360/tesouraria-backend/pkg/db"
	"github.com/igreja360/tesouraria-backend/pkg/logger"
	"github.com/igreja360/tesouraria-backend/pkg/redis"
)

// Deps carries everything the router wires together.
type Deps struct {
	Config       *config.Config
	Logger       *logger.Logger
	DB           db.Pinger
	Redis        *redis.Client
	Registry     *prometheus.Registry
	Recorder     audit.Recorder
	Transactions transactions.Service
	Reports      reports.Service
}

// NewRouter assembles the HTTP surface. The ledger endpoints sit behind the
// full pipeline: rate limiting first, then authentication, per the error
// taxonomy (a throttled caller never reaches token parsing).
func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Origin(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(logg, deps.DB, deps.Redis))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	policy := middleware.NewRateLimitPolicy(cfg.RateLimit)

	r.Group(func(r chi.Router) {
		r.Use(middleware.ErrorAudit(deps.Recorder))
		if deps.Redis != nil {
			r.Use(middleware.RateLimit(policy, deps.Redis, logg))
		}
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/lancamentos", func(r chi.Router) {
			r.Get("/", controllers.ListTransactions(deps.Transactions, logg))
			r.Post("/", controllers.CreateTransaction(deps.Transactions, logg))
			r.Get("/{id}", controllers.GetTransaction(deps.Transactions, logg))
			r.Put("/{id}", controllers.UpdateTransaction(deps.Transactions, logg))
			r.Delete("/{id}", controllers.DeleteTransaction(deps.Transactions, logg))
		})

		r.Get("/relatorios", controllers.MonthlyReport(deps.Reports, logg))
	})

	return r
}
