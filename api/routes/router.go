package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmarroquin/freightops-backend/api/controllers"
	"github.com/dmarroquin/freightops-backend/api/middleware"
	"github.com/dmarroquin/freightops-backend/internal/commissions"
	"github.com/dmarroquin/freightops-backend/internal/leads"
	"github.com/dmarroquin/freightops-backend/internal/policies"
	"github.com/dmarroquin/freightops-backend/pkg/config"
	"github.com/dmarroquin/freightops-backend/pkg/db"
	"github.com/dmarroquin/freightops-backend/pkg/logger"
	"github.com/dmarroquin/freightops-backend/pkg/redis"
)

// RouterParams carry everything the HTTP surface depends on.
type RouterParams struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          db.Pinger
	Redis       *redis.Client
	Leads       leads.Service
	Policies    policies.Service
	Commissions commissions.Service
	Metrics     prometheus.Gatherer
}

// NewRouter builds the chi router for the API binary.
func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.ActorContext(p.Logger),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.Logger, p.DB, p.Redis))
	})

	if p.Metrics != nil {
		r.Method(http.MethodGet, "/metrics",
			promhttp.HandlerFor(p.Metrics, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/leads", func(r chi.Router) {
			r.Patch("/{leadId}/status", controllers.UpdateLeadStatus(p.Leads, p.Logger))
		})

		r.Route("/commissions", func(r chi.Router) {
			r.Get("/monthly/user/{userId}", controllers.MonthlyCommission(p.Commissions, p.Logger))
			r.Get("/monthly/user/{userId}/{month}", controllers.MonthlyCommission(p.Commissions, p.Logger))

			r.Route("/policy", func(r chi.Router) {
				r.Post("/", controllers.CreatePolicy(p.Policies, p.Logger))
				r.Patch("/{policyId}/activate", controllers.ActivatePolicy(p.Policies, p.Logger))
				r.Patch("/{policyId}/archive", controllers.ArchivePolicy(p.Policies, p.Logger))
			})
		})
	})

	return r
}
