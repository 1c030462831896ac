package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/autocalc-backend/api/controllers"
	"github.com/angelmondragon/autocalc-backend/api/middleware"
	"github.com/angelmondragon/autocalc-backend/internal/quotes"
	"github.com/angelmondragon/autocalc-backend/internal/vehicles"
	"github.com/angelmondragon/autocalc-backend/pkg/config"
	"github.com/angelmondragon/autocalc-backend/pkg/logger"
)

// Dependencies are the services the router exposes. RedisPinger and Gatherer are optional.
type Dependencies struct {
	Quotes        quotes.Service
	Vehicles      vehicles.Service
	Jurisdictions controllers.JurisdictionCatalog
	RedisPinger   controllers.Pinger
	Gatherer      prometheus.Gatherer
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Dependencies) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.HTTP.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.RedisPinger))
	})

	if cfg.Telemetry.MetricsEnabled && deps.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/scenarios/evaluate", controllers.ScenarioEvaluate(deps.Quotes, logg))
		r.Post("/weights/resolve", controllers.WeightResolve(deps.Vehicles, logg))
		r.Get("/vehicles/{vin}", controllers.VehicleDecode(deps.Vehicles, logg))
		r.Get("/jurisdictions", controllers.JurisdictionList(deps.Jurisdictions, logg))
		r.Get("/jurisdictions/{code}", controllers.JurisdictionGet(deps.Jurisdictions, logg))
		r.Get("/loan-terms/normalize", controllers.LoanTermNormalize(logg))
	})

	return r
}
