package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/cotizaplus/cotiza-backend/api/controllers"
	"github.com/cotizaplus/cotiza-backend/api/middleware"
	"github.com/cotizaplus/cotiza-backend/pkg/config"
	"github.com/cotizaplus/cotiza-backend/pkg/logger"
)

// Services groups everything the router mounts.
type Services struct {
	Quotes    controllers.QuoteService
	Plans     controllers.FinancingPlanService
	Leads     controllers.LeadService
	Reports   controllers.ReportService
	Documents controllers.DocumentService
}

// NewRouter assembles the HTTP surface.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	deps map[string]controllers.Pinger,
	svcs Services,
	registry *prometheus.Registry,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
		r.Get("/cotizaciones/{id}", controllers.PublicQuoteView(svcs.Quotes, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.CompanyScope(logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Route("/cotizaciones", func(r chi.Router) {
			r.Get("/", controllers.QuotesList(svcs.Quotes, logg))
			r.Post("/", controllers.QuoteCreate(svcs.Quotes, logg))
			r.Get("/{id}", controllers.QuoteGet(svcs.Quotes, logg))
			r.Put("/{id}", controllers.QuoteUpdate(svcs.Quotes, logg))
			r.Patch("/{id}/estado", controllers.QuoteTransition(svcs.Quotes, logg))
			r.Post("/{id}/aceptar", controllers.QuoteAccept(svcs.Quotes, logg))
			r.Get("/{id}/desglose", controllers.QuoteFinancials(svcs.Quotes, logg))
			r.Post("/{id}/pdf", controllers.QuoteDocumentGenerate(svcs.Documents, logg))
			r.Get("/{id}/pdf", controllers.QuoteDocumentLatest(svcs.Documents, logg))
			r.Get("/{id}/pdf/historial", controllers.QuoteDocumentHistory(svcs.Documents, logg))
		})

		r.Route("/planes-financiamiento", func(r chi.Router) {
			r.Get("/", controllers.FinancingPlansList(svcs.Plans, logg))
			r.Post("/", controllers.FinancingPlanCreate(svcs.Plans, logg))
			r.Get("/{id}", controllers.FinancingPlanGet(svcs.Plans, logg))
			r.Put("/{id}", controllers.FinancingPlanUpdate(svcs.Plans, logg))
		})

		r.Route("/leads", func(r chi.Router) {
			r.Get("/", controllers.LeadsList(svcs.Leads, logg))
			r.Post("/", controllers.LeadCreate(svcs.Leads, logg))
			r.Get("/{id}", controllers.LeadGet(svcs.Leads, logg))
			r.Put("/{id}", controllers.LeadUpdate(svcs.Leads, logg))
		})

		r.Route("/reportes", func(r chi.Router) {
			r.Get("/resumen", controllers.ReportsSummary(svcs.Reports, logg))
			r.Get("/export.csv", controllers.ReportsExportCSV(svcs.Reports, logg))
		})
	})

	return r
}
