package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvledder/Portfolio-Advisor-Backend/internal/api/handlers"
	custommiddleware "github.com/mvledder/Portfolio-Advisor-Backend/internal/api/middleware"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/config"
	"github.com/mvledder/Portfolio-Advisor-Backend/internal/service"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	systemService *service.SystemService,
	wellnessService *service.WellnessService,
	recommendationService *service.RecommendationService,
	telemetryService *service.TelemetryService,
	credentialService *service.CredentialService,
	cfg *config.Config,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(custommiddleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS middleware
	corsMiddleware := custommiddleware.NewCORS(cfg.CORS.AllowedOrigins)
	r.Use(corsMiddleware.Handler)

	// API routes
	r.Route("/api", func(r chi.Router) {
		// System namespace
		r.Route("/system", func(r chi.Router) {
			systemHandler := handlers.NewSystemHandler(systemService)
			r.Get("/health", systemHandler.Health)
			r.Get("/version", systemHandler.Version)
		})

		r.Route("/wellness", func(r chi.Router) {
			wellnessHandler := handlers.NewWellnessHandler(wellnessService)
			r.Post("/score", wellnessHandler.Score)
		})

		r.Route("/recommendations", func(r chi.Router) {
			recommendationsHandler := handlers.NewRecommendationsHandler(recommendationService)
			r.Get("/", recommendationsHandler.Recommendations)
			r.Post("/retry", recommendationsHandler.RetryFallback)
			r.Get("/cached", recommendationsHandler.Cached)
		})

		// Developer namespace, guarded by API key when configured
		r.Route("/developer", func(r chi.Router) {
			r.Use(custommiddleware.APIKey(cfg.Developer.APIKey))

			developerHandler := handlers.NewDeveloperHandler(telemetryService, credentialService)
			r.Get("/telemetry", developerHandler.Telemetry)
			r.Delete("/telemetry", developerHandler.PurgeTelemetry)
			r.Get("/credential", developerHandler.Credential)
			r.Post("/credential", developerHandler.SetCredential)
		})
	})

	return r
}
