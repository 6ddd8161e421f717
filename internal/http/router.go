package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	agentHandler "github.com/kmutua/metertrack/internal/http/agent"
	assistantHandler "github.com/kmutua/metertrack/internal/http/assistant"
	intakeHandler "github.com/kmutua/metertrack/internal/http/intake"
	meterHandler "github.com/kmutua/metertrack/internal/http/meter"
	authMiddleware "github.com/kmutua/metertrack/internal/http/middleware"
	reportHandler "github.com/kmutua/metertrack/internal/http/report"
	searchHandler "github.com/kmutua/metertrack/internal/http/search"
)

func New(
	jwtSecret string,
	metersV1 *meterHandler.Handler,
	agentsV1 *agentHandler.Handler,
	reportsV1 *reportHandler.Handler,
	searchV1 *searchHandler.Handler,
	intakeV1 *intakeHandler.Handler,
	assistantV1 *assistantHandler.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "Idempotency-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(authMiddleware.RequireAuth(jwtSecret))

		r.Route("/meters", func(r chi.Router) {
			metersV1.Routes(r)
		})

		r.Route("/agents", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			agentsV1.Routes(r)
		})

		r.Route("/reports", reportsV1.Routes)

		r.Route("/search", searchV1.Routes)

		r.Route("/intake", intakeV1.Routes)

		r.Route("/assistant", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			assistantV1.Routes(r)
		})
	})

	return router
}
