package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/agencyops/internal/http/auth"
	"github.com/MrJamesThe3rd/agencyops/internal/http/forecast"
	"github.com/MrJamesThe3rd/agencyops/internal/http/matching"
)

type Options struct {
	AllowedOrigins []string
	// JWTSecret turns on bearer authentication for /api/v1 when non-empty.
	JWTSecret string
}

func New(
	forecastV1 *forecast.Handler,
	aliasesV1 *matching.Handler,
	opts Options,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.RequestID)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.JWTSecret != "" {
			r.Use(auth.Middleware([]byte(opts.JWTSecret)))
		}

		r.Route("/forecast", forecastV1.Routes)

		r.Route("/aliases", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			aliasesV1.Routes(r)
		})
	})

	return router
}
