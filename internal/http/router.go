package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/penny/internal/http/auth"
	"github.com/MrJamesThe3rd/penny/internal/http/entry"
	"github.com/MrJamesThe3rd/penny/internal/http/importcsv"
	"github.com/MrJamesThe3rd/penny/internal/http/series"
	"github.com/MrJamesThe3rd/penny/internal/http/summary"
	"github.com/MrJamesThe3rd/penny/internal/identity"
)

func New(
	jwtSecret string,
	resolver *identity.Resolver,
	entriesV1 *entry.Handler,
	summariesV1 *summary.Handler,
	seriesV1 *series.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Middleware(jwtSecret, resolver))

		r.Route("/entries", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			entriesV1.Routes(r)
		})

		r.Route("/summaries", func(r chi.Router) {
			summariesV1.Routes(r)
		})

		r.Route("/series", func(r chi.Router) {
			seriesV1.Routes(r)
		})

		r.Route("/import", importV1.Routes)
	})

	return router
}
