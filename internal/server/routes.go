package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(cors)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/analyze", s.handleAnalyze)
		r.Get("/ecosystems", s.handleEcosystems)

		r.Route("/radars", func(r chi.Router) {
			r.Get("/", s.handleListRadars)
			r.Get("/{id}", s.handleGetRadar)
			r.Put("/{id}", s.handlePutRadar)
			r.Delete("/{id}", s.handleDeleteRadar)
		})
	})

	return r
}
