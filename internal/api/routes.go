package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/modules", s.handleListModules)
		r.Get("/modules/{id}", s.handleModuleDetail)

		r.Get("/learners", s.handleListLearners)
		r.Post("/learners", s.handleCreateLearner)
		r.Get("/learners/{id}", s.handleGetLearner)
		r.Delete("/learners/{id}", s.handleDeleteLearner)
		r.Post("/learners/{id}/placement", s.handlePlacement)
		r.Get("/learners/{id}/plan", s.handleSessionPlan)
		r.Get("/learners/{id}/stats", s.handleLearnerStats)

		r.Post("/attempts", s.handleSubmitAttempt)
	})

	return r
}
