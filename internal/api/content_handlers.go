package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) handleListModules(w http.ResponseWriter, r *http.Request) {
	modules, err := s.ContentService.ListModules(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"modules": modules})
}

func (s *Server) handleModuleDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.ContentService.GetModuleDetail(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, detail)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
