package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/barmentor/barmentor/internal/apperr"
	"github.com/barmentor/barmentor/internal/logger"
)

func (s *Server) handleListLearners(w http.ResponseWriter, r *http.Request) {
	learners, err := s.LearnerService.ListLearners(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"learners": learners})
}

func (s *Server) handleCreateLearner(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, apperr.BadRequest("invalid request body"))
		return
	}

	learner, err := s.LearnerService.CreateLearner(r.Context(), req.Name)
	if err != nil {
		handleError(w, r, err)
		return
	}

	logger.FromContext(r.Context()).Info("learner created: id=%s", learner.ID)
	respondJSON(w, r, http.StatusCreated, learner)
}

func (s *Server) handleGetLearner(w http.ResponseWriter, r *http.Request) {
	learner, err := s.LearnerService.GetLearner(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, learner)
}

func (s *Server) handleDeleteLearner(w http.ResponseWriter, r *http.Request) {
	if err := s.LearnerService.DeleteLearner(r.Context(), chi.URLParam(r, "id")); err != nil {
		handleError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePlacement(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Correct int `json:"correct"`
		Total   int `json:"total"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, apperr.BadRequest("invalid request body"))
		return
	}

	learner, err := s.LearnerService.ApplyPlacement(r.Context(), chi.URLParam(r, "id"), req.Correct, req.Total)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, learner)
}
