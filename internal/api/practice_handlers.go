package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/barmentor/barmentor/internal/apperr"
	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/services"
)

func (s *Server) handleSessionPlan(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	learnerID := chi.URLParam(r, "id")
	moduleID := r.URL.Query().Get("module")
	if moduleID == "" {
		handleError(w, r, apperr.Validation("module", "query parameter is required"))
		return
	}

	minutes := 0.0
	if raw := r.URL.Query().Get("minutes"); raw != "" {
		parsed, err := strconv.ParseFloat(raw, 64)
		if err != nil || parsed < 0 {
			handleError(w, r, apperr.Validation("minutes", "must be a non-negative number"))
			return
		}
		minutes = parsed
	}

	plan, err := s.PracticeService.GetSessionPlan(r.Context(), learnerID, moduleID, minutes, time.Now().UTC())
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Debug("session plan returned: learner_id=%s, items=%d", learnerID, len(plan.Items))
	respondJSON(w, r, http.StatusOK, plan)
}

func (s *Server) handleSubmitAttempt(w http.ResponseWriter, r *http.Request) {
	var req struct {
		LearnerID string `json:"learner_id"`
		ItemID    string `json:"item_id"`
		Correct   bool   `json:"correct"`
		LatencyMS int64  `json:"latency_ms"`
	}
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, apperr.BadRequest("invalid request body"))
		return
	}
	if req.LearnerID == "" || req.ItemID == "" {
		handleError(w, r, apperr.Validation("attempt", "learner_id and item_id are required"))
		return
	}

	result, err := s.PracticeService.SubmitAttempt(r.Context(), services.SubmitAttemptInput{
		LearnerID: req.LearnerID,
		ItemID:    req.ItemID,
		Correct:   req.Correct,
		Latency:   time.Duration(req.LatencyMS) * time.Millisecond,
	})
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, result)
}

func (s *Server) handleLearnerStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StatsService.GetLearnerStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, stats)
}
