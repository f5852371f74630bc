package api

import (
	"encoding/json"
	"net/http"

	"github.com/barmentor/barmentor/internal/logger"
	"github.com/barmentor/barmentor/internal/services"
)

// Server holds the service dependencies for the HTTP API.
type Server struct {
	LearnerService  services.LearnerService
	ContentService  services.ContentService
	PracticeService services.PracticeService
	StatsService    services.StatsService
}

func respondJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.FromContext(r.Context()).Error("failed to encode response: %v", err)
	}
}

func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
