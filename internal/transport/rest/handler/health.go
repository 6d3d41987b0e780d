package handler

import (
	"context"
	"net/http"
	"time"

	"redlight/internal/model"
	"redlight/internal/repository"
)

// HealthHandler serves the liveness probe
type HealthHandler struct {
	repo      repository.FeedbackRepo
	aiEnabled bool
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(repo repository.FeedbackRepo, aiEnabled bool) *HealthHandler {
	return &HealthHandler{repo: repo, aiEnabled: aiEnabled}
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, model.HealthResponse{
		OK:               true,
		Timestamp:        time.Now().UTC(),
		AIEnabled:        h.aiEnabled,
		StorageConnected: h.repo.Ping(ctx) == nil,
	})
}
