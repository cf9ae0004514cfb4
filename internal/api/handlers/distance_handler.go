package handlers

import (
	"net/http"
	"strings"

	"github.com/carescript/backend/internal/application/services"
)

// DistanceHandler handles route distance lookups between two addresses.
type DistanceHandler struct {
	routes *services.RouteService
}

// NewDistanceHandler creates a new distance handler
func NewDistanceHandler(routes *services.RouteService) *DistanceHandler {
	return &DistanceHandler{routes: routes}
}

// Handle handles GET /api/distance
func (h *DistanceHandler) Handle(w http.ResponseWriter, r *http.Request) {
	origin := strings.TrimSpace(r.URL.Query().Get("origin"))
	destination := strings.TrimSpace(r.URL.Query().Get("destination"))

	if origin == "" || destination == "" {
		respondWithError(w, http.StatusBadRequest, "origin and destination are required")
		return
	}

	distance, err := h.routes.Distance(r.Context(), origin, destination)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, distance)
}
