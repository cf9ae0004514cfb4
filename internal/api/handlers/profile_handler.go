package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carescript/backend/internal/api/middleware"
	"github.com/carescript/backend/internal/application/services"
)

// ProfileHandler handles the profile of the anonymous identity attached
// to the request.
type ProfileHandler struct {
	profiles *services.ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

type updateProfileRequest struct {
	Name string `json:"name"`
}

// Get handles GET /api/me
func (h *ProfileHandler) Get(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.IdentityFromContext(r.Context())
	if identityID == "" {
		respondWithError(w, http.StatusInternalServerError, "missing identity")
		return
	}

	result := h.profiles.Get(r.Context(), identityID)
	respondWithJSON(w, http.StatusOK, result)
}

// Update handles POST /api/me
func (h *ProfileHandler) Update(w http.ResponseWriter, r *http.Request) {
	identityID := middleware.IdentityFromContext(r.Context())
	if identityID == "" {
		respondWithError(w, http.StatusInternalServerError, "missing identity")
		return
	}

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondWithError(w, http.StatusBadRequest, "name is required")
		return
	}

	result := h.profiles.Update(r.Context(), identityID, name)
	respondWithJSON(w, http.StatusOK, result)
}
