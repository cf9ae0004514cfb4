package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/carescript/backend/internal/application/services"
	"github.com/carescript/backend/internal/domain/repositories"
	apperrors "github.com/carescript/backend/pkg/errors"
)

// GeoHandler handles the facility-geocoding endpoint. Three request shapes
// are distinguished by the action field: "facility" (cache-or-geocode a
// known facility), "user" (ad hoc geocode, never cached), and "nearest"
// (the facility matcher).
type GeoHandler struct {
	locator *services.FacilityLocatorService
}

// NewGeoHandler creates a new geo handler
func NewGeoHandler(locator *services.FacilityLocatorService) *GeoHandler {
	return &GeoHandler{locator: locator}
}

// geoRequest is the action envelope. Each action reads its own named
// fields; unknown extra fields are ignored.
type geoRequest struct {
	Action     string          `json:"action"`
	FacilityID string          `json:"facility_id"`
	Address    string          `json:"address"`
	Region     string          `json:"region"`
	Filters    map[string]bool `json:"filters"`
	Limit      *int            `json:"limit"`
}

// Handle handles POST /api/geo
func (h *GeoHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var req geoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	switch req.Action {
	case "facility":
		h.resolveFacility(w, r, req)
	case "user":
		h.geocodeUserAddress(w, r, req)
	case "nearest":
		h.nearest(w, r, req)
	default:
		respondWithError(w, http.StatusBadRequest, "action must be one of facility, user, nearest")
	}
}

func (h *GeoHandler) resolveFacility(w http.ResponseWriter, r *http.Request, req geoRequest) {
	if strings.TrimSpace(req.FacilityID) == "" {
		respondWithError(w, http.StatusBadRequest, "facility_id is required")
		return
	}

	resolved, err := h.locator.ResolveFacility(r.Context(), req.FacilityID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resolved)
}

func (h *GeoHandler) geocodeUserAddress(w http.ResponseWriter, r *http.Request, req geoRequest) {
	if strings.TrimSpace(req.Address) == "" {
		respondWithError(w, http.StatusBadRequest, "address is required")
		return
	}

	location, err := h.locator.GeocodeAddress(r.Context(), req.Address)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"location": location,
	})
}

func (h *GeoHandler) nearest(w http.ResponseWriter, r *http.Request, req geoRequest) {
	if strings.TrimSpace(req.Address) == "" {
		respondWithError(w, http.StatusBadRequest, "address is required")
		return
	}
	if strings.TrimSpace(req.Region) == "" {
		respondWithError(w, http.StatusBadRequest, "region is required")
		return
	}

	limit := services.DefaultMatchLimit
	if req.Limit != nil {
		limit = *req.Limit
	}

	matches, err := h.locator.Match(r.Context(), repositories.MatchQuery{
		QueryAddress: req.Address,
		Region:       req.Region,
		Filters:      req.Filters,
		Limit:        limit,
	})
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"matches": matches,
		"count":   len(matches),
	})
}

// Helper functions
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps the error taxonomy onto HTTP statuses.
func respondWithAppError(w http.ResponseWriter, err error) {
	var message string
	if appErr, ok := err.(*apperrors.AppError); ok {
		message = appErr.Message
	} else {
		message = "internal server error"
	}

	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusBadRequest, message)
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, message)
	case apperrors.ErrorTypeNoResult:
		respondWithError(w, http.StatusUnprocessableEntity, message)
	case apperrors.ErrorTypeRequestDenied, apperrors.ErrorTypeTransient, apperrors.ErrorTypeProvider:
		respondWithError(w, http.StatusBadGateway, message)
	default:
		respondWithError(w, http.StatusInternalServerError, message)
	}
}
