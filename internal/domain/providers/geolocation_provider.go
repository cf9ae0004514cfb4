package providers

import (
	"context"

	"github.com/carescript/backend/internal/domain/entities"
)

// GeolocationProvider defines the interface for geocoding services.
// Implementations surface the pkg/errors taxonomy: CONFIGURATION when the
// credential is missing, TRANSIENT on transport failure, REQUEST_DENIED on
// explicit rejection, NO_RESULT when the address matches nothing, and
// PROVIDER for any other non-success status.
type GeolocationProvider interface {
	// Geocode converts a free-text address to coordinates
	Geocode(ctx context.Context, address string) (*entities.Location, error)
}

// RouteProvider defines the interface for road-distance services.
type RouteProvider interface {
	// DrivingDistance returns the road distance and duration between two
	// free-text addresses along with the provider's per-pair status.
	DrivingDistance(ctx context.Context, origin, destination string) (*DrivingResult, error)
}

// DrivingResult holds a road-distance provider response for a single pair.
// Distance and Duration are human-readable texts and are empty unless
// Status is StatusOK.
type DrivingResult struct {
	Distance string
	Duration string
	Status   string
}

// StatusOK is the per-pair success status shared by the route provider
// implementations.
const StatusOK = "OK"
