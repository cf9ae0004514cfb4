package repositories

import (
	"context"
	"time"

	"github.com/carescript/backend/internal/domain/entities"
)

// FacilityRepository defines the interface for facility data operations
type FacilityRepository interface {
	// Create creates a new facility
	Create(ctx context.Context, facility *entities.Facility) error

	// GetByID retrieves a facility by ID
	GetByID(ctx context.Context, id string) (*entities.Facility, error)

	// SaveLocation backfills resolved coordinates and the geocoded-at
	// timestamp onto a facility record. Single-row update; last write wins.
	SaveLocation(ctx context.Context, id string, location entities.Location, geocodedAt time.Time) error

	// Search retrieves geocoded facilities in the region that satisfy every
	// true capability flag in filters. False or absent flags do not filter.
	Search(ctx context.Context, region string, filters map[string]bool) ([]*entities.Facility, error)

	// List retrieves facilities with paging
	List(ctx context.Context, filter FacilityFilter) ([]*entities.Facility, error)
}

// FacilityFilter defines filters for listing facilities
type FacilityFilter struct {
	Region string
	Limit  int
	Offset int
}

// MatchQuery describes a nearest-facility search. Filters is an open set of
// named boolean capability flags; only flags set true constrain the result.
type MatchQuery struct {
	QueryAddress string
	Region       string
	Filters      map[string]bool
	Limit        int
}
