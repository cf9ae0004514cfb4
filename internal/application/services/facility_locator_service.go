package services

import (
	"context"
	"sort"
	"time"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/providers"
	"github.com/carescript/backend/internal/domain/repositories"
	"github.com/carescript/backend/internal/infrastructure/observability"
	"github.com/carescript/backend/pkg/geo"
)

// DefaultMatchLimit caps nearest-facility results when the caller does not
// supply a limit.
const DefaultMatchLimit = 30

// ResolvedLocation is a geocode-cache answer. FromCache marks results served
// from the facility record without a provider call; useful for observability
// and tests, not behavior-changing.
type ResolvedLocation struct {
	Location  entities.Location `json:"location"`
	FromCache bool              `json:"from_cache"`
}

// FacilityLocatorService handles facility geocoding, the facility-scoped
// geocode cache, and nearest-facility matching.
type FacilityLocatorService struct {
	repo     repositories.FacilityRepository
	geocoder providers.GeolocationProvider
}

// NewFacilityLocatorService creates a new facility locator service
func NewFacilityLocatorService(repo repositories.FacilityRepository, geocoder providers.GeolocationProvider) *FacilityLocatorService {
	return &FacilityLocatorService{
		repo:     repo,
		geocoder: geocoder,
	}
}

// ResolveFacility returns the facility's coordinates, geocoding and caching
// them on the facility record on first resolution. A facility, once
// resolved, is never re-geocoded here: coordinates for a fixed address do
// not change, so no expiry policy is needed. Callers must clear the cached
// fields through the data layer if an address ever changes.
func (s *FacilityLocatorService) ResolveFacility(ctx context.Context, facilityID string) (*ResolvedLocation, error) {
	facility, err := s.repo.GetByID(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	if facility.Geocoded() {
		return &ResolvedLocation{Location: *facility.Location, FromCache: true}, nil
	}

	location, err := s.geocoder.Geocode(ctx, facility.Address)
	if err != nil {
		// No partial writes; the record stays "not yet geocoded".
		return nil, err
	}

	if err := s.repo.SaveLocation(ctx, facility.ID, *location, time.Now()); err != nil {
		return nil, err
	}

	return &ResolvedLocation{Location: *location, FromCache: false}, nil
}

// GeocodeAddress resolves an ad hoc address. User queries are too varied to
// cache profitably, so this path never caches.
func (s *FacilityLocatorService) GeocodeAddress(ctx context.Context, address string) (*entities.Location, error) {
	return s.geocoder.Geocode(ctx, address)
}

// Match returns a distance-sorted, limited list of facilities for a query
// address, region, and set of boolean capability filters.
func (s *FacilityLocatorService) Match(ctx context.Context, query repositories.MatchQuery) ([]*entities.FacilityMatch, error) {
	if query.Limit <= 0 {
		return []*entities.FacilityMatch{}, nil
	}

	origin, err := s.geocoder.Geocode(ctx, query.QueryAddress)
	if err != nil {
		return nil, err
	}

	candidates, err := s.repo.Search(ctx, query.Region, query.Filters)
	if err != nil {
		return nil, err
	}

	matches := make([]*entities.FacilityMatch, 0, len(candidates))
	for _, facility := range candidates {
		if !facility.Geocoded() {
			// The repository query already excludes these; guard anyway.
			continue
		}
		miles := geo.Miles(
			origin.Latitude, origin.Longitude,
			facility.Location.Latitude, facility.Location.Longitude,
		)
		matches = append(matches, &entities.FacilityMatch{
			Facility:      facility,
			DistanceMiles: geo.RoundMiles(miles),
		})
	}

	// Ties keep repository order; the stable sort is the tie-break policy.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceMiles < matches[j].DistanceMiles
	})

	if len(matches) > query.Limit {
		matches = matches[:query.Limit]
	}

	observability.GetLogger().Debug().
		Str("region", query.Region).
		Int("candidates", len(candidates)).
		Int("matches", len(matches)).
		Msg("facility match completed")

	return matches, nil
}
