package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/providers"
	"github.com/carescript/backend/internal/infrastructure/observability"
	apperrors "github.com/carescript/backend/pkg/errors"
	"github.com/carescript/backend/pkg/geo"
)

const routeCacheTTL = 60 * 60 * 24

// RouteService composes the road-distance provider and the geocoder to
// answer distance lookups between two free-text addresses.
type RouteService struct {
	routes   providers.RouteProvider
	geocoder providers.GeolocationProvider
	cache    providers.CacheProvider
}

// NewRouteService creates a new route service. The cache is optional.
func NewRouteService(routes providers.RouteProvider, geocoder providers.GeolocationProvider, cache providers.CacheProvider) *RouteService {
	return &RouteService{
		routes:   routes,
		geocoder: geocoder,
		cache:    cache,
	}
}

// Distance returns the driving distance/duration and straight-line distance
// between origin and destination. The three provider calls have no data
// dependency and are issued concurrently. Partial results are preferred over
// failing the whole request: a non-success per-pair status leaves the
// driving fields nil, and a failed geocode leaves StraightMiles nil. The
// call fails only on a configuration fault common to the sub-calls.
func (s *RouteService) Distance(ctx context.Context, origin, destination string) (*entities.RouteDistance, error) {
	if strings.TrimSpace(origin) == "" || strings.TrimSpace(destination) == "" {
		return nil, apperrors.NewValidationError("origin and destination are required")
	}

	cacheKey := routeCacheKey(origin, destination)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var result entities.RouteDistance
			if err := json.Unmarshal(cached, &result); err == nil {
				return &result, nil
			}
		}
	}

	var (
		wg sync.WaitGroup

		driving    *providers.DrivingResult
		drivingErr error

		originLoc, destLoc *entities.Location
		originErr, destErr error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		driving, drivingErr = s.routes.DrivingDistance(ctx, origin, destination)
	}()
	go func() {
		defer wg.Done()
		originLoc, originErr = s.geocoder.Geocode(ctx, origin)
	}()
	go func() {
		defer wg.Done()
		destLoc, destErr = s.geocoder.Geocode(ctx, destination)
	}()
	wg.Wait()

	// A missing credential is fatal for every sub-call; surface it instead
	// of returning an empty shell.
	for _, err := range []error{drivingErr, originErr, destErr} {
		if err != nil && apperrors.IsType(err, apperrors.ErrorTypeConfiguration) {
			return nil, err
		}
	}

	logger := observability.GetLogger()
	result := &entities.RouteDistance{Status: "UNAVAILABLE"}

	switch {
	case drivingErr != nil:
		logger.Warn().Err(drivingErr).Msg("road-distance lookup failed")
	case driving != nil:
		result.Status = driving.Status
		if driving.Status == providers.StatusOK {
			distance := driving.Distance
			duration := driving.Duration
			result.DrivingDistance = &distance
			result.DrivingDuration = &duration
		}
	}

	if originErr != nil || destErr != nil {
		if originErr != nil {
			logger.Warn().Err(originErr).Msg("origin geocode failed")
		}
		if destErr != nil {
			logger.Warn().Err(destErr).Msg("destination geocode failed")
		}
	} else {
		miles := geo.RoundMiles(geo.Miles(
			originLoc.Latitude, originLoc.Longitude,
			destLoc.Latitude, destLoc.Longitude,
		))
		result.StraightMiles = &miles
	}

	// Only complete results are cached; a partial result would pin a nil
	// StraightMiles for the TTL even after the geocoder recovers.
	if s.cache != nil && result.Status == providers.StatusOK && result.StraightMiles != nil {
		if payload, err := json.Marshal(result); err == nil {
			_ = s.cache.Set(ctx, cacheKey, payload, routeCacheTTL)
		}
	}

	return result, nil
}

func routeCacheKey(origin, destination string) string {
	sum := sha256.Sum256([]byte(strings.ToLower(origin) + "|" + strings.ToLower(destination)))
	return "route:v1:" + hex.EncodeToString(sum[:])
}
