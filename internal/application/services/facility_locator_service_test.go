package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carescript/backend/internal/application/services"
	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/repositories"
	apperrors "github.com/carescript/backend/pkg/errors"
)

type stubGeocoder struct {
	locations map[string]entities.Location
	err       error
	calls     int
}

func (s *stubGeocoder) Geocode(ctx context.Context, address string) (*entities.Location, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if loc, ok := s.locations[address]; ok {
		return &loc, nil
	}
	return nil, apperrors.NewNoResultError("no results for address")
}

type stubFacilityRepo struct {
	facilities map[string]*entities.Facility
	order      []string
	searchErr  error
	saved      int
}

func newStubFacilityRepo(facilities ...*entities.Facility) *stubFacilityRepo {
	repo := &stubFacilityRepo{facilities: map[string]*entities.Facility{}}
	for _, f := range facilities {
		repo.facilities[f.ID] = f
		repo.order = append(repo.order, f.ID)
	}
	return repo
}

func (r *stubFacilityRepo) Create(ctx context.Context, facility *entities.Facility) error {
	r.facilities[facility.ID] = facility
	r.order = append(r.order, facility.ID)
	return nil
}

func (r *stubFacilityRepo) GetByID(ctx context.Context, id string) (*entities.Facility, error) {
	facility, ok := r.facilities[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("facility not found")
	}
	return facility, nil
}

func (r *stubFacilityRepo) SaveLocation(ctx context.Context, id string, location entities.Location, geocodedAt time.Time) error {
	facility, ok := r.facilities[id]
	if !ok {
		return apperrors.NewNotFoundError("facility not found")
	}
	loc := location
	facility.Location = &loc
	facility.GeocodedAt = &geocodedAt
	r.saved++
	return nil
}

func (r *stubFacilityRepo) Search(ctx context.Context, region string, filters map[string]bool) ([]*entities.Facility, error) {
	if r.searchErr != nil {
		return nil, r.searchErr
	}
	var out []*entities.Facility
	for _, id := range r.order {
		facility := r.facilities[id]
		if facility.Region != region || !facility.Geocoded() {
			continue
		}
		matches := true
		for name, required := range filters {
			if required && !facility.HasCapability(name) {
				matches = false
				break
			}
		}
		if matches {
			out = append(out, facility)
		}
	}
	return out, nil
}

func (r *stubFacilityRepo) List(ctx context.Context, filter repositories.FacilityFilter) ([]*entities.Facility, error) {
	var out []*entities.Facility
	for _, id := range r.order {
		out = append(out, r.facilities[id])
	}
	return out, nil
}

func alabamaFixture() *stubFacilityRepo {
	loc := func(lat, lng float64) *entities.Location {
		return &entities.Location{Latitude: lat, Longitude: lng}
	}
	return newStubFacilityRepo(
		// Distances measured from Birmingham (33.5186, -86.8104).
		&entities.Facility{ID: "al-1", Region: "AL", Capabilities: map[string]bool{"telehealth": true, "medicaid": true}, Location: loc(33.5186, -86.8104)},
		&entities.Facility{ID: "al-2", Region: "AL", Capabilities: map[string]bool{"telehealth": false}, Location: loc(33.2, -87.5)},
		&entities.Facility{ID: "al-3", Region: "AL", Capabilities: map[string]bool{"telehealth": true}, Location: loc(30.6954, -88.0399)},
		&entities.Facility{ID: "al-4", Region: "AL", Capabilities: map[string]bool{"medicaid": true}, Location: loc(32.3668, -86.3)},
		&entities.Facility{ID: "al-5", Region: "AL", Capabilities: map[string]bool{"telehealth": true}, Location: loc(32.3668, -86.3)},
		&entities.Facility{ID: "ga-1", Region: "GA", Capabilities: map[string]bool{"telehealth": true}, Location: loc(33.749, -84.388)},
		&entities.Facility{ID: "al-nogeo", Region: "AL", Capabilities: map[string]bool{"telehealth": true}, Address: "100 Main St"},
	)
}

func birminghamGeocoder() *stubGeocoder {
	return &stubGeocoder{locations: map[string]entities.Location{
		"Birmingham, AL": {Latitude: 33.5186, Longitude: -86.8104},
		"100 Main St":    {Latitude: 33.0, Longitude: -86.0},
	}}
}

func TestResolveFacility_CachesAfterFirstGeocode(t *testing.T) {
	ctx := context.Background()
	repo := newStubFacilityRepo(&entities.Facility{
		ID:      "fac-1",
		Region:  "AL",
		Address: "100 Main St",
	})
	geocoder := &stubGeocoder{locations: map[string]entities.Location{
		"100 Main St": {Latitude: 33.0, Longitude: -86.0},
	}}
	service := services.NewFacilityLocatorService(repo, geocoder)

	first, err := service.ResolveFacility(ctx, "fac-1")
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, 33.0, first.Location.Latitude)
	assert.Equal(t, 1, geocoder.calls)
	assert.Equal(t, 1, repo.saved)
	require.NotNil(t, repo.facilities["fac-1"].GeocodedAt)

	second, err := service.ResolveFacility(ctx, "fac-1")
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Location, second.Location)
	// The cache hit is authoritative: no second provider call.
	assert.Equal(t, 1, geocoder.calls)
	assert.Equal(t, 1, repo.saved)
}

func TestResolveFacility_UnknownID(t *testing.T) {
	service := services.NewFacilityLocatorService(newStubFacilityRepo(), birminghamGeocoder())

	_, err := service.ResolveFacility(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
}

func TestResolveFacility_GeocodeFailureLeavesRecordUntouched(t *testing.T) {
	repo := newStubFacilityRepo(&entities.Facility{ID: "fac-1", Address: "nowhere"})
	geocoder := &stubGeocoder{err: apperrors.NewNoResultError("no results for address")}
	service := services.NewFacilityLocatorService(repo, geocoder)

	_, err := service.ResolveFacility(context.Background(), "fac-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNoResult))
	assert.Nil(t, repo.facilities["fac-1"].Location)
	assert.Equal(t, 0, repo.saved)
}

func TestMatch_FiltersSortsAndTruncates(t *testing.T) {
	service := services.NewFacilityLocatorService(alabamaFixture(), birminghamGeocoder())

	matches, err := service.Match(context.Background(), repositories.MatchQuery{
		QueryAddress: "Birmingham, AL",
		Region:       "AL",
		Filters:      map[string]bool{"telehealth": true},
		Limit:        2,
	})
	require.NoError(t, err)
	require.Len(t, matches, 2)

	for _, match := range matches {
		assert.Equal(t, "AL", match.Facility.Region)
		assert.True(t, match.Facility.HasCapability("telehealth"))
		assert.NotNil(t, match.Facility.Location)
	}
	assert.LessOrEqual(t, matches[0].DistanceMiles, matches[1].DistanceMiles)
	// al-1 sits at the query point; al-5 (Montgomery) is nearer than al-3 (Mobile).
	assert.Equal(t, "al-1", matches[0].Facility.ID)
	assert.Equal(t, "al-5", matches[1].Facility.ID)
	assert.Equal(t, 0.0, matches[0].DistanceMiles)
}

func TestMatch_FalseFlagMeansDontCare(t *testing.T) {
	service := services.NewFacilityLocatorService(alabamaFixture(), birminghamGeocoder())

	matches, err := service.Match(context.Background(), repositories.MatchQuery{
		QueryAddress: "Birmingham, AL",
		Region:       "AL",
		Filters:      map[string]bool{"telehealth": false},
		Limit:        30,
	})
	require.NoError(t, err)
	// All geocoded AL facilities qualify; a false flag is not a constraint.
	assert.Len(t, matches, 5)
}

func TestMatch_LimitZeroReturnsEmpty(t *testing.T) {
	geocoder := birminghamGeocoder()
	service := services.NewFacilityLocatorService(alabamaFixture(), geocoder)

	matches, err := service.Match(context.Background(), repositories.MatchQuery{
		QueryAddress: "Birmingham, AL",
		Region:       "AL",
		Limit:        0,
	})
	require.NoError(t, err)
	assert.Empty(t, matches)
	assert.Equal(t, 0, geocoder.calls)
}

func TestMatch_PropagatesGeocoderFailure(t *testing.T) {
	geocoder := &stubGeocoder{err: apperrors.NewRequestDeniedError("REQUEST_DENIED")}
	service := services.NewFacilityLocatorService(alabamaFixture(), geocoder)

	_, err := service.Match(context.Background(), repositories.MatchQuery{
		QueryAddress: "Birmingham, AL",
		Region:       "AL",
		Limit:        10,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRequestDenied))
}

func TestMatch_PropagatesRepositoryFailure(t *testing.T) {
	repo := alabamaFixture()
	repo.searchErr = apperrors.NewRepositoryError("facility query failed", nil)
	service := services.NewFacilityLocatorService(repo, birminghamGeocoder())

	_, err := service.Match(context.Background(), repositories.MatchQuery{
		QueryAddress: "Birmingham, AL",
		Region:       "AL",
		Limit:        10,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRepository))
}
