package geolocation

import (
	"context"
	"strings"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/providers"
	apperrors "github.com/carescript/backend/pkg/errors"
)

// MockProvider implements a keyless geolocation provider for development and
// tests. Addresses containing a known city name resolve to that city.
type MockProvider struct{}

// NewMockProvider creates a new mock geolocation provider
func NewMockProvider() providers.GeolocationProvider {
	return &MockProvider{}
}

var mockCities = map[string]entities.Location{
	"New York":    {Latitude: 40.7128, Longitude: -74.0060},
	"Los Angeles": {Latitude: 34.0522, Longitude: -118.2437},
	"Chicago":     {Latitude: 41.8781, Longitude: -87.6298},
	"Houston":     {Latitude: 29.7604, Longitude: -95.3698},
	"Birmingham":  {Latitude: 33.5186, Longitude: -86.8104},
	"Montgomery":  {Latitude: 32.3668, Longitude: -86.3000},
	"Mobile":      {Latitude: 30.6954, Longitude: -88.0399},
}

// Geocode converts an address to coordinates (mock implementation)
func (m *MockProvider) Geocode(ctx context.Context, address string) (*entities.Location, error) {
	for city, location := range mockCities {
		if strings.Contains(address, city) {
			loc := location
			return &loc, nil
		}
	}
	return nil, apperrors.NewNoResultError("no results for address")
}
