package geolocation_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carescript/backend/internal/adapters/providers/geolocation"
	"github.com/carescript/backend/internal/domain/providers"
	apperrors "github.com/carescript/backend/pkg/errors"
)

func newTestProvider(t *testing.T, handler http.HandlerFunc) (providers.GeolocationProvider, *int64) {
	t.Helper()
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return geolocation.NewGoogleProviderWithOptions("test-key", server.URL, server.Client()), &calls
}

func geocodeResponse(status string, lat, lng float64) map[string]interface{} {
	results := []map[string]interface{}{}
	if status == "OK" {
		results = append(results, map[string]interface{}{
			"formatted_address": "somewhere",
			"geometry": map[string]interface{}{
				"location": map[string]float64{"lat": lat, "lng": lng},
			},
		})
	}
	return map[string]interface{}{"status": status, "results": results}
}

func TestGeocode_Success(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "350 Fifth Ave, New York", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		_ = json.NewEncoder(w).Encode(geocodeResponse("OK", 40.7484, -73.9857))
	})

	loc, err := provider.Geocode(context.Background(), "350 Fifth Ave, New York")
	require.NoError(t, err)
	assert.InDelta(t, 40.7484, loc.Latitude, 0.0001)
	assert.InDelta(t, -73.9857, loc.Longitude, 0.0001)
}

func TestGeocode_ZeroResults(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geocodeResponse("ZERO_RESULTS", 0, 0))
	})

	loc, err := provider.Geocode(context.Background(), "asdfghjkl")
	assert.Nil(t, loc)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNoResult))
}

func TestGeocode_RequestDenied(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":        "REQUEST_DENIED",
			"error_message": "The provided API key is invalid.",
			"results":       []interface{}{},
		})
	})

	_, err := provider.Geocode(context.Background(), "Birmingham, AL")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeRequestDenied))
	assert.Contains(t, err.Error(), "API key is invalid")
}

func TestGeocode_UnknownStatus(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(geocodeResponse("UNKNOWN_ERROR", 0, 0))
	})

	_, err := provider.Geocode(context.Background(), "Birmingham, AL")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProvider))
	assert.Contains(t, err.Error(), "UNKNOWN_ERROR")
}

func TestGeocode_ServerError(t *testing.T) {
	provider, _ := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := provider.Geocode(context.Background(), "Birmingham, AL")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeTransient))
}

func TestGeocode_MissingKeyFailsFast(t *testing.T) {
	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
	}))
	t.Cleanup(server.Close)

	provider := geolocation.NewGoogleProviderWithOptions("", server.URL, server.Client())
	_, err := provider.Geocode(context.Background(), "Birmingham, AL")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConfiguration))
	assert.EqualValues(t, 0, atomic.LoadInt64(&calls))
}

func TestGeocode_BlankAddress(t *testing.T) {
	provider, calls := newTestProvider(t, func(w http.ResponseWriter, r *http.Request) {})

	_, err := provider.Geocode(context.Background(), "   ")
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	assert.EqualValues(t, 0, atomic.LoadInt64(calls))
}
