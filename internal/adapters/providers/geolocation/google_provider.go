package geolocation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/providers"
	apperrors "github.com/carescript/backend/pkg/errors"
)

const (
	googleGeocodeURL   = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultHTTPTimeout = 8 * time.Second
)

// GoogleProvider implements the GeolocationProvider using the Google
// Geocoding API. It performs no caching; facility-scoped caching is applied
// by the locator service, never on ad hoc user queries.
type GoogleProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGoogleProvider creates a new Google geocoding provider.
func NewGoogleProvider(apiKey string) providers.GeolocationProvider {
	return NewGoogleProviderWithOptions(apiKey, googleGeocodeURL, nil)
}

// NewGoogleProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleProviderWithOptions(apiKey, baseURL string, httpClient *http.Client) providers.GeolocationProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleGeocodeURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		baseURL:    baseURL,
	}
}

// Geocode converts a free-text address to coordinates.
func (g *GoogleProvider) Geocode(ctx context.Context, address string) (*entities.Location, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}
	if g.apiKey == "" {
		// Fail fast; no network call without a credential.
		return nil, apperrors.NewConfigurationError("google maps api key is required")
	}

	params := url.Values{}
	params.Set("address", trimmed)
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build geocode request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransientError("geocode request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewTransientError(
			fmt.Sprintf("geocode request returned status %d", resp.StatusCode), nil)
	}

	var payload googleGeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewInternalError("failed to decode geocode response", err)
	}

	switch payload.Status {
	case "OK":
		// fall through
	case "ZERO_RESULTS":
		return nil, apperrors.NewNoResultError(fmt.Sprintf("no results for address %q", trimmed))
	case "REQUEST_DENIED", "OVER_QUERY_LIMIT":
		message := payload.Status
		if payload.ErrorMessage != "" {
			message = fmt.Sprintf("%s: %s", payload.Status, payload.ErrorMessage)
		}
		return nil, apperrors.NewRequestDeniedError(message)
	default:
		// Forward-compatible with provider status codes not enumerated here.
		return nil, apperrors.NewProviderError(payload.Status)
	}

	if len(payload.Results) == 0 {
		return nil, apperrors.NewNoResultError(fmt.Sprintf("no results for address %q", trimmed))
	}

	location := payload.Results[0].Geometry.Location
	return &entities.Location{
		Latitude:  location.Lat,
		Longitude: location.Lng,
	}, nil
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress string         `json:"formatted_address"`
	Geometry         googleGeometry `json:"geometry"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}
