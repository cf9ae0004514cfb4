package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/carescript/backend/internal/domain/providers"
	apperrors "github.com/carescript/backend/pkg/errors"
)

const (
	googleDistanceMatrixURL = "https://maps.googleapis.com/maps/api/distancematrix/json"
	defaultHTTPTimeout      = 8 * time.Second
)

// GoogleProvider implements the RouteProvider using the Google Distance
// Matrix API.
type GoogleProvider struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
}

// NewGoogleProvider creates a new Google distance matrix provider.
func NewGoogleProvider(apiKey string) providers.RouteProvider {
	return NewGoogleProviderWithOptions(apiKey, googleDistanceMatrixURL, nil)
}

// NewGoogleProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleProviderWithOptions(apiKey, baseURL string, httpClient *http.Client) providers.RouteProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleDistanceMatrixURL
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

// DrivingDistance returns the road distance and duration between two
// free-text addresses. A non-OK element status is returned in the result,
// not as an error: a pair may legitimately have no road route.
func (g *GoogleProvider) DrivingDistance(ctx context.Context, origin, destination string) (*providers.DrivingResult, error) {
	if g.apiKey == "" {
		return nil, apperrors.NewConfigurationError("google maps api key is required")
	}

	params := url.Values{}
	params.Set("origins", origin)
	params.Set("destinations", destination)
	params.Set("units", "imperial")
	params.Set("key", g.apiKey)

	reqURL := fmt.Sprintf("%s?%s", g.baseURL, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build distance matrix request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransientError("distance matrix request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewTransientError(
			fmt.Sprintf("distance matrix request returned status %d", resp.StatusCode), nil)
	}

	var payload distanceMatrixResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewInternalError("failed to decode distance matrix response", err)
	}

	switch payload.Status {
	case "OK":
	case "REQUEST_DENIED", "OVER_QUERY_LIMIT":
		message := payload.Status
		if payload.ErrorMessage != "" {
			message = fmt.Sprintf("%s: %s", payload.Status, payload.ErrorMessage)
		}
		return nil, apperrors.NewRequestDeniedError(message)
	default:
		return nil, apperrors.NewProviderError(payload.Status)
	}

	if len(payload.Rows) == 0 || len(payload.Rows[0].Elements) == 0 {
		return &providers.DrivingResult{Status: "ZERO_RESULTS"}, nil
	}

	element := payload.Rows[0].Elements[0]
	result := &providers.DrivingResult{Status: element.Status}
	if element.Status == providers.StatusOK {
		result.Distance = element.Distance.Text
		result.Duration = element.Duration.Text
	}
	return result, nil
}

type distanceMatrixResponse struct {
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Rows         []distanceMatrixRow `json:"rows"`
}

type distanceMatrixRow struct {
	Elements []distanceMatrixElement `json:"elements"`
}

type distanceMatrixElement struct {
	Status   string             `json:"status"`
	Distance distanceMatrixText `json:"distance"`
	Duration distanceMatrixText `json:"duration"`
}

type distanceMatrixText struct {
	Text  string `json:"text"`
	Value int    `json:"value"`
}
