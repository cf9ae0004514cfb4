package openai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/carescript/backend/pkg/config"
	apperrors "github.com/carescript/backend/pkg/errors"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o-mini"

	transcribePrompt = "Transcribe the handwritten text in this image. " +
		"Return only the transcribed text, with no commentary."
)

// Client implements the vision transcription provider against the OpenAI
// Responses API.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new OpenAI client. A missing API key is not a
// constructor error; calls fail fast with a configuration error so the
// server can start without the credential.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil {
		cfg = &config.OpenAIConfig{}
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	return &Client{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}, nil
}

// NewClientWithOptions allows overriding base URL and HTTP client (used for tests).
func NewClientWithOptions(cfg *config.OpenAIConfig, baseURL string, httpClient *http.Client) (*Client, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(baseURL) != "" {
		client.baseURL = baseURL
	}
	if httpClient != nil {
		client.httpClient = httpClient
	}
	return client, nil
}

type responseContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type responseOutput struct {
	Content []responseContent `json:"content"`
}

type responseEnvelope struct {
	Output []responseOutput `json:"output"`
	Error  *responseError   `json:"error,omitempty"`
}

type responseError struct {
	Message string `json:"message"`
}

// Transcribe reads the handwritten text from an image payload.
func (c *Client) Transcribe(ctx context.Context, image []byte, mimeType string) (string, error) {
	if c.apiKey == "" {
		return "", apperrors.NewConfigurationError("openai api key is not configured")
	}
	if len(image) == 0 {
		return "", apperrors.NewValidationError("image payload is empty")
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	dataURL := fmt.Sprintf("data:%s;base64,%s", mimeType, base64.StdEncoding.EncodeToString(image))

	payload := map[string]interface{}{
		"model": c.model,
		"input": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{"type": "input_text", "text": transcribePrompt},
					{"type": "input_image", "image_url": dataURL},
				},
			},
		},
		"temperature":       0,
		"max_output_tokens": 1000,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", apperrors.NewInternalError("failed to encode transcription request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/responses", bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewInternalError("failed to build transcription request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewTransientError("transcription request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewTransientError(
			fmt.Sprintf("transcription request returned status %d", resp.StatusCode), nil)
	}

	var envelope responseEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return "", apperrors.NewInternalError("failed to decode transcription response", err)
	}
	if envelope.Error != nil {
		return "", apperrors.NewProviderError(envelope.Error.Message)
	}

	var text strings.Builder
	for _, output := range envelope.Output {
		for _, content := range output.Content {
			if content.Type == "output_text" {
				text.WriteString(content.Text)
			}
		}
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", apperrors.NewNoResultError("no text recognized in image")
	}

	return result, nil
}
