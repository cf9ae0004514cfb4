package providers

import (
	"context"
)

// TranscriptionProvider defines the interface for vision-model handwriting
// transcription. Best effort; failures surface as errors, no partial text.
type TranscriptionProvider interface {
	// Transcribe returns the plain text read from an image payload.
	Transcribe(ctx context.Context, image []byte, mimeType string) (string, error)
}
