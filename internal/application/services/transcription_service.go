package services

import (
	"context"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/providers"
	"github.com/carescript/backend/internal/domain/repositories"
)

// TranscriptionService transcribes handwriting images and persists the
// result against the caller's identity.
type TranscriptionService struct {
	provider providers.TranscriptionProvider
	entries  repositories.EntryRepository
}

// NewTranscriptionService creates a new transcription service
func NewTranscriptionService(provider providers.TranscriptionProvider, entries repositories.EntryRepository) *TranscriptionService {
	return &TranscriptionService{
		provider: provider,
		entries:  entries,
	}
}

// Analyze transcribes the image and stores the text as a new entry for the
// identity. There is no transaction across the two steps: a persisted entry
// is only attempted after a successful transcription.
func (s *TranscriptionService) Analyze(ctx context.Context, identityID string, image []byte, mimeType string) (*entities.Entry, error) {
	text, err := s.provider.Transcribe(ctx, image, mimeType)
	if err != nil {
		return nil, err
	}

	entry := &entities.Entry{
		UserID: identityID,
		Text:   text,
	}
	if err := s.entries.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// History returns the identity's past transcriptions, most recent first.
func (s *TranscriptionService) History(ctx context.Context, identityID string) ([]*entities.Entry, error) {
	return s.entries.ListByUser(ctx, identityID)
}
