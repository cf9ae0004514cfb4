package repositories

import (
	"context"

	"github.com/carescript/backend/internal/domain/entities"
)

// UserRepository defines the interface for identity data operations
type UserRepository interface {
	// GetByID retrieves a user by the opaque identity token
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// Upsert inserts or updates a user keyed by the identity token
	Upsert(ctx context.Context, user *entities.User) error
}

// EntryRepository defines the interface for transcription entries
type EntryRepository interface {
	// Create inserts an entry; id and created_at are assigned by the adapter
	Create(ctx context.Context, entry *entities.Entry) error

	// ListByUser returns the identity's entries, most recent first
	ListByUser(ctx context.Context, userID string) ([]*entities.Entry, error)
}
