package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/repositories"
	"github.com/carescript/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carescript/backend/pkg/errors"
)

// EntryAdapter implements the EntryRepository interface
type EntryAdapter struct {
	client *postgres.Client
}

// NewEntryAdapter creates a new entry adapter
func NewEntryAdapter(client *postgres.Client) repositories.EntryRepository {
	return &EntryAdapter{
		client: client,
	}
}

// Create inserts an entry with a server-assigned id and timestamp
func (a *EntryAdapter) Create(ctx context.Context, entry *entities.Entry) error {
	entry.ID = uuid.NewString()
	entry.CreatedAt = time.Now()

	query := `
		INSERT INTO entries (id, user_id, text, created_at)
		VALUES ($1, $2, $3, $4)
	`

	_, err := a.client.DB().ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.Text,
		entry.CreatedAt,
	)
	if err != nil {
		return apperrors.NewRepositoryError("failed to create entry", err)
	}

	return nil
}

// ListByUser returns the identity's entries, most recent first
func (a *EntryAdapter) ListByUser(ctx context.Context, userID string) ([]*entities.Entry, error) {
	query := `
		SELECT id, user_id, text, created_at
		FROM entries
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := a.client.DB().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, apperrors.NewRepositoryError("failed to list entries", err)
	}
	defer rows.Close()

	entries := []*entities.Entry{}
	for rows.Next() {
		entry := &entities.Entry{}
		if err := rows.Scan(&entry.ID, &entry.UserID, &entry.Text, &entry.CreatedAt); err != nil {
			return nil, apperrors.NewRepositoryError("failed to scan entry", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewRepositoryError("failed to iterate entries", err)
	}

	return entries, nil
}
