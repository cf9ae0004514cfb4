package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/repositories"
	"github.com/carescript/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/carescript/backend/pkg/errors"
)

// UserAdapter implements the UserRepository interface
type UserAdapter struct {
	client *postgres.Client
}

// NewUserAdapter creates a new user adapter
func NewUserAdapter(client *postgres.Client) repositories.UserRepository {
	return &UserAdapter{
		client: client,
	}
}

// GetByID retrieves a user by the opaque identity token
func (a *UserAdapter) GetByID(ctx context.Context, id string) (*entities.User, error) {
	query := `
		SELECT id, name, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	user := &entities.User{}
	err := a.client.DB().QueryRowContext(ctx, query, id).Scan(
		&user.ID,
		&user.Name,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewRepositoryError("failed to get user", err)
	}

	return user, nil
}

// Upsert inserts or updates a user keyed by the identity token
func (a *UserAdapter) Upsert(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name, updated_at = EXCLUDED.updated_at
	`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := a.client.DB().ExecContext(ctx, query,
		user.ID,
		user.Name,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewRepositoryError("failed to upsert user", err)
	}

	return nil
}
