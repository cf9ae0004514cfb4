package services

import (
	"context"

	"github.com/carescript/backend/internal/domain/entities"
	"github.com/carescript/backend/internal/domain/repositories"
	"github.com/carescript/backend/internal/infrastructure/observability"
	apperrors "github.com/carescript/backend/pkg/errors"
)

// ProfileService handles identity profile reads and writes. The identity
// read path prioritizes availability over consistency: when the datastore is
// unreachable the caller still gets a profile synthesized from the cookie
// identity, flagged as degraded.
type ProfileService struct {
	users repositories.UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(users repositories.UserRepository) *ProfileService {
	return &ProfileService{users: users}
}

// Get returns the identity's profile. An identity with no stored row gets an
// empty profile; that is a normal state, not a degraded one.
func (s *ProfileService) Get(ctx context.Context, identityID string) entities.ProfileResult {
	user, err := s.users.GetByID(ctx, identityID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return entities.ProfileResult{Profile: entities.Profile{ID: identityID}}
		}
		observability.GetLogger().Warn().Err(err).Msg("profile read degraded to cookie identity")
		return entities.ProfileResult{
			Profile:  entities.Profile{ID: identityID},
			Degraded: true,
		}
	}

	createdAt := user.CreatedAt
	return entities.ProfileResult{
		Profile: entities.Profile{
			ID:        user.ID,
			Name:      user.Name,
			CreatedAt: &createdAt,
		},
	}
}

// Update upserts the identity's name and returns the updated profile. On a
// datastore failure the submitted name is echoed back in a degraded profile
// rather than failing the request.
func (s *ProfileService) Update(ctx context.Context, identityID, name string) entities.ProfileResult {
	user := &entities.User{ID: identityID, Name: &name}
	if err := s.users.Upsert(ctx, user); err != nil {
		observability.GetLogger().Warn().Err(err).Msg("profile write degraded to cookie identity")
		return entities.ProfileResult{
			Profile:  entities.Profile{ID: identityID, Name: &name},
			Degraded: true,
		}
	}

	return s.Get(ctx, identityID)
}
