package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carescript/backend/internal/application/services"
	"github.com/carescript/backend/internal/domain/entities"
	apperrors "github.com/carescript/backend/pkg/errors"
)

type stubUserRepo struct {
	users map[string]*entities.User
	err   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: map[string]*entities.User{}}
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.NewNotFoundError("user not found")
	}
	return user, nil
}

func (r *stubUserRepo) Upsert(ctx context.Context, user *entities.User) error {
	if r.err != nil {
		return r.err
	}
	if existing, ok := r.users[user.ID]; ok {
		user.CreatedAt = existing.CreatedAt
	} else if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	r.users[user.ID] = user
	return nil
}

func TestProfileGet_KnownUser(t *testing.T) {
	repo := newStubUserRepo()
	name := "Ada"
	repo.users["id-1"] = &entities.User{ID: "id-1", Name: &name, CreatedAt: time.Now()}
	service := services.NewProfileService(repo)

	result := service.Get(context.Background(), "id-1")

	assert.False(t, result.Degraded)
	require.NotNil(t, result.Profile.Name)
	assert.Equal(t, "Ada", *result.Profile.Name)
	assert.NotNil(t, result.Profile.CreatedAt)
}

func TestProfileGet_UnknownUserIsEmptyNotDegraded(t *testing.T) {
	service := services.NewProfileService(newStubUserRepo())

	result := service.Get(context.Background(), "fresh-cookie")

	assert.False(t, result.Degraded)
	assert.Equal(t, "fresh-cookie", result.Profile.ID)
	assert.Nil(t, result.Profile.Name)
	assert.Nil(t, result.Profile.CreatedAt)
}

func TestProfileGet_DatastoreDownDegrades(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = apperrors.NewRepositoryError("connection refused", nil)
	service := services.NewProfileService(repo)

	result := service.Get(context.Background(), "id-1")

	assert.True(t, result.Degraded)
	assert.Equal(t, "id-1", result.Profile.ID)
	assert.Nil(t, result.Profile.Name)
}

func TestProfileUpdate_UpsertsAndReturnsProfile(t *testing.T) {
	repo := newStubUserRepo()
	service := services.NewProfileService(repo)

	result := service.Update(context.Background(), "id-1", "Grace")

	assert.False(t, result.Degraded)
	require.NotNil(t, result.Profile.Name)
	assert.Equal(t, "Grace", *result.Profile.Name)
	assert.NotNil(t, result.Profile.CreatedAt)
}

func TestProfileUpdate_DatastoreDownEchoesName(t *testing.T) {
	repo := newStubUserRepo()
	repo.err = apperrors.NewRepositoryError("connection refused", nil)
	service := services.NewProfileService(repo)

	result := service.Update(context.Background(), "id-1", "Grace")

	assert.True(t, result.Degraded)
	require.NotNil(t, result.Profile.Name)
	assert.Equal(t, "Grace", *result.Profile.Name)
	assert.Nil(t, result.Profile.CreatedAt)
}
