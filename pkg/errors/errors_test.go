package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/carescript/backend/pkg/errors"
)

func TestTypeOf(t *testing.T) {
	err := apperrors.NewNoResultError("no match for address")
	assert.Equal(t, apperrors.ErrorTypeNoResult, apperrors.TypeOf(err))

	wrapped := fmt.Errorf("geocode query: %w", err)
	assert.Equal(t, apperrors.ErrorTypeNoResult, apperrors.TypeOf(wrapped))

	assert.Equal(t, apperrors.ErrorTypeInternal, apperrors.TypeOf(stderrors.New("plain")))
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("connection refused")
	err := apperrors.NewRepositoryError("facility query failed", cause)

	assert.True(t, stderrors.Is(err, cause))
	assert.Contains(t, err.Error(), "REPOSITORY")
	assert.Contains(t, err.Error(), "connection refused")
}

func TestProviderErrorCarriesStatus(t *testing.T) {
	err := apperrors.NewProviderError("UNKNOWN_ERROR")
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeProvider))
	assert.Contains(t, err.Message, "UNKNOWN_ERROR")
}
