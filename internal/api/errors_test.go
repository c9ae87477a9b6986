package api

import (
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/pagekeep/pagekeep-server/internal/errors"
	"github.com/pagekeep/pagekeep-server/internal/store"
)

func TestRegisterErrorHandler_DomainError(t *testing.T) {
	RegisterErrorHandler()

	err := huma.NewError(http.StatusInternalServerError, "wrapped",
		domainerrors.Conflict("author has books"))

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, apiErr.GetStatus())
	assert.Equal(t, "CONFLICT", apiErr.Code)
	assert.Equal(t, "author has books", apiErr.Message)
}

func TestRegisterErrorHandler_ValidationDetails(t *testing.T) {
	RegisterErrorHandler()

	domainErr := domainerrors.ValidationWithDetails("validation failed", map[string]string{
		"email": "must be a valid email",
	})
	err := huma.NewError(http.StatusInternalServerError, "wrapped", domainErr)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, apiErr.GetStatus())
	assert.Equal(t, "VALIDATION", apiErr.Code)
	assert.NotNil(t, apiErr.Details)
}

func TestRegisterErrorHandler_StoreNotFound(t *testing.T) {
	RegisterErrorHandler()

	err := huma.NewError(http.StatusInternalServerError, "wrapped", store.ErrNotFound)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, apiErr.GetStatus())
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
}

func TestRegisterErrorHandler_StatusFallback(t *testing.T) {
	RegisterErrorHandler()

	cases := []struct {
		status int
		code   string
	}{
		{http.StatusBadRequest, "VALIDATION"},
		{http.StatusUnprocessableEntity, "VALIDATION"},
		{http.StatusUnauthorized, "UNAUTHORIZED"},
		{http.StatusForbidden, "FORBIDDEN"},
		{http.StatusNotFound, "NOT_FOUND"},
		{http.StatusConflict, "CONFLICT"},
		{http.StatusServiceUnavailable, "UNAVAILABLE"},
		{http.StatusInternalServerError, "INTERNAL"},
	}

	for _, tc := range cases {
		err := huma.NewError(tc.status, "boom")
		apiErr, ok := err.(*APIError)
		require.True(t, ok)
		assert.Equal(t, tc.status, apiErr.GetStatus())
		assert.Equal(t, tc.code, apiErr.Code, "status %d", tc.status)
	}
}
