package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pagekeep/pagekeep-server/internal/errors"
)

func TestAuthService_Login_Success(t *testing.T) {
	env := setupServices(t)

	result, err := env.auth.Login(context.Background(), testAdminUsername, testAdminPassword)
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.Session.ID)

	session, err := env.auth.Verify(context.Background(), result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.Session.ID, session.ID)
}

func TestAuthService_Login_BadCredentials(t *testing.T) {
	env := setupServices(t)

	_, err := env.auth.Login(context.Background(), testAdminUsername, "wrong")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))

	_, err = env.auth.Login(context.Background(), "intruder", testAdminPassword)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrInvalidCredentials))
}

func TestAuthService_Verify_GarbageToken(t *testing.T) {
	env := setupServices(t)

	_, err := env.auth.Verify(context.Background(), "v4.local.garbage")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestAuthService_Logout_RevokesToken(t *testing.T) {
	env := setupServices(t)

	result, err := env.auth.Login(context.Background(), testAdminUsername, testAdminPassword)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(context.Background(), result.Token))

	// The token is cryptographically valid but its session is gone.
	_, err = env.auth.Verify(context.Background(), result.Token)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnauthorized))
}

func TestAuthService_SessionsAreIndependent(t *testing.T) {
	env := setupServices(t)

	first, err := env.auth.Login(context.Background(), testAdminUsername, testAdminPassword)
	require.NoError(t, err)
	second, err := env.auth.Login(context.Background(), testAdminUsername, testAdminPassword)
	require.NoError(t, err)

	require.NoError(t, env.auth.Logout(context.Background(), first.Token))

	_, err = env.auth.Verify(context.Background(), second.Token)
	assert.NoError(t, err, "logging out one session leaves others live")
}
