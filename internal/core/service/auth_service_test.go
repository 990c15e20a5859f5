package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoshop/internal/auth"
	"autoshop/internal/core/repository"
)

func newTestAuthService() (AuthService, *auth.TokenManager) {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(repository.NewInMemoryUserRepository(), tokens), tokens
}

func TestRegisterIssuesVerifiableToken(t *testing.T) {
	svc, tokens := newTestAuthService()

	user, token, err := svc.Register("Alice", "a@x.com", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.Equal(t, "a@x.com", user.Email)
	assert.False(t, user.Admin)
	assert.NotEqual(t, "secret1", user.Password)

	identity, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, "Alice", identity.Name)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Register("Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	// Same address, different case.
	_, _, err = svc.Register("Alice Again", "A@X.COM", "secret2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestAuthService()

	_, _, err := svc.Register("Alice", "a@x.com", "secret1")
	require.NoError(t, err)

	t.Run("wrong password", func(t *testing.T) {
		_, _, err := svc.Login("a@x.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email uses the same error", func(t *testing.T) {
		_, _, err := svc.Login("nobody@x.com", "secret1")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("correct credentials", func(t *testing.T) {
		user, token, err := svc.Login("a@x.com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "Alice", user.Name)
	})

	t.Run("email lookup is case-insensitive", func(t *testing.T) {
		_, token, err := svc.Login("A@x.Com", "secret1")
		require.NoError(t, err)
		assert.NotEmpty(t, token)
	})
}
