package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("segredo-de-teste", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)

	parsed, err := svc.ParseAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
}

func TestRefreshTokenNotAcceptedAsAccess(t *testing.T) {
	svc := NewTokenService("segredo-de-teste", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	refresh, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	access, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)

	_, err = svc.ParseRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokensAreUnique(t *testing.T) {
	svc := NewTokenService("segredo-de-teste", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	// Dois refreshes no mesmo segundo ainda assim rotacionam o cookie.
	a, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)
	b, err := svc.GenerateRefreshToken(userID)
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	svc := NewTokenService("segredo-de-teste", 15*time.Minute, 7*24*time.Hour)
	outro := NewTokenService("outro-segredo", 15*time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)

	_, err = outro.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestExpiredAccessToken(t *testing.T) {
	svc := NewTokenService("segredo-de-teste", -time.Minute, 7*24*time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(userID)
	require.NoError(t, err)

	_, err = svc.ParseAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
