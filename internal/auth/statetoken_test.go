package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/picineiros/pool-manager/internal/models"
)

func newTestUser() *models.User {
	lastLogin := time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC)
	return &models.User{
		ID:              uuid.New(),
		Email:           "dono@piscinas.com",
		PasswordHash:    "$2a$10$hashantigo",
		IsEmailVerified: false,
		LastLogin:       &lastLogin,
	}
}

func TestStateTokenRoundTrip(t *testing.T) {
	g := NewStateTokenGenerator("segredo-de-teste", 24*time.Hour)
	user := newTestUser()

	token := g.Make(user, PurposeEmailVerify)
	require.NotEmpty(t, token)

	assert.True(t, g.Check(user, PurposeEmailVerify, token))
}

func TestStateTokenRejectsWrongPurpose(t *testing.T) {
	g := NewStateTokenGenerator("segredo-de-teste", 24*time.Hour)
	user := newTestUser()

	token := g.Make(user, PurposeEmailVerify)

	// O link de verificação de email não serve para resetar senha.
	assert.False(t, g.Check(user, PurposePasswordReset, token))
}

func TestStateTokenInvalidatedByPasswordChange(t *testing.T) {
	g := NewStateTokenGenerator("segredo-de-teste", 24*time.Hour)
	user := newTestUser()

	token := g.Make(user, PurposePasswordReset)
	require.True(t, g.Check(user, PurposePasswordReset, token))

	user.PasswordHash = "$2a$10$hashnovo"
	assert.False(t, g.Check(user, PurposePasswordReset, token))
}

func TestStateTokenSurvivesEmailVerification(t *testing.T) {
	g := NewStateTokenGenerator("segredo-de-teste", 24*time.Hour)
	user := newTestUser()

	token := g.Make(user, PurposeEmailVerify)
	require.True(t, g.Check(user, PurposeEmailVerify, token))

	// Clicar de novo no mesmo link de verificação deve continuar válido.
	user.IsEmailVerified = true
	assert.True(t, g.Check(user, PurposeEmailVerify, token))
}

func TestStateTokenInvalidatedByLogin(t *testing.T) {
	g := NewStateTokenGenerator("segredo-de-teste", 24*time.Hour)
	user := newTestUser()

	token := g.Make(user, PurposePasswordReset)
	require.True(t, g.Check(user, PurposePasswordReset, token))

	novoLogin := time.Now()
	user.LastLogin = &novoLogin
	assert.False(t, g.Check(user, PurposePasswordReset, token))
}

func TestStateTokenExpires(t *testing.T) {
	g := NewStateTokenGenerator("segredo-de-teste", time.Hour)
	user := newTestUser()

	emitido := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	g.now = func() time.Time { return emitido }
	token := g.Make(user, PurposePasswordReset)

	g.now = func() time.Time { return emitido.Add(30 * time.Minute) }
	assert.True(t, g.Check(user, PurposePasswordReset, token))

	g.now = func() time.Time { return emitido.Add(2 * time.Hour) }
	assert.False(t, g.Check(user, PurposePasswordReset, token))
}

func TestStateTokenMalformed(t *testing.T) {
	g := NewStateTokenGenerator("segredo-de-teste", 24*time.Hour)
	user := newTestUser()

	assert.False(t, g.Check(user, PurposeEmailVerify, ""))
	assert.False(t, g.Check(user, PurposeEmailVerify, "sem-separador-valido"))
	assert.False(t, g.Check(user, PurposeEmailVerify, "!!!-assinatura"))
	assert.False(t, g.Check(nil, PurposeEmailVerify, "abc-def"))
}

func TestEncodeDecodeUID(t *testing.T) {
	id := uuid.New()

	raw := EncodeUID(id)
	decoded, err := DecodeUID(raw)

	require.NoError(t, err)
	assert.Equal(t, id, decoded)

	_, err = DecodeUID("%%%nao-e-base64%%%")
	assert.Error(t, err)
}
