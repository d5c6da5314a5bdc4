package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("test-secret-key-at-least-32-chars!", 60)

	token, err := m.GenerateAccessToken(7, "jane@example.com", true)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.ProfileID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.True(t, claims.IsStaff)
}

func TestTokenManager_WrongSecret(t *testing.T) {
	m := NewTokenManager("test-secret-key-at-least-32-chars!", 60)
	other := NewTokenManager("another-secret-key-also-32-chars!!", 60)

	token, err := m.GenerateAccessToken(7, "jane@example.com", false)
	assert.NoError(t, err)

	claims, err := other.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("test-secret-key-at-least-32-chars!", -1)

	token, err := m.GenerateAccessToken(7, "jane@example.com", false)
	assert.NoError(t, err)

	claims, err := m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestTokenManager_Garbage(t *testing.T) {
	m := NewTokenManager("test-secret-key-at-least-32-chars!", 60)

	claims, err := m.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}
