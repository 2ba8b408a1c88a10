package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJWTService_AccessTokenRoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateAccessToken(7, "ada@example.com", "Ada Byron")
	assert.NoError(t, err)
	assert.NotEmpty(t, tokenID)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "ada@example.com", claims.Email)
	assert.Equal(t, "Ada Byron", claims.Name)
	assert.Equal(t, tokenID, claims.ID)
}

func TestJWTService_WrongSecretRejected(t *testing.T) {
	svc := NewJWTService("test-secret")
	_, token, err := svc.GenerateAccessToken(7, "ada@example.com", "Ada Byron")
	assert.NoError(t, err)

	other := NewJWTService("other-secret")
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_ExtractTokenID(t *testing.T) {
	svc := NewJWTService("test-secret")

	tokenID, token, err := svc.GenerateRefreshToken(7, "ada@example.com", "Ada Byron")
	assert.NoError(t, err)

	extracted, err := svc.ExtractTokenID(token)
	assert.NoError(t, err)
	assert.Equal(t, tokenID, extracted)
}

func TestJWTService_GarbageTokenRejected(t *testing.T) {
	svc := NewJWTService("test-secret")
	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}
