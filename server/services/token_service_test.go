package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateTokenPair(t *testing.T) {
	svc := NewTokenService("test-secret")

	pair, tokenID, err := svc.GenerateTokenPair("1", "teste@restaurante.com", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(pair.AccessToken, "access")
	require.NoError(t, err)
	assert.Equal(t, "1", claims["sub"])
	assert.Equal(t, "teste@restaurante.com", claims["email"])
	assert.Equal(t, "customer", claims["role"])

	claims, err = svc.ValidateToken(pair.RefreshToken, "refresh")
	require.NoError(t, err)
	assert.Equal(t, tokenID, claims["jti"])
}

func TestValidateRejectsWrongType(t *testing.T) {
	svc := NewTokenService("test-secret")

	pair, _, err := svc.GenerateTokenPair("1", "a@b.com", "customer")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken, "refresh")
	assert.Error(t, err)

	_, err = svc.ValidateToken(pair.RefreshToken, "access")
	assert.Error(t, err)
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	issuer := NewTokenService("secret-a")
	verifier := NewTokenService("secret-b")

	pair, _, err := issuer.GenerateTokenPair("1", "a@b.com", "customer")
	require.NoError(t, err)

	_, err = verifier.ValidateToken(pair.AccessToken, "access")
	assert.Error(t, err)

	_, err = verifier.ValidateToken("definitely-not-a-jwt", "access")
	assert.Error(t, err)
}
