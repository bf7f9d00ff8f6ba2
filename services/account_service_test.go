package services

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestAuthenticateIssuesToken(t *testing.T) {
	service := NewAccountService(newTestDB(t), testSecret)

	_, err := service.Create("Anna Kowalska", "anna", "correct horse")
	require.NoError(t, err)

	token, account, err := service.Authenticate("anna", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "anna", account.Username)
	assert.NotEqual(t, "correct horse", account.Password, "password must be stored hashed")

	parsed, err := jwt.Parse(token, func(tok *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "anna", claims["usr"])
}

func TestAuthenticateRejectsBadCredentials(t *testing.T) {
	service := NewAccountService(newTestDB(t), testSecret)

	_, err := service.Create("Anna Kowalska", "anna", "correct horse")
	require.NoError(t, err)

	// Wrong password and unknown user look the same to the caller.
	_, _, err = service.Authenticate("anna", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = service.Authenticate("nobody", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = service.Authenticate("", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
