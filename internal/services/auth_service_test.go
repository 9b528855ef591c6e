package services_test

import (
	"testing"
	"time"

	"lapak/internal/engine"
	"lapak/internal/services"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_RoundTrip(t *testing.T) {
	auth := services.NewAuthService("secret")

	token, err := auth.IssueToken(vendorCaller)
	require.NoError(t, err)

	caller, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, vendorCaller, caller)
}

func TestAuthService_RejectsBadTokens(t *testing.T) {
	auth := services.NewAuthService("secret")

	other, err := services.NewAuthService("other-secret").IssueToken(customerCaller)
	require.NoError(t, err)
	_, err = auth.ValidateToken(other)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	sign := func(claims jwt.MapClaims) string {
		s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
		require.NoError(t, err)
		return s
	}

	expired := sign(jwt.MapClaims{"user_id": "u", "role": "customer", "exp": time.Now().Add(-time.Minute).Unix()})
	_, err = auth.ValidateToken(expired)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	badRole := sign(jwt.MapClaims{"user_id": "u", "role": "superuser"})
	_, err = auth.ValidateToken(badRole)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	noUser := sign(jwt.MapClaims{"role": string(engine.RoleAdmin)})
	_, err = auth.ValidateToken(noUser)
	assert.ErrorIs(t, err, services.ErrInvalidToken)

	_, err = auth.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}
