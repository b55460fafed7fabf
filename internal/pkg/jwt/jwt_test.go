package jwt

import (
	"testing"
	"time"

	"github.com/corvitlabs/attendance-tracker/internal/domain/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	token, expiresAt, err := svc.GenerateAccessToken(42, "ali@example.com", user.RoleHR)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims := decoded.PrivateClaims()
	assert.Equal(t, "42", claims["user_id"])
	assert.Equal(t, "hr", claims["role"])
	assert.Equal(t, "access", claims["type"])
	assert.NotEmpty(t, decoded.JwtID())
}

func TestGenerateAccessToken_UniqueTokenIDs(t *testing.T) {
	svc := NewJWTService("test-secret", "1h")

	a, _, err := svc.GenerateAccessToken(1, "a@example.com", user.RoleEmployee)
	require.NoError(t, err)
	b, _, err := svc.GenerateAccessToken(1, "a@example.com", user.RoleEmployee)
	require.NoError(t, err)

	ta, err := svc.JWTAuth().Decode(a)
	require.NoError(t, err)
	tb, err := svc.JWTAuth().Decode(b)
	require.NoError(t, err)
	assert.NotEqual(t, ta.JwtID(), tb.JwtID())
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("test-secret", "1h").(*JWTService)
	now := time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	svc.RevokeToken("stale", now.Add(-time.Minute).Unix())
	assert.True(t, svc.IsTokenRevoked("stale"))

	svc.RevokeToken("fresh", now.Add(time.Hour).Unix())
	assert.True(t, svc.IsTokenRevoked("fresh"))
	// expired entries are pruned on the next revoke
	assert.False(t, svc.IsTokenRevoked("stale"))
	assert.False(t, svc.IsTokenRevoked("unknown"))
}

func TestNewJWTService_BadDurationFallsBack(t *testing.T) {
	svc := NewJWTService("test-secret", "soon").(*JWTService)
	assert.Equal(t, 24*time.Hour, svc.accessTokenExpiration)
}
