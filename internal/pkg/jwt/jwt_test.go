package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/cmlabs-hris/attendance-engine/internal/domain/employee"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAccessToken(t *testing.T) {
	svc := NewJWTService("test-secret-key-for-jwt", "1h")

	token, expiresAt, err := svc.GenerateAccessToken("emp-1", "emp@example.com", employee.RoleHR)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.InDelta(t, time.Now().Add(time.Hour).Unix(), expiresAt, 5)

	decoded, err := svc.JWTAuth().Decode(token)
	require.NoError(t, err)

	claims, err := decoded.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "hr", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_InvalidExpiration(t *testing.T) {
	svc := NewJWTService("secret", "soon")
	_, _, err := svc.GenerateAccessToken("emp-1", "emp@example.com", employee.RoleEmployee)
	assert.Error(t, err)
}

func TestRevokeToken(t *testing.T) {
	svc := NewJWTService("secret", "1h").(*JWTService)
	svc.now = func() time.Time { return time.Unix(1000, 0) }

	svc.RevokeToken("expired", 900)
	assert.True(t, svc.IsTokenRevoked("expired"))

	svc.RevokeToken("current", 5000)
	assert.True(t, svc.IsTokenRevoked("current"))
	assert.False(t, svc.IsTokenRevoked("expired"), "expired entries are pruned")
	assert.False(t, svc.IsTokenRevoked("other"))
}
