package jwtmw

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_GenerateToken(t *testing.T) {
	t.Parallel()

	const secret = "generator-secret"
	g := NewGenerator(secret, time.Hour)

	signed, err := g.GenerateToken("4f1c2d3e-0000-4000-8000-000000000001", "jane@example.com", "admin")
	require.NoError(t, err)
	assert.NotEmpty(t, signed)
	assert.Equal(t, time.Hour, g.TTL())

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, "4f1c2d3e-0000-4000-8000-000000000001", claims["sub"])
	assert.Equal(t, "jane@example.com", claims["email"])
	assert.Equal(t, "admin", claims["role"])

	exp, err := claims.GetExpirationTime()
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp.Time, 5*time.Second)
}

func TestGenerator_FixedClock(t *testing.T) {
	t.Parallel()

	issued := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	g := &generator{secret: []byte("s"), expiration: 15 * time.Minute, now: func() time.Time { return issued }}

	signed, err := g.GenerateToken("u1", "u1@example.com", "user")
	require.NoError(t, err)

	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	token, err := parser.Parse(signed, func(t *jwt.Token) (interface{}, error) { return []byte("s"), nil })
	require.NoError(t, err)

	claims := token.Claims.(jwt.MapClaims)
	assert.EqualValues(t, issued.Unix(), claims["iat"])
	assert.EqualValues(t, issued.Add(15*time.Minute).Unix(), claims["exp"])
}
