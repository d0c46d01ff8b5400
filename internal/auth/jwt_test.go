package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTSourceSign(t *testing.T) {
	source, err := NewJWTSource("key-123", "secret-456")
	require.NoError(t, err)

	now := time.Date(2020, 9, 9, 12, 0, 0, 0, time.UTC)
	signed, expiry, err := source.Sign(now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(5*time.Minute), expiry)

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (any, error) {
		return []byte("secret-456"), nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithTimeFunc(func() time.Time { return now }))
	require.NoError(t, err)
	require.True(t, token.Valid)

	assert.Equal(t, "key-123", claims.Issuer)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, now.Add(300*time.Second).Unix(), claims.ExpiresAt.Unix())
}

func TestJWTSourceMintsFreshTokens(t *testing.T) {
	source, err := NewJWTSource("key", "secret")
	require.NoError(t, err)

	clock := time.Date(2020, 9, 9, 12, 0, 0, 0, time.UTC)
	source.now = func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}

	first, err := source.Token()
	require.NoError(t, err)
	second, err := source.Token()
	require.NoError(t, err)

	assert.Equal(t, "Bearer", first.TokenType)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)
	assert.True(t, second.Expiry.After(first.Expiry))
}

func TestNewJWTSourceRequiresCredentials(t *testing.T) {
	for _, tc := range []struct{ key, secret string }{
		{"", "secret"},
		{"key", ""},
		{"", ""},
	} {
		_, err := NewJWTSource(tc.key, tc.secret)
		if !errors.Is(err, ErrConfig) {
			t.Fatalf("NewJWTSource(%q, %q) error = %v, want ErrConfig", tc.key, tc.secret, err)
		}
	}
}
