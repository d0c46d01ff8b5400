package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// TokenTTL is how long a minted API token stays valid.
const TokenTTL = 5 * time.Minute

// ErrConfig marks credential problems that make every API call impossible.
var ErrConfig = errors.New("auth: invalid credentials configuration")

// JWTSource mints HS256 tokens for the Zoom JWT app type. It never caches:
// every call to Token returns a freshly signed credential.
type JWTSource struct {
	apiKey    string
	apiSecret []byte
	now       func() time.Time
}

// NewJWTSource validates the key pair and returns a token source.
func NewJWTSource(apiKey, apiSecret string) (*JWTSource, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("%w: api key and secret are required", ErrConfig)
	}
	return &JWTSource{
		apiKey:    apiKey,
		apiSecret: []byte(apiSecret),
		now:       time.Now,
	}, nil
}

// Sign returns a token issued by the API key that expires TokenTTL after now.
func (s *JWTSource) Sign(now time.Time) (string, time.Time, error) {
	expiry := now.Add(TokenTTL)
	claims := jwt.RegisteredClaims{
		Issuer:    s.apiKey,
		ExpiresAt: jwt.NewNumericDate(expiry),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.apiSecret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("%w: sign token: %v", ErrConfig, err)
	}
	return signed, expiry, nil
}

// Token implements oauth2.TokenSource.
func (s *JWTSource) Token() (*oauth2.Token, error) {
	signed, expiry, err := s.Sign(s.now())
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: signed,
		TokenType:   "Bearer",
		Expiry:      expiry,
	}, nil
}
