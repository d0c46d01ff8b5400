package auth

import (
	"context"
	"net/http"

	"github.com/tailscale-portfolio/zoom-batch/internal/config"
	"golang.org/x/oauth2"
)

// NewTokenSource picks the credential flow for the settings: account
// credentials when an account id is set, signed JWTs otherwise.
func NewTokenSource(ctx context.Context, settings config.Settings, httpClient *http.Client) (oauth2.TokenSource, error) {
	if settings.AccountID != "" {
		creds := &AccountCredentials{
			TokenURL:     settings.TokenURL,
			AccountID:    settings.AccountID,
			ClientID:     settings.APIKey,
			ClientSecret: settings.APISecret,
			HTTPClient:   httpClient,
		}
		return creds.TokenSource(ctx), nil
	}
	source, err := NewJWTSource(settings.APIKey, settings.APISecret)
	if err != nil {
		return nil, err
	}
	return source, nil
}
