package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tailscale-portfolio/zoom-batch/internal/config"
	"golang.org/x/oauth2"
)

// DefaultTokenURL is Zoom's OAuth token endpoint.
const DefaultTokenURL = config.DefaultTokenURL

// AccountCredentials exchanges a Server-to-Server OAuth app's client
// credentials for an account-scoped access token.
type AccountCredentials struct {
	TokenURL     string
	AccountID    string
	ClientID     string
	ClientSecret string
	HTTPClient   *http.Client
}

// TokenResponse is the response from the /oauth/token endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
}

// Exchange performs a single account_credentials grant.
func (c *AccountCredentials) Exchange(ctx context.Context) (*oauth2.Token, error) {
	if c.AccountID == "" || c.ClientID == "" || c.ClientSecret == "" {
		return nil, fmt.Errorf("%w: account id, client id and client secret are required", ErrConfig)
	}

	endpoint := c.TokenURL
	if endpoint == "" {
		endpoint = DefaultTokenURL
	}
	reqURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("%w: parse token url: %v", ErrConfig, err)
	}
	q := reqURL.Query()
	q.Set("grant_type", "account_credentials")
	q.Set("account_id", c.AccountID)
	reqURL.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("auth: new request: %w", err)
	}
	req.SetBasicAuth(c.ClientID, c.ClientSecret)
	req.Header.Set("Accept", "application/json")

	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("auth: token exchange failed: %w", err)
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden:
		return nil, fmt.Errorf("%w: token exchange rejected with status %d", ErrConfig, res.StatusCode)
	default:
		// Throttling and server errors are retried on the next request.
		return nil, fmt.Errorf("auth: token exchange unexpected status %d", res.StatusCode)
	}

	var payload TokenResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("auth: decode token response: %w", err)
	}
	if payload.AccessToken == "" {
		return nil, fmt.Errorf("%w: empty access token in response", ErrConfig)
	}

	tokenType := payload.TokenType
	if tokenType == "" || strings.EqualFold(tokenType, "bearer") {
		tokenType = "Bearer"
	}
	token := &oauth2.Token{
		AccessToken: payload.AccessToken,
		TokenType:   tokenType,
	}
	if payload.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(payload.ExpiresIn) * time.Second)
	}
	return token, nil
}

// TokenSource returns a source that reuses the exchanged token until it
// expires and exchanges again afterwards.
func (c *AccountCredentials) TokenSource(ctx context.Context) oauth2.TokenSource {
	return oauth2.ReuseTokenSource(nil, &accountSource{ctx: ctx, creds: c})
}

type accountSource struct {
	ctx   context.Context
	creds *AccountCredentials
}

func (s *accountSource) Token() (*oauth2.Token, error) {
	return s.creds.Exchange(s.ctx)
}
