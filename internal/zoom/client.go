package zoom

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tailscale-portfolio/zoom-batch/internal/config"
	"golang.org/x/oauth2"
)

// DefaultBaseURL is the Zoom REST API v2 root.
const DefaultBaseURL = config.DefaultBaseURL

// ErrTransport wraps failures that happened before a response was read.
var ErrTransport = errors.New("zoom: transport failure")

// Response is the raw outcome of an API call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client issues authenticated requests against the Zoom API. The bearer
// token is attached by an oauth2.Transport, which asks the token source for
// a token on every request.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the Client.
type Option func(c *Client)

// WithBaseURL points the client at a different API root.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithTimeout bounds every request, token minting included.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient returns a client that authenticates with tokens from source.
func NewClient(source oauth2.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout:   config.DefaultTimeout,
			Transport: &oauth2.Transport{Source: source},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Do sends payload (JSON encoded when non-nil) to path and returns the
// status code and body. Non-2xx statuses are not errors; callers classify.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, payload any) (*Response, error) {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("zoom: marshal %s %s payload: %w", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("zoom: new request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}
	defer res.Body.Close()

	respBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s %s response: %w", ErrTransport, method, path, err)
	}
	return &Response{StatusCode: res.StatusCode, Body: respBody}, nil
}

// GetUser looks a user up by email address (or id).
func (c *Client) GetUser(ctx context.Context, email string) (*Response, error) {
	return c.Do(ctx, http.MethodGet, "/users/"+url.PathEscape(email), nil, nil)
}

// UpdateProfile sets the user's first and last name.
func (c *Client) UpdateProfile(ctx context.Context, id, firstName, lastName string) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, profilePatch{FirstName: firstName, LastName: lastName})
}

// UpdateEmail changes the user's login email.
func (c *Client) UpdateEmail(ctx context.Context, id, email string) (*Response, error) {
	return c.Do(ctx, http.MethodPut, "/users/"+url.PathEscape(id)+"/email", nil, emailUpdate{Email: email})
}

// UpdateType moves the user to the given license tier.
func (c *Client) UpdateType(ctx context.Context, id string, tier UserType) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, typePatch{Type: tier})
}

// DeleteUser removes the user from the account.
func (c *Client) DeleteUser(ctx context.Context, id string) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil)
}

// ListUsers fetches one page of the account's users.
func (c *Client) ListUsers(ctx context.Context, pageNumber, pageSize int) (*Response, error) {
	q := url.Values{}
	q.Set("page_size", fmt.Sprint(pageSize))
	q.Set("page_number", fmt.Sprint(pageNumber))
	return c.Do(ctx, http.MethodGet, "/users", q, nil)
}

// DecodePage parses a GET /users body.
func DecodePage(body []byte) (*UserPage, error) {
	var page UserPage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("zoom: decode user page: %w", err)
	}
	return &page, nil
}
