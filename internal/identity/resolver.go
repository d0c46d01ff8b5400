package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tailscale-portfolio/zoom-batch/internal/zoom"
	"go.uber.org/zap"
)

// UserLookup is the slice of the API client the resolver needs.
type UserLookup interface {
	GetUser(ctx context.Context, email string) (*zoom.Response, error)
}

// DirectoryResolver resolves handles by looking up handle@domain in Zoom.
type DirectoryResolver struct {
	lookup UserLookup
	domain string
	logger *zap.Logger
}

// NewDirectoryResolver builds a resolver for addresses in domain.
func NewDirectoryResolver(lookup UserLookup, domain string, logger *zap.Logger) *DirectoryResolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryResolver{
		lookup: lookup,
		domain: domain,
		logger: logger,
	}
}

// Address returns the login email for handle.
func (r *DirectoryResolver) Address(handle string) string {
	return handle + "@" + r.domain
}

// Resolve returns the Zoom id for handle. A 404, or a 200 whose body does
// not describe the requested address, yields ErrNotFound. Any other status
// yields ErrService.
func (r *DirectoryResolver) Resolve(ctx context.Context, handle string) (string, error) {
	address := r.Address(handle)

	res, err := r.lookup.GetUser(ctx, address)
	if err != nil {
		r.logger.Debug("user lookup failed", zap.String("email", address), zap.Error(err))
		return "", fmt.Errorf("identity: look up %s: %w", address, err)
	}

	switch res.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		r.logger.Debug("user not found", zap.String("email", address))
		return "", ErrNotFound
	default:
		r.logger.Debug("unexpected lookup status", zap.String("email", address), zap.Int("status", res.StatusCode))
		return "", fmt.Errorf("%w: lookup of %s returned %d", ErrService, address, res.StatusCode)
	}

	var user zoom.User
	if err := json.Unmarshal(res.Body, &user); err != nil {
		r.logger.Warn("undecodable lookup response", zap.String("email", address), zap.Error(err))
		return "", ErrNotFound
	}
	if user.ID == "" || !strings.EqualFold(user.Email, address) {
		r.logger.Warn("lookup response does not match address",
			zap.String("email", address),
			zap.String("returned_email", user.Email),
		)
		return "", ErrNotFound
	}
	return user.ID, nil
}
