package actions

import (
	"context"
	"io"
	"os"

	"github.com/tailscale-portfolio/zoom-batch/internal/config"
	"github.com/tailscale-portfolio/zoom-batch/internal/identity"
	"github.com/tailscale-portfolio/zoom-batch/internal/zoom"
)

// DefaultPageSize is the page size used when listing users.
const DefaultPageSize = config.DefaultPageSize

// Directory is the set of mutating and listing calls the handlers issue.
// *zoom.Client satisfies it.
type Directory interface {
	UpdateProfile(ctx context.Context, id, firstName, lastName string) (*zoom.Response, error)
	UpdateEmail(ctx context.Context, id, email string) (*zoom.Response, error)
	UpdateType(ctx context.Context, id string, tier zoom.UserType) (*zoom.Response, error)
	DeleteUser(ctx context.Context, id string) (*zoom.Response, error)
	ListUsers(ctx context.Context, pageNumber, pageSize int) (*zoom.Response, error)
}

// Handler runs the per-action procedures.
type Handler struct {
	directory Directory
	resolver  identity.Resolver
	reporter  *Reporter
	listing   io.Writer
	pageSize  int
}

// Option configures the Handler.
type Option func(h *Handler)

// WithListingOutput sets where listusers writes user lines.
func WithListingOutput(w io.Writer) Option {
	return func(h *Handler) {
		h.listing = w
	}
}

// WithPageSize overrides the listusers page size.
func WithPageSize(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.pageSize = n
		}
	}
}

// NewHandler wires the handlers to the API client and resolver.
func NewHandler(directory Directory, resolver identity.Resolver, reporter *Reporter, opts ...Option) *Handler {
	h := &Handler{
		directory: directory,
		resolver:  resolver,
		reporter:  reporter,
		listing:   os.Stdout,
		pageSize:  DefaultPageSize,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type step func(ctx context.Context) *Failure

// runSteps executes steps in order and stops at the first failure.
func runSteps(ctx context.Context, steps ...step) *Failure {
	for _, s := range steps {
		if f := s(ctx); f != nil {
			return f
		}
	}
	return nil
}
