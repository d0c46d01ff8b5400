package identity

import (
	"context"
	"errors"
)

// Resolver maps a short user handle to the provider-side user id.
type Resolver interface {
	Resolve(ctx context.Context, handle string) (string, error)
	Address(handle string) string
}

var (
	// ErrNotFound is returned when a user cannot be located.
	ErrNotFound = errors.New("identity: user not found")
	// ErrService is returned when the directory answers with an unexpected status.
	ErrService = errors.New("identity: directory service error")
)
