package actions

import (
	"errors"

	"github.com/tailscale-portfolio/zoom-batch/internal/auth"
	"github.com/tailscale-portfolio/zoom-batch/internal/zoom"
)

// FailureKind classifies why an action failed.
type FailureKind int

const (
	Validation FailureKind = iota + 1
	NotFound
	Conflict
	RemoteWrite
	RemoteRead
	Transport
	Config
)

func (k FailureKind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Conflict:
		return "conflict"
	case RemoteWrite:
		return "remote_write"
	case RemoteRead:
		return "remote_read"
	case Transport:
		return "transport"
	case Config:
		return "config"
	}
	return "unknown"
}

// Failure is a handler failure. Reason is the text recorded in the output
// file; Detail is the diagnostic printed and logged when it happens.
type Failure struct {
	Kind   FailureKind
	Reason string
	Detail string
	Err    error
}

func (f *Failure) Error() string {
	return f.Detail
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Fatal reports whether the failure means no further action can succeed.
func (f *Failure) Fatal() bool {
	return f.Kind == Config
}

// callFailure classifies an error returned by the API client. Credential
// errors surface through the transport and are reported as Config.
func callFailure(fallback FailureKind, reason, detail string, err error) *Failure {
	kind := fallback
	switch {
	case errors.Is(err, auth.ErrConfig):
		kind = Config
	case errors.Is(err, zoom.ErrTransport):
		kind = Transport
	}
	return &Failure{Kind: kind, Reason: reason, Detail: detail, Err: err}
}
