package actions

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tailscale-portfolio/zoom-batch/internal/auth"
	"github.com/tailscale-portfolio/zoom-batch/internal/identity"
	"github.com/tailscale-portfolio/zoom-batch/internal/zoom"
)

// Update renames the user when newusername differs from username, then
// sets the license tier from loginDisabled.
func (h *Handler) Update(ctx context.Context, a UserAction) Outcome {
	u := &updateRun{h: h, action: a}
	if f := runSteps(ctx, u.validate, u.resolve, u.rename, u.license); f != nil {
		return h.reporter.Fail(f)
	}
	return h.reporter.Succeed(ReasonUpdated, fmt.Sprintf("user %s updated in Zoom", a.Username))
}

type updateRun struct {
	h      *Handler
	action UserAction
	id     string
}

func (u *updateRun) validate(context.Context) *Failure {
	field, err := missingField(newUpdateRequest(u.action))
	if err != nil {
		return &Failure{Kind: Validation, Reason: ReasonUpdateFailed, Detail: fmt.Sprintf("unable to validate update of %s: %v", u.action.Username, err), Err: err}
	}
	if field == "" {
		return nil
	}
	return &Failure{
		Kind:   Validation,
		Reason: MissingReason(field),
		Detail: fmt.Sprintf("unable to update user %s because %s is missing a value", u.action.Username, field),
	}
}

func (u *updateRun) resolve(ctx context.Context) *Failure {
	id, f := u.h.lookup(ctx, u.action.Username)
	u.id = id
	return f
}

func (u *updateRun) rename(ctx context.Context) *Failure {
	a := u.action
	if a.NewUsername == a.Username {
		return nil
	}

	_, err := u.h.resolver.Resolve(ctx, a.NewUsername)
	switch {
	case err == nil:
		return &Failure{
			Kind:   Conflict,
			Reason: ReasonTaken,
			Detail: fmt.Sprintf("cannot rename user - user already exists: %s", a.NewUsername),
		}
	case !errors.Is(err, identity.ErrNotFound):
		return callFailure(RemoteRead, ReasonRenameFailed,
			fmt.Sprintf("Zoom service did not respond correctly while checking whether %s is taken: %v", a.NewUsername, err), err)
	}

	newAddress := u.h.resolver.Address(a.NewUsername)
	calls := []struct {
		what string
		do   func() (*zoom.Response, error)
	}{
		{"name", func() (*zoom.Response, error) {
			return u.h.directory.UpdateProfile(ctx, u.id, a.GivenName, a.Sn)
		}},
		{"email", func() (*zoom.Response, error) {
			return u.h.directory.UpdateEmail(ctx, u.id, newAddress)
		}},
	}
	for _, call := range calls {
		res, err := call.do()
		if err != nil {
			return callFailure(RemoteWrite, ReasonRenameFailed,
				fmt.Sprintf("could not rename user %s in Zoom: %v", a.Username, err), err)
		}
		if res.StatusCode != http.StatusNoContent {
			return &Failure{
				Kind:   RemoteWrite,
				Reason: ReasonRenameFailed,
				Detail: fmt.Sprintf("could not rename user %s in Zoom: %s update returned %d", a.Username, call.what, res.StatusCode),
			}
		}
	}

	u.h.reporter.Notice(fmt.Sprintf("user %s renamed to %s in Zoom", a.Username, a.NewUsername))
	return nil
}

func (u *updateRun) license(ctx context.Context) *Failure {
	tier := zoom.Licensed
	if u.action.Disabled() {
		tier = zoom.Basic
	}

	res, err := u.h.directory.UpdateType(ctx, u.id, tier)
	if err != nil {
		return callFailure(RemoteWrite, ReasonUpdateFailed,
			fmt.Sprintf("could not update user %s in Zoom: %v", u.action.Username, err), err)
	}
	if res.StatusCode != http.StatusNoContent {
		return &Failure{
			Kind:   RemoteWrite,
			Reason: ReasonUpdateFailed,
			Detail: fmt.Sprintf("could not update user %s in Zoom: type update returned %d", u.action.Username, res.StatusCode),
		}
	}
	return nil
}

// lookup resolves handle to an id. Any resolver error reads as "not found";
// a service failure is reported on its own line first and kept on the
// failure for the log.
func (h *Handler) lookup(ctx context.Context, handle string) (string, *Failure) {
	id, err := h.resolver.Resolve(ctx, handle)
	if err == nil {
		return id, nil
	}
	f := &Failure{
		Kind:   NotFound,
		Reason: ReasonNotFound,
		Detail: fmt.Sprintf("user does not exist in Zoom: %s", handle),
	}
	if !errors.Is(err, identity.ErrNotFound) {
		h.reporter.Errorf("Zoom service did not respond correctly while looking up %s: %v", handle, err)
		f.Err = err
		if errors.Is(err, auth.ErrConfig) {
			f.Kind = Config
		}
	}
	return "", f
}
