package actions

import (
	"context"
	"fmt"
	"net/http"
)

// Delete removes the user named by a.Username.
func (h *Handler) Delete(ctx context.Context, a UserAction) Outcome {
	d := &deleteRun{h: h, action: a}
	if f := runSteps(ctx, d.validate, d.resolve, d.remove); f != nil {
		return h.reporter.Fail(f)
	}
	return h.reporter.Succeed(ReasonDeleted, fmt.Sprintf("user %s deleted in Zoom", a.Username))
}

type deleteRun struct {
	h      *Handler
	action UserAction
	id     string
}

func (d *deleteRun) validate(context.Context) *Failure {
	field, err := missingField(deleteRequest{Username: d.action.Username})
	if err != nil {
		return &Failure{Kind: Validation, Reason: ReasonDeleteFailed, Detail: fmt.Sprintf("unable to validate delete: %v", err), Err: err}
	}
	if field == "" {
		return nil
	}
	return &Failure{
		Kind:   Validation,
		Reason: MissingReason(field),
		Detail: fmt.Sprintf("unable to delete user because %s is missing a value", field),
	}
}

func (d *deleteRun) resolve(ctx context.Context) *Failure {
	id, f := d.h.lookup(ctx, d.action.Username)
	d.id = id
	return f
}

func (d *deleteRun) remove(ctx context.Context) *Failure {
	res, err := d.h.directory.DeleteUser(ctx, d.id)
	if err != nil {
		return callFailure(RemoteWrite, ReasonDeleteFailed,
			fmt.Sprintf("unknown error while deleting user %s: %v", d.action.Username, err), err)
	}
	if res.StatusCode != http.StatusNoContent {
		return &Failure{
			Kind:   RemoteWrite,
			Reason: ReasonDeleteFailed,
			Detail: fmt.Sprintf("user %s was not deleted in Zoom: delete returned %d", d.action.Username, res.StatusCode),
		}
	}
	return nil
}
