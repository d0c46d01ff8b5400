package actions

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
)

// Reasons recorded in the output file.
const (
	ReasonNotFound     = "user could not be found in Zoom!"
	ReasonTaken        = "username already taken!"
	ReasonRenameFailed = "could not rename Zoom user."
	ReasonUpdateFailed = "could not update Zoom user."
	ReasonUpdated      = "user was updated in Zoom."
	ReasonDeleteFailed = "could not delete user in Zoom."
	ReasonDeleted      = "user deleted in Zoom."
	ReasonListFailed   = "did not get list of Zoom users."
	ReasonListBroken   = "Could not get the list of Zoom users."
	ReasonListed       = "got the list of Zoom users."
	ReasonUnrecognized = "Unrecognized action."
)

// MissingReason is the reason recorded when field is empty in the input.
func MissingReason(field string) string {
	return fmt.Sprintf("Missing an expected input value for %s in input file.", field)
}

// Reporter echoes every event to the console and to the audit log with the
// same message, so the two never disagree.
type Reporter struct {
	out    io.Writer
	logger *zap.Logger
}

// NewReporter writes console lines to out (stdout when nil).
func NewReporter(out io.Writer, logger *zap.Logger) *Reporter {
	if out == nil {
		out = os.Stdout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reporter{out: out, logger: logger}
}

// Fail reports f and returns the matching error outcome.
func (r *Reporter) Fail(f *Failure) Outcome {
	fmt.Fprintf(r.out, "ERROR: %s\n", f.Detail)
	fields := []zap.Field{zap.Stringer("kind", f.Kind)}
	if f.Err != nil {
		fields = append(fields, zap.Error(f.Err))
	}
	r.logger.Error(f.Detail, fields...)

	out := Error(f.Reason)
	out.Failure = f
	return out
}

// Succeed reports detail and returns a success outcome carrying reason.
func (r *Reporter) Succeed(reason, detail string) Outcome {
	r.Notice(detail)
	return Success(reason)
}

// Notice reports an intermediate success.
func (r *Reporter) Notice(detail string) {
	fmt.Fprintf(r.out, "SUCCESS: %s\n", detail)
	r.logger.Info(detail)
}

// Errorf reports an error that did not come from a handler.
func (r *Reporter) Errorf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintf(r.out, "ERROR: %s\n", msg)
	r.logger.Error(msg)
}

// Infof reports a plain informational line.
func (r *Reporter) Infof(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(r.out, msg)
	r.logger.Info(msg)
}
