package batch

import (
	"context"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/tailscale-portfolio/zoom-batch/internal/actions"
	"go.uber.org/zap"
)

// ErrFileAccess marks failures to open the input or output file.
var ErrFileAccess = errors.New("batch: unable to open input/output file")

// Handlers runs one action of each kind. *actions.Handler satisfies it.
type Handlers interface {
	Update(ctx context.Context, a actions.UserAction) actions.Outcome
	Delete(ctx context.Context, a actions.UserAction) actions.Outcome
	ListUsers(ctx context.Context) actions.Outcome
}

// Summary counts the outcomes of a run.
type Summary struct {
	Total     int
	Succeeded int
	Failed    int
}

// Runner processes actions one at a time, in input order.
type Runner struct {
	handlers Handlers
	reporter *actions.Reporter
	logger   *zap.Logger
}

// NewRunner returns a runner dispatching to handlers.
func NewRunner(handlers Handlers, reporter *actions.Reporter, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{handlers: handlers, reporter: reporter, logger: logger}
}

// Run processes every action and hands one result per action to sink.
// Per-action failures never stop the run; a sink error or a credential
// failure does.
func (r *Runner) Run(ctx context.Context, list []actions.UserAction, sink ResultSink) (Summary, error) {
	var sum Summary
	for i, a := range list {
		r.logger.Debug("processing action", zap.Int("index", i), zap.String("action", a.Action), zap.String("username", a.Username))

		outcome := r.dispatch(ctx, a)
		sum.Total++
		if outcome.OK {
			sum.Succeeded++
		} else {
			sum.Failed++
		}

		if err := sink.Write(actions.Result{Action: a.Action, Username: a.Username, Outcome: outcome}); err != nil {
			return sum, err
		}
		if f := outcome.Failure; f != nil && f.Fatal() {
			return sum, errors.Wrapf(f, "batch: aborted at action %d", i)
		}
	}
	return sum, nil
}

func (r *Runner) dispatch(ctx context.Context, a actions.UserAction) actions.Outcome {
	switch a.Action {
	case actions.KindUpdate:
		return r.handlers.Update(ctx, a)
	case actions.KindDelete:
		return r.handlers.Delete(ctx, a)
	case actions.KindListUsers:
		return r.handlers.ListUsers(ctx)
	default:
		r.reporter.Errorf("unrecognized action: %s", a.Action)
		return actions.Error(actions.ReasonUnrecognized)
	}
}

// RunFiles reads actions from inPath and writes results to outPath.
func (r *Runner) RunFiles(ctx context.Context, inPath, outPath string) (Summary, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Summary{}, errors.Wrapf(ErrFileAccess, "open input %s: %v", inPath, err)
	}
	defer in.Close()
	r.logger.Info("opened input file", zap.String("path", inPath))

	out, err := os.Create(outPath)
	if err != nil {
		return Summary{}, errors.Wrapf(ErrFileAccess, "open output %s: %v", outPath, err)
	}
	r.logger.Info("opened output file", zap.String("path", outPath))

	sum, runErr := r.RunStreams(ctx, in, out)
	if err := out.Close(); err != nil && runErr == nil {
		runErr = errors.Wrapf(err, "batch: close output %s", outPath)
	}
	r.logger.Info("closed output file", zap.String("path", outPath))
	return sum, runErr
}

// RunStreams is RunFiles over already opened streams.
func (r *Runner) RunStreams(ctx context.Context, in io.Reader, out io.Writer) (Summary, error) {
	list, err := ReadActions(in)
	if err != nil {
		return Summary{}, err
	}
	sink, err := NewResultWriter(out)
	if err != nil {
		return Summary{}, err
	}
	return r.Run(ctx, list, sink)
}
