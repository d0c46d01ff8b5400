package batch

import (
	"encoding/csv"
	"io"

	"github.com/pkg/errors"
	"github.com/tailscale-portfolio/zoom-batch/internal/actions"
)

var resultHeader = []string{"action", "username", "result"}

// ResultSink receives results in the order they are produced.
type ResultSink interface {
	Write(res actions.Result) error
}

// ResultWriter writes results as CSV rows, flushing after each one so a
// crashed run still leaves the rows it finished.
type ResultWriter struct {
	w *csv.Writer
}

// NewResultWriter writes the header row and returns the writer.
func NewResultWriter(out io.Writer) (*ResultWriter, error) {
	rw := &ResultWriter{w: csv.NewWriter(out)}
	if err := rw.writeRow(resultHeader); err != nil {
		return nil, err
	}
	return rw, nil
}

func (rw *ResultWriter) Write(res actions.Result) error {
	return rw.writeRow([]string{res.Action, res.Username, res.Outcome.String()})
}

func (rw *ResultWriter) writeRow(row []string) error {
	if err := rw.w.Write(row); err != nil {
		return errors.Wrap(err, "batch: write result row")
	}
	rw.w.Flush()
	return errors.Wrap(rw.w.Error(), "batch: flush result row")
}
