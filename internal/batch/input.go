package batch

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/tailscale-portfolio/zoom-batch/internal/actions"
)

// Input is the document read from the input file.
type Input struct {
	UserActions []actions.UserAction `json:"useractions"`
}

// ReadActions decodes the input document from r.
func ReadActions(r io.Reader) ([]actions.UserAction, error) {
	var in Input
	if err := json.NewDecoder(r).Decode(&in); err != nil {
		return nil, errors.Wrap(err, "batch: decode input")
	}
	if in.UserActions == nil {
		return nil, errors.New(`batch: input has no "useractions" list`)
	}
	return in.UserActions, nil
}
