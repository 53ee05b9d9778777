package usecase

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// ExecCommandInput contains the parameters for running a core command.
type ExecCommandInput struct {
	Data map[string]any // Command payload (optional)
	API  string         // Command name (required)
}

// ExecCommandOutput contains the raw command response.
type ExecCommandOutput struct {
	Response json.RawMessage
}

// ExecCommand is the use case for running a generic core API command.
type ExecCommand struct {
	api domain.CoreAPI
}

// NewExecCommand creates a new ExecCommand use case.
func NewExecCommand(api domain.CoreAPI) *ExecCommand {
	return &ExecCommand{api: api}
}

// Execute runs the command.
func (uc *ExecCommand) Execute(ctx context.Context, in ExecCommandInput) (*ExecCommandOutput, error) {
	if in.API == "" {
		return nil, domain.ErrEmptyAPI
	}

	data := in.Data
	if data == nil {
		data = map[string]any{}
	}

	res := uc.api.Cli(ctx, in.API, data)
	if !res.IsOk() {
		return nil, fmt.Errorf("exec %s: %w", in.API, res.Err())
	}
	return &ExecCommandOutput{Response: res.Value()}, nil
}
