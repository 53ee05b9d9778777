package cli

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/systask/internal/app"
	"github.com/runoshun/systask/internal/domain"
	"github.com/runoshun/systask/internal/usecase"
)

// newExecCommand creates the exec command.
func newExecCommand(c *app.Container) *cobra.Command {
	var data string
	var output string

	cmd := &cobra.Command{
		Use:   "exec <api>",
		Short: "Run a core API command",
		Long: `Run a generic core command and print its response.

The command name is sent lower-cased. --data is a JSON object used as the
request body.

Examples:
  systask exec SyncModel --data '{"psdevslnsysid":"sys-1"}'
  systask exec Publish -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output != formatJSON && output != formatYAML {
				return fmt.Errorf("%w: %q (use json or yaml)", domain.ErrUnknownOutputFormat, output)
			}

			var payload map[string]any
			if data != "" {
				if err := json.Unmarshal([]byte(data), &payload); err != nil {
					return fmt.Errorf("parse --data: %w", err)
				}
			}
			startSession(cmd, c)

			out, err := c.ExecCommandUseCase().Execute(cmd.Context(), usecase.ExecCommandInput{
				API:  args[0],
				Data: payload,
			})
			if err != nil {
				return err
			}
			return printResponse(cmd, output, out.Response)
		},
	}

	cmd.Flags().StringVarP(&data, "data", "d", "", "JSON object sent as the request body")
	cmd.Flags().StringVarP(&output, "output", "o", formatJSON, "Output format: json or yaml")
	return cmd
}

// printResponse prints a raw JSON response, indented or converted to YAML.
func printResponse(cmd *cobra.Command, format string, raw json.RawMessage) error {
	w := cmd.OutOrStdout()
	if len(bytes.TrimSpace(raw)) == 0 {
		_, _ = fmt.Fprintln(w, "OK")
		return nil
	}
	if format == formatYAML {
		var v any
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return writeStructured(w, formatYAML, v)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, _ = fmt.Fprintln(w, string(raw))
		return nil
	}
	_, _ = fmt.Fprintln(w, buf.String())
	return nil
}
