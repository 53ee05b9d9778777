package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/systask/internal/domain"
)

// Output formats.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatYAML  = "yaml"
)

// checkFormat validates an --output value.
func checkFormat(format string) error {
	switch format {
	case formatTable, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("%w: %q (use table, json or yaml)", domain.ErrUnknownOutputFormat, format)
	}
}

// writeStructured writes v as JSON or YAML.
func writeStructured(w io.Writer, format string, v any) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", domain.ErrUnknownOutputFormat, format)
	}
}

// printTaskRuns prints tasks in the requested format.
func printTaskRuns(w io.Writer, format string, tasks []domain.TaskRun) error {
	if format != formatTable {
		if tasks == nil {
			tasks = []domain.TaskRun{}
		}
		return writeStructured(w, format, tasks)
	}

	if len(tasks) == 0 {
		_, _ = fmt.Fprintln(w, "No system tasks.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ORDER\tSTATE\tID\tNAME")
	for _, task := range tasks {
		_, _ = fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n",
			task.Order,
			task.State.Display(),
			task.ID,
			task.DisplayName(),
		)
	}
	return nil
}

// printTemplates prints templates in the requested format.
func printTemplates(w io.Writer, format string, templates []domain.Template) error {
	if format != formatTable {
		if templates == nil {
			templates = []domain.Template{}
		}
		return writeStructured(w, format, templates)
	}

	if len(templates) == 0 {
		_, _ = fmt.Fprintln(w, "No templates.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 3, ' ', 0)
	defer func() { _ = tw.Flush() }()

	_, _ = fmt.Fprintln(tw, "ID\tNAME")
	for _, tpl := range templates {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", tpl.ID, tpl.Name)
	}
	return nil
}

// printStatus prints the running-task indicator line.
func printStatus(w io.Writer, status domain.StatusIndicator, total int) {
	if !status.Visible {
		_, _ = fmt.Fprintf(w, "No running tasks (%d total)\n", total)
		return
	}
	_, _ = fmt.Fprintln(w, status.Text)
}
