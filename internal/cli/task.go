package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/runoshun/systask/internal/app"
	"github.com/runoshun/systask/internal/usecase"
)

// newTasksCommand creates the tasks command.
func newTasksCommand(c *app.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Inspect and control system tasks",
		// No RunE: shows subcommand list when called without arguments
	}

	cmd.AddCommand(
		newTasksListCommand(c),
		newTasksRefreshCommand(c),
		newTasksCancelCommand(c),
		newTasksWatchCommand(c),
	)
	return cmd
}

// newTasksListCommand creates the tasks list subcommand.
func newTasksListCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List system tasks",
		Long: `Fetch the current system task list and print it sorted by order.

Output columns (table): ORDER, STATE, ID, NAME

Examples:
  # Show tasks as a table
  systask tasks list

  # Machine-readable output
  systask tasks list -o json
  systask tasks list -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			startSession(cmd, c)

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{})
			if err != nil {
				return err
			}
			return printTaskRuns(cmd.OutOrStdout(), output, out.Tasks)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}

// newTasksRefreshCommand creates the tasks refresh subcommand.
func newTasksRefreshCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Refresh tasks and print the running-task status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startSession(cmd, c)

			out, err := c.ListTasksUseCase().Execute(cmd.Context(), usecase.ListTasksInput{})
			if err != nil {
				return err
			}
			printStatus(cmd.OutOrStdout(), out.Status, len(out.Tasks))
			return nil
		},
	}
}

// newTasksCancelCommand creates the tasks cancel subcommand.
func newTasksCancelCommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel",
		Short: "Cancel all listed system tasks",
		Long: `Fetch the current task list and ask the server to cancel every task
on it in a single batch. The list is refreshed once the server accepts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			startSession(cmd, c)

			out, err := c.CancelTasksUseCase().Execute(cmd.Context(), usecase.CancelTasksInput{})
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(w, "Canceled %d task(s)\n", out.Canceled)
			printStatus(w, out.Status, len(out.Tasks))
			return nil
		},
	}
}

// newTasksWatchCommand creates the tasks watch subcommand.
func newTasksWatchCommand(c *app.Container) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the task list on every push notification",
		Long: `Print the task list, then print it again every time a push
notification arrives on the configured channel. Stop with Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := checkFormat(output); err != nil {
				return err
			}
			startSession(cmd, c)

			w := cmd.OutOrStdout()
			return c.WatchTasksUseCase().Execute(cmd.Context(), usecase.WatchTasksInput{
				OnUpdate: func(out *usecase.ListTasksOutput) {
					if output == formatTable {
						_, _ = fmt.Fprintf(w, "--- %s\n", time.Now().Format("15:04:05"))
						printStatus(w, out.Status, len(out.Tasks))
					}
					_ = printTaskRuns(w, output, out.Tasks)
				},
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", formatTable, "Output format: table, json or yaml")
	return cmd
}
