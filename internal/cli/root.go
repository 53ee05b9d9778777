// Package cli provides the command-line interface for systask.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/runoshun/systask/internal/app"
)

// Command group IDs.
const (
	groupSetup    = "setup"
	groupTask     = "task"
	groupTemplate = "template"
)

// launchTUIFunc is a function variable for launching the TUI, allowing it to be mocked in tests.
var launchTUIFunc = launchTUI

// NewRootCommand creates the root command for systask.
// It receives the container for dependency injection and version for display.
func NewRootCommand(c *app.Container, version string) *cobra.Command {
	root := &cobra.Command{
		Use:   "systask",
		Short: "System task list client",
		Long: `systask shows the background system tasks tracked by the core API,
lets you refresh or cancel them, and follows push notifications to keep
the list current.

Run without arguments to open the task panel.`,
		Version: version,
		// SilenceUsage prevents usage from being printed on errors
		SilenceUsage: true,
		// SilenceErrors prevents Cobra from printing errors (we handle it in main)
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Skip if container is nil (e.g. in tests)
			if c == nil || c.AppConfig == nil {
				return nil
			}
			for _, w := range c.AppConfig.Warnings {
				_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %s\n", w)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), c)
		},
	}

	root.AddGroup(
		&cobra.Group{ID: groupSetup, Title: "Setup Commands:"},
		&cobra.Group{ID: groupTask, Title: "Task Commands:"},
		&cobra.Group{ID: groupTemplate, Title: "Template Commands:"},
	)

	configCmd := newConfigCommand(c)
	configCmd.GroupID = groupSetup

	tasksCmd := newTasksCommand(c)
	tasksCmd.GroupID = groupTask

	tuiCmd := newTUICommand(c)
	tuiCmd.GroupID = groupTask

	execCmd := newExecCommand(c)
	execCmd.GroupID = groupTask

	templatesCmd := newTemplatesCommand(c)
	templatesCmd.GroupID = groupTemplate

	root.AddCommand(
		configCmd,
		tasksCmd,
		tuiCmd,
		execCmd,
		templatesCmd,
	)

	return root
}

// startSession opens the session gate before a command talks to the core API.
func startSession(cmd *cobra.Command, c *app.Container) {
	c.Start(cmd.Context())
}
