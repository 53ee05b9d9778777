package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/runoshun/systask/internal/app"
	"github.com/runoshun/systask/internal/tui"
)

// newTUICommand creates the tui command for launching the task panel.
// Running systask without arguments does the same.
func newTUICommand(c *app.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the task panel",
		Long: `Open the interactive task panel.

The panel lists system tasks with their state and order, shows the
running tasks in the status line, and refreshes whenever a push
notification arrives.

Keys: r refresh, x cancel all, j/k move, ? help, q quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return launchTUIFunc(cmd.Context(), c)
		},
	}
}

// launchTUI runs the task panel until the user quits.
// Notifications are routed to the panel while it runs and the push listener
// refreshes the list in the background.
func launchTUI(ctx context.Context, c *app.Container) error {
	if c == nil {
		return errors.New("tui: no container")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	notifier := tui.NewNotifier(c.Logger)
	prev := c.SetNotifier(notifier)
	defer c.SetNotifier(prev)

	c.Start(ctx)

	go func() {
		if err := c.Listener().Run(ctx); err != nil && ctx.Err() == nil {
			notifier.ShowError(fmt.Sprintf("push notifications stopped: %v", err))
		}
	}()

	model := tui.New(ctx, c.Tasks, notifier)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
