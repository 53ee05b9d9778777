package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// WatchTasksInput contains the parameters for watching tasks.
type WatchTasksInput struct {
	OnUpdate func(*ListTasksOutput) // Called after every successful refresh (required)
}

// WatchTasks is the use case for following the task list as push
// notifications arrive.
type WatchTasks struct {
	tree     domain.TaskTree
	listener domain.Listener
}

// NewWatchTasks creates a new WatchTasks use case.
func NewWatchTasks(tree domain.TaskTree, listener domain.Listener) *WatchTasks {
	return &WatchTasks{tree: tree, listener: listener}
}

// Execute refreshes once, then reports every refresh triggered by the
// listener until ctx ends. A failed initial refresh does not stop the watch.
func (uc *WatchTasks) Execute(ctx context.Context, in WatchTasksInput) error {
	if in.OnUpdate == nil {
		return errors.New("watch tasks: OnUpdate is required")
	}

	changes, stop := uc.tree.Changes()
	defer stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	listenErr := make(chan error, 1)
	go func() { listenErr <- uc.listener.Run(ctx) }()

	uc.tree.Refresh(ctx)

	for {
		select {
		case <-ctx.Done():
			<-listenErr
			return nil
		case err := <-listenErr:
			if err != nil {
				return fmt.Errorf("watch tasks: %w", err)
			}
			return nil
		case <-changes:
			in.OnUpdate(&ListTasksOutput{
				Tasks:  uc.tree.Items(),
				Status: uc.tree.Status(),
			})
		}
	}
}
