package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// CancelTasksInput contains the parameters for canceling tasks.
type CancelTasksInput struct{}

// CancelTasksOutput contains the result of canceling tasks.
// Fields are ordered to minimize memory padding.
type CancelTasksOutput struct {
	Tasks    []domain.TaskRun       // Task list after the post-cancel refresh
	Status   domain.StatusIndicator // Running-task indicator after the refresh
	Canceled int                    // Number of task ids sent to the server
}

// CancelTasks is the use case for canceling every listed system task.
type CancelTasks struct {
	tree domain.TaskTree
}

// NewCancelTasks creates a new CancelTasks use case.
func NewCancelTasks(tree domain.TaskTree) *CancelTasks {
	return &CancelTasks{tree: tree}
}

// Execute loads the current list and cancels all of it in one batch.
func (uc *CancelTasks) Execute(ctx context.Context, _ CancelTasksInput) (*CancelTasksOutput, error) {
	if res := uc.tree.Refresh(ctx); !res.IsOk() {
		return nil, fmt.Errorf("refresh tasks: %w", res.Err())
	}
	n, err := uc.tree.Cancel(ctx)
	if err != nil {
		return nil, fmt.Errorf("cancel tasks: %w", err)
	}

	return &CancelTasksOutput{
		Tasks:    uc.tree.Items(),
		Status:   uc.tree.Status(),
		Canceled: n,
	}, nil
}
