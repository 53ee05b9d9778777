// Package usecase contains the application use cases.
package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// ListTasksInput contains the parameters for listing tasks.
type ListTasksInput struct{}

// ListTasksOutput contains the refreshed task list.
type ListTasksOutput struct {
	Tasks  []domain.TaskRun       // Tasks sorted by order value
	Status domain.StatusIndicator // Running-task indicator
}

// ListTasks is the use case for refreshing and listing system tasks.
type ListTasks struct {
	tree domain.TaskTree
}

// NewListTasks creates a new ListTasks use case.
func NewListTasks(tree domain.TaskTree) *ListTasks {
	return &ListTasks{tree: tree}
}

// Execute refreshes the task list once and returns it.
func (uc *ListTasks) Execute(ctx context.Context, _ ListTasksInput) (*ListTasksOutput, error) {
	res := uc.tree.Refresh(ctx)
	if !res.IsOk() {
		return nil, fmt.Errorf("refresh tasks: %w", res.Err())
	}
	return &ListTasksOutput{
		Tasks:  uc.tree.Items(),
		Status: uc.tree.Status(),
	}, nil
}
