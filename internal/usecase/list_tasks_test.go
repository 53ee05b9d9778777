package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/runoshun/systask/internal/domain"
	"github.com/runoshun/systask/internal/tasktree"
	"github.com/runoshun/systask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTree() (*tasktree.Provider, *testutil.MockCoreAPI, *testutil.MockNotifier) {
	n := &testutil.MockNotifier{}
	api := testutil.NewMockCoreAPI()
	api.Notifier = n
	return tasktree.New(api, n, nil), api, n
}

func TestListTasks_Execute(t *testing.T) {
	tree, api, _ := newTree()
	api.Runs = domain.Ok([]domain.TaskRun{
		{ID: "2", Name: "deploy", State: domain.TaskStateRunning, Order: 2},
		{ID: "1", Name: "build", State: domain.TaskStateFinished, Order: 1},
	})

	out, err := NewListTasks(tree).Execute(context.Background(), ListTasksInput{})

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, domain.TaskRunIDs(out.Tasks))
	assert.True(t, out.Status.Visible)
	assert.Contains(t, out.Status.Text, "deploy")
}

func TestListTasks_Execute_Error(t *testing.T) {
	tree, api, n := newTree()
	cause := errors.New("connection refused")
	api.Runs = domain.Fail[[]domain.TaskRun](cause)

	out, err := NewListTasks(tree).Execute(context.Background(), ListTasksInput{})

	assert.Nil(t, out)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1, n.ErrorCount())
}
