package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/systask/internal/domain"
	"github.com/runoshun/systask/internal/tasktree"
	"github.com/runoshun/systask/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, runs ...domain.TaskRun) (*Model, *testutil.MockCoreAPI) {
	t.Helper()
	api := testutil.NewMockCoreAPI()
	api.Runs = domain.Ok(runs)
	notifier := NewNotifier(nil)
	tree := tasktree.New(api, notifier, nil)
	m := New(context.Background(), tree, notifier)
	t.Cleanup(m.Close)
	return m, api
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m *Model, msg tea.Msg) (*Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	result, ok := updated.(*Model)
	require.True(t, ok, "Update should return *Model")
	return result, cmd
}

func sampleRuns() []domain.TaskRun {
	return []domain.TaskRun{
		{ID: "t2", Name: "deploy", State: domain.TaskStatePending, Order: 2},
		{ID: "t1", Name: "build", State: domain.TaskStateRunning, Order: 1},
		{ID: "t3", Name: "lint", State: domain.TaskStateRunning, Order: 3},
	}
}

func TestUpdate_RefreshLoadsSortedTasks(t *testing.T) {
	m, api := newTestModel(t, sampleRuns()...)

	m, cmd := update(t, m, keyMsg("r"))
	require.NotNil(t, cmd)
	assert.True(t, m.refreshing)

	m, _ = update(t, m, cmd())

	assert.False(t, m.refreshing)
	assert.Equal(t, 1, api.RunsCallCount())
	assert.Equal(t, []string{"t1", "t2", "t3"}, domain.TaskRunIDs(m.tasks))
	assert.Equal(t, "Running: build > lint", m.status.Text)
}

func TestUpdate_MsgTasksChanged(t *testing.T) {
	m, _ := newTestModel(t, sampleRuns()...)
	m.tree.Refresh(context.Background())

	m, cmd := update(t, m, MsgTasksChanged{})

	assert.Len(t, m.tasks, 3)
	assert.True(t, m.status.Visible)
	assert.NotNil(t, cmd, "should keep waiting for changes")
}

func TestUpdate_ChangeChannelDeliversAfterRefresh(t *testing.T) {
	m, _ := newTestModel(t, sampleRuns()...)

	m.tree.Refresh(context.Background())
	msg := m.waitForChange()()

	assert.Equal(t, MsgTasksChanged{}, msg)
}

func TestUpdate_CloseReleasesChangeWait(t *testing.T) {
	m, _ := newTestModel(t)
	cmd := m.waitForChange()
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	m.Close()

	select {
	case msg := <-done:
		assert.Nil(t, msg)
	case <-time.After(time.Second):
		t.Fatal("change wait should return after Close")
	}
}

func TestUpdate_Navigation(t *testing.T) {
	m, _ := newTestModel(t, sampleRuns()...)
	m.tree.Refresh(context.Background())
	m.reload()

	m, _ = update(t, m, keyMsg("k"))
	assert.Equal(t, 0, m.cursor, "cursor should not go above the first row")

	m, _ = update(t, m, keyMsg("j"))
	m, _ = update(t, m, keyMsg("j"))
	m, _ = update(t, m, keyMsg("j"))
	assert.Equal(t, 2, m.cursor, "cursor should stop at the last row")

	task, ok := m.SelectedTask()
	require.True(t, ok)
	assert.Equal(t, "t3", task.ID)

	m, _ = update(t, m, keyMsg("g"))
	assert.Equal(t, 0, m.cursor)

	m, _ = update(t, m, keyMsg("G"))
	assert.Equal(t, 2, m.cursor)
}

func TestUpdate_ReloadClampsCursor(t *testing.T) {
	m, api := newTestModel(t, sampleRuns()...)
	m.tree.Refresh(context.Background())
	m.reload()
	m.cursor = 2

	api.Runs = domain.Ok([]domain.TaskRun{{ID: "only", Order: 1}})
	m.tree.Refresh(context.Background())
	m.reload()

	assert.Equal(t, 0, m.cursor)
}

func TestUpdate_CancelConfirm(t *testing.T) {
	m, api := newTestModel(t, sampleRuns()...)
	m.tree.Refresh(context.Background())
	m.reload()

	m, cmd := update(t, m, keyMsg("x"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, m.mode)
	assert.Equal(t, ConfirmCancelAll, m.confirmAction)
	assert.Empty(t, api.CancelCalls, "nothing is sent before confirmation")

	m, cmd = update(t, m, keyMsg("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)

	m, _ = update(t, m, cmd())

	require.Len(t, api.CancelCalls, 1)
	assert.ElementsMatch(t, []string{"t1", "t2", "t3"}, api.CancelCalls[0])
	assert.Equal(t, "Canceled 3 task(s)", m.info)
	assert.Empty(t, m.err)
}

func TestUpdate_CancelAbort(t *testing.T) {
	m, api := newTestModel(t, sampleRuns()...)

	m, _ = update(t, m, keyMsg("x"))
	m, cmd := update(t, m, keyMsg("n"))

	assert.Nil(t, cmd)
	assert.Equal(t, ModeNormal, m.mode)
	assert.Equal(t, ConfirmNone, m.confirmAction)
	assert.Empty(t, api.CancelCalls)
}

func TestUpdate_CancelRejectedShowsNotice(t *testing.T) {
	m, api := newTestModel(t, sampleRuns()...)
	api.Cancel = domain.Ok(false)

	m, _ = update(t, m, keyMsg("x"))
	m, cmd := update(t, m, keyMsg("y"))
	done := cmd()

	cancelDone, ok := done.(MsgCancelDone)
	require.True(t, ok)
	require.True(t, domain.IsReported(cancelDone.Err))

	m, _ = update(t, m, done)
	assert.Empty(t, m.err, "reported errors arrive through the notifier")

	m, _ = update(t, m, m.notifier.wait()())
	assert.Equal(t, "Failed to cancel tasks", m.err)
}

func TestUpdate_RefreshErrorUnreported(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, MsgRefreshDone{Err: errors.New("boom")})

	assert.Equal(t, "boom", m.err)
}

func TestUpdate_MsgNotice(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, MsgNotice{Text: "connection refused", Error: true})
	assert.Equal(t, "connection refused", m.err)
	assert.NotNil(t, cmd, "should keep waiting for notices")

	m, _ = update(t, m, MsgNotice{Text: "hello"})
	assert.Equal(t, "hello", m.info)

	m, _ = update(t, m, MsgClearError{})
	assert.Empty(t, m.err)
}

func TestUpdate_HelpMode(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, keyMsg("?"))
	assert.Equal(t, ModeHelp, m.mode)

	m, _ = update(t, m, keyMsg("?"))
	assert.Equal(t, ModeNormal, m.mode)
}

func TestUpdate_Quit(t *testing.T) {
	m, _ := newTestModel(t)

	_, cmd := update(t, m, keyMsg("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	_, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_WindowSize(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	assert.Equal(t, 100, m.width)
	assert.Equal(t, 30, m.height)
}
