package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/systask/internal/domain"
)

// Model is the main bubbletea model for the task panel.
type Model struct {
	// Dependencies (pointers first for alignment)
	ctx         context.Context
	tree        domain.TaskTree
	notifier    *Notifier
	changes     <-chan struct{}
	stopChanges func()
	statusLine  *StatusLine

	// State
	err    string
	info   string
	tasks  []domain.TaskRun
	status domain.StatusIndicator

	// Components
	keys   KeyMap
	styles Styles
	help   help.Model

	// Numeric state (smaller types last)
	mode          Mode
	confirmAction ConfirmAction
	cursor        int
	width         int
	height        int
	refreshing    bool
}

// New creates a task panel over tree. Notices sent through notifier are shown
// in the error line. The model stops listening for changes on Close.
func New(ctx context.Context, tree domain.TaskTree, notifier *Notifier) *Model {
	if notifier == nil {
		notifier = NewNotifier(nil)
	}
	changes, stop := tree.Changes()
	styles := DefaultStyles()
	m := &Model{
		ctx:         ctx,
		tree:        tree,
		notifier:    notifier,
		changes:     changes,
		stopChanges: stop,
		keys:        DefaultKeyMap(),
		styles:      styles,
		help:        help.New(),
		tasks:       tree.Items(),
		status:      tree.Status(),
	}
	m.statusLine = NewStatusLine(0, &m.styles)
	return m
}

// Notifier returns the notifier feeding the error line.
func (m *Model) Notifier() *Notifier {
	return m.notifier
}

// Close stops listening for task tree changes.
func (m *Model) Close() {
	if m.stopChanges != nil {
		m.stopChanges()
		m.stopChanges = nil
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	m.refreshing = true
	return tea.Batch(
		m.refresh(),
		m.waitForChange(),
		m.notifier.wait(),
	)
}

// refresh returns a command that reloads the task list.
func (m *Model) refresh() tea.Cmd {
	return func() tea.Msg {
		res := m.tree.Refresh(m.ctx)
		return MsgRefreshDone{Err: res.Err()}
	}
}

// cancelAll returns a command that cancels every listed task.
func (m *Model) cancelAll() tea.Cmd {
	return func() tea.Msg {
		count, err := m.tree.Cancel(m.ctx)
		return MsgCancelDone{Err: err, Count: count}
	}
}

// waitForChange returns a command that waits for the next successful refresh.
// It yields nil once the change channel is closed.
func (m *Model) waitForChange() tea.Cmd {
	changes := m.changes
	return func() tea.Msg {
		if _, ok := <-changes; !ok {
			return nil
		}
		return MsgTasksChanged{}
	}
}

// reload copies the current list and indicator from the tree.
func (m *Model) reload() {
	m.tasks = m.tree.Items()
	m.status = m.tree.Status()
	if m.cursor >= len(m.tasks) {
		m.cursor = max(len(m.tasks)-1, 0)
	}
}

// SelectedTask returns the task under the cursor.
func (m *Model) SelectedTask() (domain.TaskRun, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return domain.TaskRun{}, false
	}
	return m.tasks[m.cursor], true
}
