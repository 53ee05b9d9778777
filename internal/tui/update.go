package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/systask/internal/domain"
)

// Update handles incoming messages and returns an updated model and command.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.statusLine.SetWidth(msg.Width)
		return m, nil

	case MsgTasksChanged:
		m.reload()
		return m, m.waitForChange()

	case MsgRefreshDone:
		m.refreshing = false
		if msg.Err != nil {
			m.showErr(msg.Err)
			return m, nil
		}
		// The change channel coalesces, so read the tree directly as well.
		m.reload()
		return m, nil

	case MsgCancelDone:
		m.refreshing = false
		if msg.Err != nil {
			m.showErr(msg.Err)
			return m, nil
		}
		m.err = ""
		m.info = fmt.Sprintf("Canceled %d task(s)", msg.Count)
		m.reload()
		return m, nil

	case MsgNotice:
		if msg.Error {
			m.err = msg.Text
			m.info = ""
		} else {
			m.info = msg.Text
		}
		return m, m.notifier.wait()

	case MsgClearError:
		m.err = ""
		return m, nil
	}

	return m, nil
}

// showErr sets the error line unless a notice already reported err.
func (m *Model) showErr(err error) {
	if domain.IsReported(err) {
		return
	}
	m.err = err.Error()
	m.info = ""
}

// handleKeyMsg handles keyboard input.
func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ModeConfirm:
		return m.handleConfirmMode(msg)
	case ModeHelp:
		return m.handleHelpMode(msg)
	case ModeNormal:
		return m.handleNormalMode(msg)
	}
	return m, nil
}

// handleNormalMode handles keys in normal navigation mode.
func (m *Model) handleNormalMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.tasks)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Top):
		m.cursor = 0
		return m, nil

	case key.Matches(msg, m.keys.Bottom):
		m.cursor = max(len(m.tasks)-1, 0)
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		m.err = ""
		m.info = ""
		m.refreshing = true
		return m, m.refresh()

	case key.Matches(msg, m.keys.Cancel):
		m.mode = ModeConfirm
		m.confirmAction = ConfirmCancelAll
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.err = ""
		m.info = ""
		return m, nil
	}
	return m, nil
}

// handleConfirmMode handles keys in the confirmation dialog.
func (m *Model) handleConfirmMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		action := m.confirmAction
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		if action == ConfirmCancelAll {
			m.err = ""
			m.info = ""
			m.refreshing = true
			return m, m.cancelAll()
		}
		return m, nil

	case key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
		m.confirmAction = ConfirmNone
		return m, nil

	case msg.String() == "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

// handleHelpMode handles keys while the help overlay is shown.
func (m *Model) handleHelpMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Escape):
		m.mode = ModeNormal
	}
	return m, nil
}
