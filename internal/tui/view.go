package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/systask/internal/domain"
)

// View renders the TUI.
func (m *Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.mode == ModeHelp {
		b.WriteString(m.viewHelp())
	} else {
		b.WriteString(m.viewTaskList())
	}

	if line := m.viewMessages(); line != "" {
		b.WriteString("\n")
		b.WriteString(line)
	}

	if m.mode == ModeConfirm {
		b.WriteString("\n")
		b.WriteString(m.viewConfirmDialog())
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine.Render(m.statusInfo()))

	return m.styles.App.Render(b.String())
}

// viewHeader renders the title with the task count right-aligned.
func (m *Model) viewHeader() string {
	left := m.styles.HeaderText.Render("System Tasks")
	if m.refreshing {
		left += "  " + m.styles.RefreshingNotice.Render("refreshing...")
	}
	right := m.styles.HeaderCount.Render(fmt.Sprintf("%d tasks", len(m.tasks)))

	// App padding is 2 on each side.
	spacing := m.width - 4 - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 2 {
		spacing = 2
	}
	return m.styles.Header.Render(left + strings.Repeat(" ", spacing) + right)
}

// viewTaskList renders the task rows or the empty state.
func (m *Model) viewTaskList() string {
	if len(m.tasks) == 0 {
		return m.styles.EmptyState.Render("No system tasks.") + "\n"
	}

	var b strings.Builder
	for i := range m.tasks {
		b.WriteString(m.renderTaskRow(m.tasks[i], i == m.cursor))
		b.WriteString("\n")
	}
	return b.String()
}

// renderTaskRow renders a single task.
// Format: "> ➜ Running   deploy-app   #3  id-1"
func (m *Model) renderTaskRow(task domain.TaskRun, selected bool) string {
	indicator := " "
	if selected {
		indicator = m.styles.CursorSelected.Render(">")
	}

	badge := m.styles.StateStyle(task.State).
		Render(StateIcon(task.State) + " " + task.State.Display())

	name := m.styles.TaskName.Render(task.DisplayName())
	if selected {
		name = m.styles.TaskNameSelected.Render(task.DisplayName())
	}

	order := m.styles.TaskOrder.Render(fmt.Sprintf("#%d", task.Order))
	id := m.styles.TaskID.Render(task.ID)

	return fmt.Sprintf("%s %s %s %s  %s", indicator, badge, order, name, id)
}

// viewMessages renders the error or info line.
func (m *Model) viewMessages() string {
	if m.err != "" {
		return m.styles.ErrorMsg.Render("Error: " + m.err)
	}
	if m.info != "" {
		return m.styles.InfoMsg.Render(m.info)
	}
	return ""
}

// viewConfirmDialog renders the cancel confirmation.
func (m *Model) viewConfirmDialog() string {
	title := m.styles.DialogTitle.Render(fmt.Sprintf("Cancel %d task(s)?", len(m.tasks)))
	prompt := m.styles.DialogPrompt.Render("Every listed task will be canceled.")

	buttons := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.FooterKey.Render("[ y ] Confirm"),
		"    ",
		m.styles.Footer.Render("[ n ] Cancel"),
	)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		prompt,
		"",
		buttons,
	)
	return m.styles.Dialog.Render(content)
}

// viewHelp renders the full key help.
func (m *Model) viewHelp() string {
	title := m.styles.HeaderText.Render("KEYBOARD SHORTCUTS")
	h := m.help
	h.ShowAll = true
	return title + "\n\n" + h.View(m.keys) + "\n"
}
