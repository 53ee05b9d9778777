package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/systask/internal/domain"
)

// Colors defines the color palette for the TUI.
var Colors = struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Muted     lipgloss.Color
	Error     lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color

	// Task states
	Pending  lipgloss.Color
	Running  lipgloss.Color
	Finished lipgloss.Color
	Failed   lipgloss.Color
	Canceled lipgloss.Color

	// Text
	TitleNormal   lipgloss.Color
	TitleSelected lipgloss.Color
}{
	Primary:   lipgloss.Color("#6C5CE7"),
	Secondary: lipgloss.Color("#A29BFE"),
	Muted:     lipgloss.Color("#636E72"),
	Error:     lipgloss.Color("#D63031"),
	Success:   lipgloss.Color("#00B894"),
	Warning:   lipgloss.Color("#FDCB6E"),

	Pending:  lipgloss.Color("#74B9FF"),
	Running:  lipgloss.Color("#FDCB6E"),
	Finished: lipgloss.Color("#00B894"),
	Failed:   lipgloss.Color("#D63031"),
	Canceled: lipgloss.Color("#636E72"),

	TitleNormal:   lipgloss.Color("#DFE6E9"),
	TitleSelected: lipgloss.Color("#FFFFFF"),
}

// Styles contains all lipgloss styles for the TUI.
type Styles struct {
	// App container
	App lipgloss.Style

	// Header
	Header      lipgloss.Style
	HeaderText  lipgloss.Style
	HeaderCount lipgloss.Style

	// Task rows
	TaskOrder        lipgloss.Style
	TaskName         lipgloss.Style
	TaskNameSelected lipgloss.Style
	TaskID           lipgloss.Style
	CursorSelected   lipgloss.Style
	EmptyState       lipgloss.Style
	RunningIndicator lipgloss.Style
	IdleIndicator    lipgloss.Style
	RefreshingNotice lipgloss.Style
	InfoMsg          lipgloss.Style
	ErrorMsg         lipgloss.Style

	// Footer
	Footer    lipgloss.Style
	FooterKey lipgloss.Style

	// Dialog
	Dialog       lipgloss.Style
	DialogTitle  lipgloss.Style
	DialogPrompt lipgloss.Style
}

// DefaultStyles returns the default styles for the TUI.
func DefaultStyles() Styles {
	return Styles{
		App: lipgloss.NewStyle().
			Padding(1, 2),

		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Primary).
			MarginBottom(1),

		HeaderText: lipgloss.NewStyle().
			Bold(true),

		HeaderCount: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		TaskOrder: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Width(5).
			Align(lipgloss.Right),

		TaskName: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),

		TaskNameSelected: lipgloss.NewStyle().
			Foreground(Colors.TitleSelected).
			Bold(true),

		TaskID: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		CursorSelected: lipgloss.NewStyle().
			Foreground(Colors.Primary).
			Bold(true),

		EmptyState: lipgloss.NewStyle().
			Foreground(Colors.Muted).
			Italic(true),

		RunningIndicator: lipgloss.NewStyle().
			Foreground(Colors.Running).
			Bold(true),

		IdleIndicator: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		RefreshingNotice: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Italic(true),

		InfoMsg: lipgloss.NewStyle().
			Foreground(Colors.Success),

		ErrorMsg: lipgloss.NewStyle().
			Foreground(Colors.Error).
			Bold(true),

		Footer: lipgloss.NewStyle().
			Foreground(Colors.Muted),

		FooterKey: lipgloss.NewStyle().
			Foreground(Colors.Secondary).
			Bold(true),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Colors.Warning).
			Padding(1, 2),

		DialogTitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(Colors.Warning),

		DialogPrompt: lipgloss.NewStyle().
			Foreground(Colors.TitleNormal),
	}
}

// StateColor returns the badge color for a task state.
func StateColor(s domain.TaskState) lipgloss.Color {
	switch s {
	case domain.TaskStatePending:
		return Colors.Pending
	case domain.TaskStateRunning:
		return Colors.Running
	case domain.TaskStateFinished:
		return Colors.Finished
	case domain.TaskStateFailed:
		return Colors.Failed
	case domain.TaskStateCanceled:
		return Colors.Canceled
	default:
		return Colors.Muted
	}
}

// StateIcon returns the icon shown next to a task state.
func StateIcon(s domain.TaskState) string {
	switch s {
	case domain.TaskStatePending:
		return "○"
	case domain.TaskStateRunning:
		return "➜"
	case domain.TaskStateFinished:
		return "✔"
	case domain.TaskStateFailed:
		return "✗"
	case domain.TaskStateCanceled:
		return "⊘"
	default:
		return "?"
	}
}

// StateStyle returns the badge style for a task state.
func (s Styles) StateStyle(state domain.TaskState) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(StateColor(state)).
		Width(10)
}
