package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/systask/internal/domain"
)

// StatusLineInfo contains information for rendering the status line.
// Fields are ordered to minimize memory padding.
type StatusLineInfo struct {
	KeyHints []KeyHint
	Status   domain.StatusIndicator
}

// KeyHint represents a key and its description.
type KeyHint struct {
	Key  string
	Desc string
}

// StatusLine renders the running-task indicator and key hints at the bottom
// of the screen.
// Fields are ordered to minimize memory padding.
type StatusLine struct {
	styles *Styles
	width  int
}

// NewStatusLine creates a new StatusLine with the given width and styles.
func NewStatusLine(width int, styles *Styles) *StatusLine {
	return &StatusLine{
		width:  width,
		styles: styles,
	}
}

// SetWidth updates the status line width.
func (s *StatusLine) SetWidth(width int) {
	s.width = width
}

// Render renders the status line with the given info.
func (s *StatusLine) Render(info StatusLineInfo) string {
	var indicator string
	if info.Status.Visible {
		indicator = s.styles.RunningIndicator.Render(info.Status.Text)
	} else {
		indicator = s.styles.IdleIndicator.Render("No running tasks")
	}

	hints := make([]string, 0, len(info.KeyHints))
	for _, h := range info.KeyHints {
		hints = append(hints, s.styles.FooterKey.Render(h.Key)+" "+h.Desc)
	}
	right := strings.Join(hints, "  ")

	contentWidth := s.width - 2 // Account for padding
	rightLen := lipgloss.Width(right)
	leftLen := lipgloss.Width(indicator)

	// Truncate the indicator if needed
	maxLeft := contentWidth - rightLen - 2
	if s.width > 0 && leftLen > maxLeft {
		if maxLeft <= 3 {
			indicator = "..."
		} else {
			indicator = lipgloss.NewStyle().MaxWidth(maxLeft-3).Render(indicator) + "..."
		}
		leftLen = lipgloss.Width(indicator)
	}

	spacing := contentWidth - leftLen - rightLen
	if spacing < 2 {
		spacing = 2
	}

	full := indicator + strings.Repeat(" ", spacing) + right
	if s.width <= 0 {
		return s.styles.Footer.Render(full)
	}
	return s.styles.Footer.Width(s.width).Render(full)
}

// statusInfo returns status line info for the current mode.
func (m *Model) statusInfo() StatusLineInfo {
	info := StatusLineInfo{Status: m.status}

	switch m.mode {
	case ModeNormal:
		info.KeyHints = []KeyHint{
			{Key: "j/k", Desc: "nav"},
			{Key: "r", Desc: "refresh"},
			{Key: "x", Desc: "cancel all"},
			{Key: "?", Desc: "help"},
			{Key: "q", Desc: "quit"},
		}
	case ModeConfirm:
		info.KeyHints = []KeyHint{
			{Key: "y", Desc: "confirm"},
			{Key: "n", Desc: "back"},
		}
	case ModeHelp:
		info.KeyHints = []KeyHint{
			{Key: "?", Desc: "close"},
			{Key: "q", Desc: "quit"},
		}
	}
	return info
}
