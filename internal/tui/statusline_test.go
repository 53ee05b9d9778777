package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/runoshun/systask/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestStatusLine_Render(t *testing.T) {
	styles := DefaultStyles()
	s := NewStatusLine(80, &styles)

	tests := []struct {
		name   string
		info   StatusLineInfo
		want   []string
		absent []string
	}{
		{
			name: "running tasks",
			info: StatusLineInfo{
				Status:   domain.StatusIndicator{Text: "Running: a > b", Visible: true},
				KeyHints: []KeyHint{{Key: "q", Desc: "quit"}},
			},
			want:   []string{"Running: a > b", "quit"},
			absent: []string{"No running tasks"},
		},
		{
			name: "idle",
			info: StatusLineInfo{KeyHints: []KeyHint{{Key: "r", Desc: "refresh"}}},
			want: []string{"No running tasks", "refresh"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := s.Render(tt.info)
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
			assert.LessOrEqual(t, lipgloss.Width(out), 80)
		})
	}
}

func TestStatusLine_TruncatesLongIndicator(t *testing.T) {
	styles := DefaultStyles()
	s := NewStatusLine(40, &styles)

	out := s.Render(StatusLineInfo{
		Status:   domain.StatusIndicator{Text: "Running: a-very-long-task-name > another-long-task-name", Visible: true},
		KeyHints: []KeyHint{{Key: "q", Desc: "quit"}},
	})

	assert.Contains(t, out, "...")
	assert.Contains(t, out, "quit")
}

func TestStatusInfo_HintsPerMode(t *testing.T) {
	m, _ := newTestModel(t)

	m.mode = ModeConfirm
	assert.Equal(t, "y", m.statusInfo().KeyHints[0].Key)

	m.mode = ModeHelp
	assert.Equal(t, "?", m.statusInfo().KeyHints[0].Key)
}
