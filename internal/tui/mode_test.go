package tui

import (
	"testing"

	"github.com/runoshun/systask/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestMode_String(t *testing.T) {
	assert.Equal(t, "normal", ModeNormal.String())
	assert.Equal(t, "confirm", ModeConfirm.String())
	assert.Equal(t, "help", ModeHelp.String())
	assert.Equal(t, "unknown", Mode(99).String())
}

func TestConfirmAction_String(t *testing.T) {
	assert.Equal(t, "", ConfirmNone.String())
	assert.Equal(t, "cancel all", ConfirmCancelAll.String())
}

func TestStateIcon(t *testing.T) {
	tests := []struct {
		state domain.TaskState
		want  string
	}{
		{domain.TaskStatePending, "○"},
		{domain.TaskStateRunning, "➜"},
		{domain.TaskStateFinished, "✔"},
		{domain.TaskStateFailed, "✗"},
		{domain.TaskStateCanceled, "⊘"},
		{domain.TaskState(99), "?"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StateIcon(tt.state))
		assert.NotEmpty(t, StateColor(tt.state))
	}
}
