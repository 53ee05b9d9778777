package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanRunWithoutConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{
			name: "no args opens the panel",
			args: nil,
			want: false,
		},
		{
			name: "help flag",
			args: []string{"--help"},
			want: true,
		},
		{
			name: "short help on subcommand",
			args: []string{"tasks", "-h"},
			want: true,
		},
		{
			name: "version flag",
			args: []string{"--version"},
			want: true,
		},
		{
			name: "help subcommand",
			args: []string{"help", "tasks"},
			want: true,
		},
		{
			name: "config template",
			args: []string{"config", "template"},
			want: true,
		},
		{
			name: "config show",
			args: []string{"config", "show"},
			want: false,
		},
		{
			name: "tasks list",
			args: []string{"tasks", "list"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canRunWithoutConfig(tt.args))
		})
	}
}
