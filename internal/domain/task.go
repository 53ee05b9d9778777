// Package domain contains core business entities and interfaces.
package domain

import (
	"cmp"
	"slices"
	"strings"
)

// TaskRun represents a system task tracked by the core API server.
// Records are created from API responses and replaced wholesale on refresh.
// Fields are ordered to minimize memory padding.
type TaskRun struct {
	ID    string    `json:"pssysdevbktaskid" yaml:"id"`
	Name  string    `json:"pssysdevbktaskname" yaml:"name"`
	State TaskState `json:"taskstate" yaml:"state"`
	Order int       `json:"ordervalue" yaml:"order"`
}

// IsRunning returns true if the task is currently executing.
func (t TaskRun) IsRunning() bool {
	return t.State == TaskStateRunning
}

// DisplayName returns the name, falling back to the ID for unnamed tasks.
func (t TaskRun) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.ID
}

// SortTaskRuns sorts tasks ascending by order value in place.
// Ties are broken arbitrarily.
func SortTaskRuns(tasks []TaskRun) {
	slices.SortFunc(tasks, func(a, b TaskRun) int {
		return cmp.Compare(a.Order, b.Order)
	})
}

// TaskRunIDs returns the IDs of all tasks in list order.
func TaskRunIDs(tasks []TaskRun) []string {
	ids := make([]string, 0, len(tasks))
	for _, t := range tasks {
		ids = append(ids, t.ID)
	}
	return ids
}

// RunningTaskNames returns the display names of running tasks in list order.
func RunningTaskNames(tasks []TaskRun) []string {
	var names []string
	for _, t := range tasks {
		if t.IsRunning() {
			names = append(names, t.DisplayName())
		}
	}
	return names
}

// StatusSeparator joins running task names in the status indicator.
const StatusSeparator = " > "

// StatusIndicator summarizes the currently running tasks.
type StatusIndicator struct {
	Text    string
	Tooltip string
	Visible bool
}

// NewStatusIndicator builds the indicator for the given task list.
// The indicator is hidden with empty text when nothing is running.
func NewStatusIndicator(tasks []TaskRun) StatusIndicator {
	names := RunningTaskNames(tasks)
	if len(names) == 0 {
		return StatusIndicator{}
	}
	return StatusIndicator{
		Text:    "Running: " + strings.Join(names, StatusSeparator),
		Tooltip: "Open the task panel",
		Visible: true,
	}
}
