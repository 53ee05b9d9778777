package domain

import "strconv"

// TaskState is the numeric state code reported by the server.
type TaskState int

// Known task state codes.
const (
	TaskStatePending  TaskState = 10
	TaskStateRunning  TaskState = 20
	TaskStateFinished TaskState = 30
	TaskStateFailed   TaskState = 40
	TaskStateCanceled TaskState = 50
)

// Display returns a human-readable representation of the state.
// Unknown codes are shown as their number.
func (s TaskState) Display() string {
	switch s {
	case TaskStatePending:
		return "Pending"
	case TaskStateRunning:
		return "Running"
	case TaskStateFinished:
		return "Finished"
	case TaskStateFailed:
		return "Failed"
	case TaskStateCanceled:
		return "Canceled"
	default:
		return strconv.Itoa(int(s))
	}
}
