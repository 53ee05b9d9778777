package tui

// Msg is the sealed interface for all TUI messages.
// All message types must implement the sealed() method.
//
// go-sumtype:decl Msg
type Msg interface {
	sealed()
}

// MsgTasksChanged is sent when the task tree finished a successful refresh.
type MsgTasksChanged struct{}

func (MsgTasksChanged) sealed() {}

// MsgRefreshDone is sent when a refresh started from the TUI returns.
type MsgRefreshDone struct {
	Err error
}

func (MsgRefreshDone) sealed() {}

// MsgCancelDone is sent when a cancel request returns.
type MsgCancelDone struct {
	Err   error
	Count int
}

func (MsgCancelDone) sealed() {}

// MsgNotice carries a user-visible message from the Notifier.
type MsgNotice struct {
	Text  string
	Error bool
}

func (MsgNotice) sealed() {}

// MsgClearError clears the error line.
type MsgClearError struct{}

func (MsgClearError) sealed() {}
