package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/runoshun/systask/internal/domain"
)

const logCategory = "tui"

// noticeBuffer bounds pending notices; extra notices are dropped and logged.
const noticeBuffer = 16

// Notifier forwards user-visible messages to the TUI error line.
// Sends never block: notices arriving while the buffer is full are dropped.
// Fields are ordered to minimize memory padding.
type Notifier struct {
	logger domain.Logger
	ch     chan MsgNotice
}

// Ensure Notifier implements domain.Notifier.
var _ domain.Notifier = (*Notifier)(nil)

// NewNotifier creates a Notifier with a bounded buffer.
// Dropped notices are written to logger; nil discards them.
func NewNotifier(logger domain.Logger) *Notifier {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Notifier{
		logger: logger,
		ch:     make(chan MsgNotice, noticeBuffer),
	}
}

// ShowError queues an error notice.
func (n *Notifier) ShowError(msg string) {
	n.send(MsgNotice{Text: msg, Error: true})
}

// ShowInfo queues an informational notice.
func (n *Notifier) ShowInfo(msg string) {
	n.send(MsgNotice{Text: msg})
}

func (n *Notifier) send(msg MsgNotice) {
	select {
	case n.ch <- msg:
	default:
		level := n.logger.Info
		if msg.Error {
			level = n.logger.Error
		}
		level(logCategory, "notice dropped, buffer full: "+msg.Text)
	}
}

// wait returns a command delivering the next notice.
func (n *Notifier) wait() tea.Cmd {
	return func() tea.Msg {
		return <-n.ch
	}
}
