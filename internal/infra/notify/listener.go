// Package notify connects push-notification transports to the task list.
// Every message on the configured channel triggers one refresh.
package notify

import (
	"context"
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

const logCategory = "notify"

// Refresher reloads the task list.
type Refresher interface {
	Refresh(ctx context.Context) domain.Result[[]domain.TaskRun]
}

// Listener subscribes to a channel and refreshes on every message.
// Fields are ordered to minimize memory padding.
type Listener struct {
	sub       domain.Subscriber
	refresher Refresher
	logger    domain.Logger
	channel   string
}

// NewListener creates a Listener. An empty channel falls back to the default.
func NewListener(sub domain.Subscriber, refresher Refresher, channel string, logger domain.Logger) *Listener {
	if channel == "" {
		channel = domain.DefaultChannel
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Listener{
		sub:       sub,
		refresher: refresher,
		logger:    logger,
		channel:   channel,
	}
}

// Channel returns the channel the listener subscribes to.
func (l *Listener) Channel() string {
	return l.channel
}

// Run subscribes once and blocks until ctx ends. Messages are handled one
// at a time in arrival order; the payload is ignored.
func (l *Listener) Run(ctx context.Context) error {
	l.logger.Info(logCategory, fmt.Sprintf("listening on %s", l.channel))
	err := l.sub.Subscribe(ctx, l.channel, func(msg domain.Message) {
		l.logger.Debug(logCategory, fmt.Sprintf("message on %s (%d bytes)", msg.Channel, len(msg.Payload)))
		l.refresher.Refresh(ctx)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", l.channel, err)
	}
	return nil
}
