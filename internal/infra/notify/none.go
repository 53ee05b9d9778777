package notify

import (
	"context"

	"github.com/runoshun/systask/internal/domain"
)

// Nop never delivers a message.
type Nop struct{}

// Ensure Nop implements domain.Subscriber.
var _ domain.Subscriber = Nop{}

// Subscribe blocks until ctx ends.
func (Nop) Subscribe(ctx context.Context, _ string, _ func(domain.Message)) error {
	<-ctx.Done()
	return nil
}
