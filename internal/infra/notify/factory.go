package notify

import (
	"fmt"

	"github.com/runoshun/systask/internal/domain"
)

// NewSubscriber builds the transport named by cfg.Transport.
// An empty transport means SSE.
func NewSubscriber(cfg domain.NotifyConfig, endpoint Endpoint, logger domain.Logger) (domain.Subscriber, error) {
	switch cfg.Transport {
	case domain.TransportSSE, "":
		return NewSSE(endpoint, cfg.SSEPath, logger), nil
	case domain.TransportRedis:
		return NewRedis(cfg, logger), nil
	case domain.TransportNone:
		return Nop{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidTransport, cfg.Transport)
	}
}
