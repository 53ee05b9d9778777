package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/runoshun/systask/internal/domain"
)

// DefaultRedisRetry is the pause before resubscribing after the pub/sub
// channel closes.
const DefaultRedisRetry = time.Second

// Redis delivers messages published on a redis pub/sub channel.
// Fields are ordered to minimize memory padding.
type Redis struct {
	client *redis.Client
	logger domain.Logger
	retry  time.Duration
}

// Ensure Redis implements domain.Subscriber.
var _ domain.Subscriber = (*Redis)(nil)

// NewRedis creates a Redis subscriber from the [notify] settings.
func NewRedis(cfg domain.NotifyConfig, logger domain.Logger) *Redis {
	rc := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	return NewRedisWithClient(rc, logger)
}

// NewRedisWithClient creates a Redis subscriber using an existing client.
func NewRedisWithClient(rc *redis.Client, logger domain.Logger) *Redis {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Redis{client: rc, logger: logger, retry: DefaultRedisRetry}
}

// Subscribe implements domain.Subscriber. When the pub/sub channel closes it
// resubscribes after a short pause until ctx ends.
func (r *Redis) Subscribe(ctx context.Context, channel string, handler func(domain.Message)) error {
	for {
		sub := r.client.Subscribe(ctx, channel)
		r.consume(ctx, sub.Channel(), handler)
		_ = sub.Close()

		if ctx.Err() != nil {
			return nil
		}
		r.logger.Warn(logCategory, fmt.Sprintf("redis channel %s closed, reconnecting", channel))
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(r.retry):
		}
	}
}

func (r *Redis) consume(ctx context.Context, ch <-chan *redis.Message, handler func(domain.Message)) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			handler(domain.Message{Channel: msg.Channel, Payload: []byte(msg.Payload)})
		}
	}
}

// Publish sends payload on channel. Tests use it to feed subscribers.
func (r *Redis) Publish(ctx context.Context, channel string, payload []byte) error {
	if err := r.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", channel, err)
	}
	return nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
