package notify

import (
	"context"
	"sync"

	"github.com/runoshun/systask/internal/domain"
)

// Bus is an in-process publish/subscribe hub.
// Publish blocks until every current subscriber of the channel has accepted
// the message, so nothing is dropped.
type Bus struct {
	subs   map[string]map[int]*busSub
	nextID int
	mu     sync.Mutex
}

type busSub struct {
	ch   chan domain.Message
	done chan struct{}
}

// NewBus creates an empty Bus.
func NewBus() *Bus {
	return &Bus{subs: make(map[string]map[int]*busSub)}
}

// Ensure Bus implements domain.Subscriber.
var _ domain.Subscriber = (*Bus)(nil)

// Subscribe implements domain.Subscriber.
func (b *Bus) Subscribe(ctx context.Context, channel string, handler func(domain.Message)) error {
	s := &busSub{
		ch:   make(chan domain.Message, 16),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	if b.subs[channel] == nil {
		b.subs[channel] = make(map[int]*busSub)
	}
	b.subs[channel][id] = s
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.subs[channel], id)
		if len(b.subs[channel]) == 0 {
			delete(b.subs, channel)
		}
		b.mu.Unlock()
		close(s.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg := <-s.ch:
			handler(msg)
		}
	}
}

// Publish delivers payload to every subscriber of channel and returns how
// many received it.
func (b *Bus) Publish(ctx context.Context, channel string, payload []byte) int {
	b.mu.Lock()
	targets := make([]*busSub, 0, len(b.subs[channel]))
	for _, s := range b.subs[channel] {
		targets = append(targets, s)
	}
	b.mu.Unlock()

	delivered := 0
	msg := domain.Message{Channel: channel, Payload: payload}
	for _, s := range targets {
		select {
		case s.ch <- msg:
			delivered++
		case <-s.done:
		case <-ctx.Done():
			return delivered
		}
	}
	return delivered
}

// Subscribers returns the number of active subscribers on channel.
func (b *Bus) Subscribers(channel string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[channel])
}
