// Package session holds the per-process session context: the core API
// address, the active solution/system values, and the readiness gate every
// remote call waits on.
package session

import (
	"context"
	"maps"
	"sync"
)

// Context is a one-time readiness barrier plus the values it was opened with.
// It transitions once from not-ready to ready and never reverts.
// Fields are ordered to minimize memory padding.
type Context struct {
	values  map[string]string
	ready   chan struct{}
	address string
	once    sync.Once
	mu      sync.RWMutex
}

// New creates a Context that is not ready yet.
func New() *Context {
	return &Context{
		values: make(map[string]string),
		ready:  make(chan struct{}),
	}
}

// NewCompleted creates a Context that is already open.
func NewCompleted(address string, values map[string]string) *Context {
	c := New()
	c.Complete(address, values)
	return c
}

// Completed returns true once the gate is open.
func (c *Context) Completed() bool {
	select {
	case <-c.ready:
		return true
	default:
		return false
	}
}

// Done returns a channel that is closed when the gate opens.
func (c *Context) Done() <-chan struct{} {
	return c.ready
}

// WaitCompleted blocks until the gate opens. The gate has no timeout of its
// own; only ctx can end the wait early.
func (c *Context) WaitCompleted(ctx context.Context) error {
	select {
	case <-c.ready:
		return nil
	default:
	}
	select {
	case <-c.ready:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Complete records the address and values and opens the gate.
// Only the first call has any effect.
func (c *Context) Complete(address string, values map[string]string) {
	c.once.Do(func() {
		c.mu.Lock()
		c.address = address
		maps.Copy(c.values, values)
		c.mu.Unlock()
		close(c.ready)
	})
}

// Address returns the core API base address.
func (c *Context) Address() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.address
}

// Get returns a session value, or "" if unset.
func (c *Context) Get(key string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}
