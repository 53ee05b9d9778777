// Package console writes user-facing notifications to a terminal stream.
package console

import (
	"fmt"
	"io"
	"sync"

	"github.com/runoshun/systask/internal/domain"
)

// Ensure Notifier implements domain.Notifier.
var _ domain.Notifier = (*Notifier)(nil)

// Notifier prints messages line by line.
type Notifier struct {
	w  io.Writer
	mu sync.Mutex
}

// NewNotifier creates a Notifier writing to w.
func NewNotifier(w io.Writer) *Notifier {
	return &Notifier{w: w}
}

// ShowError prints "Error: msg".
func (n *Notifier) ShowError(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintf(n.w, "Error: %s\n", msg)
}

// ShowInfo prints msg.
func (n *Notifier) ShowInfo(msg string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	_, _ = fmt.Fprintln(n.w, msg)
}

// Relay forwards notifications to a replaceable target.
// The target starts as the one given to NewRelay.
type Relay struct {
	target domain.Notifier
	mu     sync.RWMutex
}

// Ensure Relay implements domain.Notifier.
var _ domain.Notifier = (*Relay)(nil)

// NewRelay creates a Relay forwarding to target.
func NewRelay(target domain.Notifier) *Relay {
	return &Relay{target: target}
}

// SetTarget replaces the target and returns the previous one.
func (r *Relay) SetTarget(target domain.Notifier) domain.Notifier {
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.target
	r.target = target
	return prev
}

func (r *Relay) current() domain.Notifier {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.target
}

// ShowError forwards to the current target.
func (r *Relay) ShowError(msg string) {
	if t := r.current(); t != nil {
		t.ShowError(msg)
	}
}

// ShowInfo forwards to the current target.
func (r *Relay) ShowInfo(msg string) {
	if t := r.current(); t != nil {
		t.ShowInfo(msg)
	}
}
