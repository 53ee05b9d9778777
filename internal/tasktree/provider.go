// Package tasktree holds the in-memory list of system tasks shown to the
// user and the running-task status indicator derived from it.
package tasktree

import (
	"context"
	"fmt"
	"sync"

	"github.com/runoshun/systask/internal/domain"
)

const logCategory = "tasktree"

// Provider keeps the most recent successfully fetched task list.
// The list is only ever replaced as a whole by Refresh; when two refreshes
// race, the last to complete wins.
// Fields are ordered to minimize memory padding.
type Provider struct {
	api       domain.CoreAPI
	notifier  domain.Notifier
	logger    domain.Logger
	listeners map[int]func()
	items     []domain.TaskRun
	status    domain.StatusIndicator
	nextID    int
	mu        sync.RWMutex
}

// Ensure Provider implements domain.TaskTree.
var _ domain.TaskTree = (*Provider)(nil)

// New creates a Provider with an empty task list.
func New(api domain.CoreAPI, notifier domain.Notifier, logger domain.Logger) *Provider {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Provider{
		api:       api,
		notifier:  notifier,
		logger:    logger,
		listeners: make(map[int]func()),
	}
}

// Refresh fetches the full task list and replaces the held list with it,
// sorted ascending by order value. Listeners are notified on success.
// On failure the previous list is kept; the API client has already told
// the user what went wrong.
func (p *Provider) Refresh(ctx context.Context) domain.Result[[]domain.TaskRun] {
	res := p.api.CurSystemRuns(ctx)
	if !res.IsOk() {
		p.logger.Warn(logCategory, fmt.Sprintf("refresh failed, keeping %d tasks: %v", p.Len(), res.Err()))
		return res
	}

	items := append([]domain.TaskRun(nil), res.Value()...)
	domain.SortTaskRuns(items)
	status := domain.NewStatusIndicator(items)

	p.mu.Lock()
	p.items = items
	p.status = status
	listeners := make([]func(), 0, len(p.listeners))
	for _, fn := range p.listeners {
		listeners = append(listeners, fn)
	}
	p.mu.Unlock()

	p.logger.Debug(logCategory, fmt.Sprintf("refreshed %d tasks", len(items)))
	for _, fn := range listeners {
		fn()
	}
	return domain.Ok(append([]domain.TaskRun(nil), items...))
}

// Cancel asks the server to cancel every task currently held, in a single
// batch, and refreshes once on success. An empty list still sends the
// request. It returns the number of keys sent. On failure the held list is
// left unchanged.
func (p *Provider) Cancel(ctx context.Context) (int, error) {
	keys := domain.TaskRunIDs(p.Items())

	res := p.api.CancelSystemRuns(ctx, keys)
	if !res.IsOk() {
		return len(keys), res.Err()
	}
	if !res.Value() {
		p.logger.Warn(logCategory, fmt.Sprintf("server rejected cancel of %d tasks", len(keys)))
		if p.notifier == nil {
			return len(keys), domain.ErrCancelRejected
		}
		p.notifier.ShowError("Failed to cancel tasks")
		return len(keys), domain.Reported(domain.ErrCancelRejected)
	}

	p.logger.Info(logCategory, fmt.Sprintf("canceled %d tasks", len(keys)))
	return len(keys), p.Refresh(ctx).Err()
}

// Items returns a copy of the held task list.
func (p *Provider) Items() []domain.TaskRun {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return append([]domain.TaskRun(nil), p.items...)
}

// Len returns the number of held tasks.
func (p *Provider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}

// Status returns the current status indicator.
func (p *Provider) Status() domain.StatusIndicator {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.status
}

// OnChange registers fn to be called after every successful refresh.
// The returned func unregisters it.
func (p *Provider) OnChange(fn func()) func() {
	p.mu.Lock()
	id := p.nextID
	p.nextID++
	p.listeners[id] = fn
	p.mu.Unlock()

	return func() {
		p.mu.Lock()
		delete(p.listeners, id)
		p.mu.Unlock()
	}
}

// Changes returns a channel that receives a value after successful refreshes.
// Changes that arrive while a value is pending are coalesced.
// The returned func unregisters and closes the channel.
func (p *Provider) Changes() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	var (
		mu     sync.Mutex
		closed bool
		once   sync.Once
	)
	unregister := p.OnChange(func() {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case ch <- struct{}{}:
		default:
		}
	})
	stop := func() {
		once.Do(func() {
			unregister()
			mu.Lock()
			closed = true
			close(ch)
			mu.Unlock()
		})
	}
	return ch, stop
}
