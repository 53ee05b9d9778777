package notify

import (
	"bufio"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/runoshun/systask/internal/domain"
)

// SSE backoff bounds between reconnect attempts.
const (
	DefaultSSEMinBackoff = time.Second
	DefaultSSEMaxBackoff = 5 * time.Second
)

// Endpoint resolves the base address once the session is ready.
type Endpoint interface {
	WaitCompleted(ctx context.Context) error
	Address() string
}

// SSE delivers messages from a server-sent events stream served by the core
// API. An event whose name equals the channel, or that carries no name, is a
// message for that channel.
// Fields are ordered to minimize memory padding.
type SSE struct {
	endpoint   Endpoint
	http       *http.Client
	logger     domain.Logger
	path       string
	minBackoff time.Duration
	maxBackoff time.Duration
}

// Ensure SSE implements domain.Subscriber.
var _ domain.Subscriber = (*SSE)(nil)

// NewSSE creates an SSE subscriber for {address}{path}.
func NewSSE(endpoint Endpoint, path string, logger domain.Logger) *SSE {
	if path == "" {
		path = domain.DefaultSSEPath
	}
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &SSE{
		endpoint:   endpoint,
		http:       &http.Client{},
		logger:     logger,
		path:       path,
		minBackoff: DefaultSSEMinBackoff,
		maxBackoff: DefaultSSEMaxBackoff,
	}
}

// Subscribe implements domain.Subscriber. It waits for the session, then
// keeps a stream open, reconnecting with exponential backoff.
func (s *SSE) Subscribe(ctx context.Context, channel string, handler func(domain.Message)) error {
	if err := s.endpoint.WaitCompleted(ctx); err != nil {
		return nil
	}
	url := strings.TrimRight(s.endpoint.Address(), "/") + s.path

	backoff := s.minBackoff
	for {
		received, err := s.stream(ctx, url, channel, handler)
		if ctx.Err() != nil {
			return nil
		}
		if received {
			backoff = s.minBackoff
		}
		if err != nil {
			s.logger.Warn(logCategory, fmt.Sprintf("event stream %s: %v, retrying in %s", url, err, backoff))
		} else {
			s.logger.Debug(logCategory, fmt.Sprintf("event stream %s closed, retrying in %s", url, backoff))
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, s.maxBackoff)
	}
}

// stream reads one connection until it ends. It reports whether the
// connection was established.
func (s *SSE) stream(ctx context.Context, url, channel string, handler func(domain.Message)) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false, err
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := s.http.Do(req)
	if err != nil {
		return false, err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var (
		event   string
		data    []string
		pending bool
	)
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			if pending && (event == "" || event == channel) {
				handler(domain.Message{Channel: channel, Payload: []byte(strings.Join(data, "\n"))})
			}
			event, data, pending = "", nil, false
			continue
		}
		field, value := parseField(line)
		switch field {
		case "event":
			event = value
			pending = true
		case "data":
			data = append(data, value)
			pending = true
		}
	}
	return true, scanner.Err()
}

// parseField splits an event stream line into field name and value.
// Comment lines yield an empty field.
func parseField(line string) (string, string) {
	if strings.HasPrefix(line, ":") {
		return "", ""
	}
	field, value, found := strings.Cut(line, ":")
	if !found {
		return line, ""
	}
	return field, strings.TrimPrefix(value, " ")
}
