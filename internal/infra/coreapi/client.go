// Package coreapi implements domain.CoreAPI on top of the fetch client.
package coreapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/runoshun/systask/internal/domain"
	"github.com/runoshun/systask/internal/infra/fetch"
	"github.com/runoshun/systask/internal/session"
)

// Ensure Client implements domain.CoreAPI.
var _ domain.CoreAPI = (*Client)(nil)

// pageSize is the page size used by list endpoints.
const pageSize = 1000

const logCategory = "coreapi"

// Fetcher is the HTTP transport used by Client.
type Fetcher interface {
	Get(ctx context.Context, rawURL string, params map[string]any, headers map[string]string, out any) error
	Post(ctx context.Context, rawURL string, params map[string]any, body any, headers map[string]string, out any) error
}

// Client is the core API client. Every call waits for the session gate.
type Client struct {
	session  *session.Context
	fetch    Fetcher
	notifier domain.Notifier
	logger   domain.Logger
}

// New creates a new Client.
func New(sess *session.Context, f Fetcher, notifier domain.Notifier, logger domain.Logger) *Client {
	if logger == nil {
		logger = domain.NopLogger{}
	}
	return &Client{
		session:  sess,
		fetch:    f,
		notifier: notifier,
		logger:   logger,
	}
}

// Cli executes a generic core command.
func (c *Client) Cli(ctx context.Context, api string, data map[string]any) domain.Result[json.RawMessage] {
	addr, err := c.ready(ctx)
	if err != nil {
		return fail[json.RawMessage](c, "execute command", err)
	}
	if data == nil {
		data = map[string]any{}
	}
	path := addr + "/pstscmds/null/" + url.PathEscape(strings.ToLower(api))

	var out json.RawMessage
	if err := c.fetch.Post(ctx, path, nil, data, nil, &out); err != nil {
		return fail[json.RawMessage](c, "execute command", err)
	}
	c.logger.Debug(logCategory, fmt.Sprintf("command %q executed", api))
	return domain.Ok(out)
}

// CurUserTemplates lists the current user's templates in the active solution.
func (c *Client) CurUserTemplates(ctx context.Context) domain.Result[[]domain.Template] {
	addr, err := c.ready(ctx)
	if err != nil {
		return fail[[]domain.Template](c, "list templates", err)
	}
	path := addr + "/psdevslntempls/fetchcuruserall"
	params := map[string]any{"size": pageSize, "page": 0}
	body := map[string]any{
		"n_psdevslnid_eq": c.session.Get(domain.SessionSolutionKey),
		"size":            pageSize,
		"page":            0,
	}

	var out []domain.Template
	if err := c.fetch.Post(ctx, path, params, body, nil, &out); err != nil {
		return fail[[]domain.Template](c, "list templates", err)
	}
	if out == nil {
		out = []domain.Template{}
	}
	return domain.Ok(out)
}

// TemplateRepoURL resolves a template's code repository URL.
// An empty URL is a successful result; callers decide whether it is usable.
func (c *Client) TemplateRepoURL(ctx context.Context, templateID string) domain.Result[string] {
	if templateID == "" {
		return fail[string](c, "resolve template repository", domain.ErrEmptyTemplateID)
	}
	addr, err := c.ready(ctx)
	if err != nil {
		return fail[string](c, "resolve template repository", err)
	}
	path := addr + "/psdevslntempls/" + url.PathEscape(templateID) + "/getrepourl"
	body := map[string]any{"psdevslnid": c.session.Get(domain.SessionSolutionKey)}

	var out struct {
		CodeRepoURL string `json:"coderepourl"`
	}
	if err := c.fetch.Post(ctx, path, nil, body, nil, &out); err != nil {
		return fail[string](c, "resolve template repository", err)
	}
	return domain.Ok(out.CodeRepoURL)
}

// CurSystemRuns lists the task runs of the active system.
func (c *Client) CurSystemRuns(ctx context.Context) domain.Result[[]domain.TaskRun] {
	addr, err := c.ready(ctx)
	if err != nil {
		return fail[[]domain.TaskRun](c, "list system tasks", err)
	}
	path := addr + "/pssystemruns/fetchcursys"
	params := map[string]any{
		"n_psdevslnid_eq": c.session.Get(domain.SessionSolutionKey),
		"size":            pageSize,
		"page":            0,
	}
	headers := map[string]string{
		domain.SessionSystemKey: c.session.Get(domain.SessionSystemKey),
	}

	var out []domain.TaskRun
	if err := c.fetch.Get(ctx, path, params, headers, &out); err != nil {
		return fail[[]domain.TaskRun](c, "list system tasks", err)
	}
	if out == nil {
		out = []domain.TaskRun{}
	}
	c.logger.Debug(logCategory, fmt.Sprintf("fetched %d system tasks", len(out)))
	return domain.Ok(out)
}

// CancelSystemRuns cancels the given task runs in one batch.
// The server answers with a JSON boolean; an empty 2xx body counts as accepted.
func (c *Client) CancelSystemRuns(ctx context.Context, keys []string) domain.Result[bool] {
	addr, err := c.ready(ctx)
	if err != nil {
		return fail[bool](c, "cancel system tasks", err)
	}
	if keys == nil {
		keys = []string{}
	}
	path := addr + "/pssysdevbktasks/cancel"

	var raw json.RawMessage
	if err := c.fetch.Post(ctx, path, nil, map[string]any{"keys": keys}, nil, &raw); err != nil {
		return fail[bool](c, "cancel system tasks", err)
	}
	accepted := parseAck(raw)
	c.logger.Info(logCategory, fmt.Sprintf("cancel of %d tasks accepted=%t", len(keys), accepted))
	return domain.Ok(accepted)
}

// ready waits for the session gate and returns the base address.
func (c *Client) ready(ctx context.Context) (string, error) {
	if !c.session.Completed() {
		c.logger.Debug(logCategory, "waiting for session")
		if err := c.session.WaitCompleted(ctx); err != nil {
			return "", err
		}
	}
	addr := strings.TrimRight(c.session.Address(), "/")
	if addr == "" {
		return "", domain.ErrNoAddress
	}
	return addr, nil
}

// fail logs and reports err to the user and wraps it in a failed Result.
// Context cancellation is the caller's own doing and is not reported.
func fail[T any](c *Client, op string, err error) domain.Result[T] {
	wrapped := fmt.Errorf("%s: %w", op, err)
	if errors.Is(err, context.Canceled) {
		return domain.Fail[T](wrapped)
	}
	c.logger.Error(logCategory, wrapped.Error())
	if c.notifier == nil {
		return domain.Fail[T](wrapped)
	}
	c.notifier.ShowError(ErrorText(op, err))
	return domain.Fail[T](domain.Reported(wrapped))
}

// ErrorText formats an error for display to the user.
func ErrorText(op string, err error) string {
	var httpErr *fetch.HTTPError
	if errors.As(err, &httpErr) {
		if httpErr.Message != "" {
			return fmt.Sprintf("Failed to %s (%d): %s", op, httpErr.StatusCode, httpErr.Message)
		}
		return fmt.Sprintf("Failed to %s (%d)", op, httpErr.StatusCode)
	}
	return fmt.Sprintf("Failed to %s: %v", op, err)
}

// parseAck interprets a cancel response body.
// An empty body is an acceptance. Otherwise the decoded value must be truthy:
// null, false, 0 and "" are rejections, as is an object with success=false.
func parseAck(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return true
	}
	var v any
	if err := json.Unmarshal(trimmed, &v); err != nil {
		return true
	}
	switch ack := v.(type) {
	case nil:
		return false
	case bool:
		return ack
	case float64:
		return ack != 0
	case string:
		return ack != ""
	case map[string]any:
		if success, ok := ack["success"].(bool); ok {
			return success
		}
		return true
	default:
		return true
	}
}
