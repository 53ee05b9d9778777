// Package fetch provides the JSON HTTP client used to talk to the core API.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Header names set on every request.
const (
	HeaderContentType = "Content-Type"
	HeaderRequestID   = "X-Request-Id"
	ContentTypeJSON   = "application/json;charset=UTF-8"
)

// maxErrorBody limits how much of an error response is kept.
const maxErrorBody = 64 * 1024

// HTTPError is returned for non-2xx responses.
type HTTPError struct {
	Message    string
	Body       []byte
	StatusCode int
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

// Client issues single-attempt JSON requests.
type Client struct {
	http  *http.Client
	newID func() string
}

// New creates a Client with the given per-request timeout (0 = none).
func New(timeout time.Duration) *Client {
	return &Client{
		http:  &http.Client{Timeout: timeout},
		newID: uuid.NewString,
	}
}

// NewWithHTTPClient creates a Client using a custom http.Client.
func NewWithHTTPClient(hc *http.Client) *Client {
	return &Client{http: hc, newID: uuid.NewString}
}

// Get issues a GET request with params encoded in the query string and
// decodes the JSON response into out (if non-nil).
func (c *Client) Get(ctx context.Context, rawURL string, params map[string]any, headers map[string]string, out any) error {
	return c.do(ctx, http.MethodGet, rawURL, params, nil, headers, out)
}

// Post issues a POST request with body encoded as JSON and decodes the JSON
// response into out (if non-nil).
func (c *Client) Post(ctx context.Context, rawURL string, params map[string]any, body any, headers map[string]string, out any) error {
	return c.do(ctx, http.MethodPost, rawURL, params, body, headers, out)
}

func (c *Client) do(ctx context.Context, method, rawURL string, params map[string]any, body any, headers map[string]string, out any) error {
	target, err := withParams(rawURL, params)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderRequestID, c.newID())
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    errorMessage(data),
			Body:       data,
		}
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// withParams merges params into the query string of rawURL.
func withParams(rawURL string, params map[string]any) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, fmt.Sprint(v))
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// errorMessage extracts a human-readable message from an error body.
func errorMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
		Title   string `json:"title"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		case payload.Title != "":
			return payload.Title
		}
	}
	text := string(bytes.TrimSpace(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	return text
}
