package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/DjordjeVuckovic/newsroom/internal/apperr"
	"github.com/DjordjeVuckovic/newsroom/internal/dto"
	"github.com/google/uuid"
)

const maxErrorBody = 512

type ClientOption func(client *Client)

// TokenSource returns the bearer token to attach, or "" for anonymous calls.
type TokenSource func() string

type Client struct {
	base  url.URL
	http  *http.Client
	token TokenSource
}

func NewClient(baseUrl string, opts ...ClientOption) (*Client, error) {
	base, err := url.Parse(baseUrl)
	if err != nil {
		return nil, err
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("backend url %q must be absolute", baseUrl)
	}

	client := &Client{
		base: *base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		token: func() string { return "" },
	}

	for _, opt := range opts {
		opt(client)
	}

	return client, nil
}

func NewClientFromConfig(cfg Config, opts ...ClientOption) (*Client, error) {
	return NewClient(cfg.BaseURL, append([]ClientOption{WithTimeout(cfg.Timeout)}, opts...)...)
}

func WithHttpClient(httpClient *http.Client) ClientOption {
	return func(client *Client) {
		client.http = httpClient
	}
}

func WithTimeout(timeout time.Duration) ClientOption {
	return func(client *Client) {
		if timeout > 0 {
			client.http.Timeout = timeout
		}
	}
}

func WithTokenSource(src TokenSource) ClientOption {
	return func(client *Client) {
		if src != nil {
			client.token = src
		}
	}
}

// BaseURL is the backend root the client talks to.
func (c *Client) BaseURL() string {
	return c.base.String()
}

type call struct {
	kind   apperr.Kind
	method string
	path   string
	token  string
	body   any
	out    any
	// stream receives the raw body of a 2xx response instead of out.
	stream io.Writer
}

func (c *Client) do(ctx context.Context, cl call) (int64, error) {
	op := cl.method + " " + cl.path

	var body io.Reader
	if cl.body != nil {
		data, err := json.Marshal(cl.body)
		if err != nil {
			return 0, fmt.Errorf("marshal %s request: %w", op, err)
		}
		body = bytes.NewReader(data)
	}

	reqURL := c.base.JoinPath(cl.path)
	request, err := http.NewRequestWithContext(ctx, cl.method, reqURL.String(), body)
	if err != nil {
		return 0, err
	}

	requestID := uuid.NewString()
	request.Header.Set("X-Request-ID", requestID)
	if cl.body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if cl.stream == nil {
		request.Header.Set("Accept", "application/json")
	}

	token := cl.token
	if token == "" {
		token = c.token()
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(request)
	if err != nil {
		slog.Debug("Backend request failed", "op", op, "request_id", requestID, "error", err)
		return 0, &apperr.RemoteError{Kind: cl.kind, Op: op, Err: err}
	}
	defer resp.Body.Close()

	slog.Debug("Backend request", "op", op, "request_id", requestID, "status", resp.StatusCode, "latency", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return 0, &apperr.RemoteError{
			Kind:   cl.kind,
			Op:     op,
			Status: resp.StatusCode,
			Body:   errorDetail(respBody),
		}
	}

	if cl.stream != nil {
		n, err := io.Copy(cl.stream, resp.Body)
		if err != nil {
			return n, &apperr.RemoteError{Kind: cl.kind, Op: op, Err: err}
		}
		return n, nil
	}

	if cl.out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return 0, nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, &apperr.RemoteError{Kind: cl.kind, Op: op, Err: err}
	}
	if err := json.Unmarshal(respBody, cl.out); err != nil {
		return 0, &apperr.RemoteError{Kind: cl.kind, Op: op, Status: resp.StatusCode, Err: fmt.Errorf("unmarshal response: %w", err)}
	}

	return int64(len(respBody)), nil
}

// errorDetail pulls FastAPI style {"detail": ...} out of an error body and
// falls back to the raw text.
func errorDetail(body []byte) string {
	var er dto.ErrorResponse
	if err := json.Unmarshal(body, &er); err == nil && er.Detail != nil {
		if s, ok := er.Detail.(string); ok {
			return s
		}
		if b, err := json.Marshal(er.Detail); err == nil {
			return string(b)
		}
	}
	return strings.TrimSpace(string(body))
}

// Ping checks that the backend answers. It lists articles since the backend
// has no dedicated health route.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.do(ctx, call{kind: apperr.KindFetch, method: http.MethodGet, path: "/articles"})
	return err
}
