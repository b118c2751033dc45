// Package transport is the single choke-point for calls to the storefront API:
// verb dispatch, bearer token, and {status, message} error normalization.
package transport

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
)

type Method string

const (
	Get    Method = "get"
	Post   Method = "post"
	Put    Method = "put"
	Delete Method = "delete"
	Patch  Method = "patch"
)

func (m Method) httpMethod() (string, bool) {
	switch m {
	case Get:
		return http.MethodGet, true
	case Post:
		return http.MethodPost, true
	case Put:
		return http.MethodPut, true
	case Delete:
		return http.MethodDelete, true
	case Patch:
		return http.MethodPatch, true
	}
	return "", false
}

// sendsQuery reports whether data travels as query parameters instead of a body.
func (m Method) sendsQuery() bool {
	return m == Get || m == Delete
}

// DefaultAcceptedStatuses are the statuses treated as success.
var DefaultAcceptedStatuses = []int{http.StatusOK, http.StatusCreated}

// TokenSource supplies the bearer token attached to each request.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// TokenSourceFunc adapts a function to TokenSource.
type TokenSourceFunc func(ctx context.Context) (string, error)

func (f TokenSourceFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// SessionExpiredFunc is emitted when the server answers 401 or the token
// source reports ErrSessionExpired. The composing application decides what
// tearing down a session means.
type SessionExpiredFunc func(ctx context.Context, cause *Error)

// Querier lets typed parameter structs serialize themselves.
type Querier interface {
	Query() url.Values
}

// Requester is the contract controllers depend on.
type Requester interface {
	Request(ctx context.Context, method Method, path string, data, out any) error
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithAcceptedStatuses replaces the success status set.
func WithAcceptedStatuses(statuses ...int) Option {
	return func(c *Client) {
		if len(statuses) == 0 {
			return
		}
		c.accepted = make(map[int]struct{}, len(statuses))
		for _, s := range statuses {
			c.accepted[s] = struct{}{}
		}
	}
}

func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) {
		c.tokens = ts
	}
}

func WithSessionExpired(fn SessionExpiredFunc) Option {
	return func(c *Client) {
		c.onExpired = fn
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client is the transport adapter.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	accepted  map[int]struct{}
	tokens    TokenSource
	onExpired SessionExpiredFunc
	logger    *slog.Logger
}

// New builds a Client rooted at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("transport: base URL is required")
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("transport: invalid base URL %q: %w", baseURL, err)
	}

	c := &Client{
		baseURL: baseURL,
		http:    http.DefaultClient,
		logger:  slog.Default(),
	}
	WithAcceptedStatuses(DefaultAcceptedStatuses...)(c)
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Request performs one API call. For get/delete, data becomes query
// parameters; otherwise it is JSON-encoded as the body. On success the body is
// decoded into out (when out is non-nil). Every failure is an *Error.
func (c *Client) Request(ctx context.Context, method Method, path string, data, out any) error {
	verb, ok := method.httpMethod()
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnsupportedMethod, method)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	// 1. --- Build Request ---
	req, err := c.newRequest(ctx, method, verb, path, data)
	if err != nil {
		return err
	}
	requestID := req.Header.Get("X-Request-ID")

	// 2. --- Attach Bearer Token ---
	// An expired token tears the session down and the request goes out
	// anonymously, so public routes such as login still succeed.
	expired := false
	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		switch {
		case errors.Is(err, ErrSessionExpired):
			c.expire(ctx, &Error{Status: http.StatusUnauthorized, Message: "Session expired", Kind: KindUnauthorized, Method: verb, Path: path, Err: err})
			expired = true
		case err != nil:
			return &Error{Status: http.StatusInternalServerError, Message: "Server Error", Kind: KindUnknown, Method: verb, Path: path, Err: err}
		case token != "":
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	// 3. --- Perform ---
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return &Error{Message: "Request canceled", Kind: KindCanceled, Method: verb, Path: path, Err: err}
		}
		c.logger.Debug("api request failed", "method", verb, "path", path, "request_id", requestID, "error", err)
		return &Error{Status: http.StatusInternalServerError, Message: "Server Error", Kind: KindNetwork, Method: verb, Path: path, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Status: http.StatusInternalServerError, Message: "Server Error", Kind: KindNetwork, Method: verb, Path: path, Err: err}
	}
	c.logger.Debug("api request",
		"method", verb,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"request_id", requestID,
	)

	// 4. --- Success ---
	if _, ok := c.accepted[resp.StatusCode]; ok {
		if out == nil || len(bytes.TrimSpace(body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(body, out); err != nil {
			return &Error{Status: resp.StatusCode, Message: "Invalid response from server", Kind: KindDecode, Method: verb, Path: path, Err: err}
		}
		return nil
	}

	// 5. --- Failure ---
	terr := &Error{
		Status:  resp.StatusCode,
		Message: serverMessage(body),
		Kind:    kindForStatus(resp.StatusCode),
		Method:  verb,
		Path:    path,
	}
	if terr.Kind == KindUnexpectedStatus {
		terr.Message = fmt.Sprintf("Unexpected response status %d", resp.StatusCode)
	}
	if terr.Kind == KindUnauthorized && !expired {
		c.expire(ctx, terr)
	}
	return terr
}

func (c *Client) newRequest(ctx context.Context, method Method, verb, path string, data any) (*http.Request, error) {
	target, err := url.Parse(c.baseURL + "/" + strings.TrimLeft(path, "/"))
	if err != nil {
		return nil, &Error{Message: "Invalid request path", Kind: KindUnknown, Method: verb, Path: path, Err: err}
	}

	var body io.Reader
	if method.sendsQuery() {
		extra, err := encodeQuery(data)
		if err != nil {
			return nil, &Error{Message: "Invalid request parameters", Kind: KindUnknown, Method: verb, Path: path, Err: err}
		}
		if len(extra) > 0 {
			q := target.Query()
			for key, values := range extra {
				for _, v := range values {
					q.Add(key, v)
				}
			}
			target.RawQuery = q.Encode()
		}
	} else if data != nil {
		payload, err := json.Marshal(data)
		if err != nil {
			return nil, &Error{Message: "Invalid request body", Kind: KindUnknown, Method: verb, Path: path, Err: err}
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, verb, target.String(), body)
	if err != nil {
		return nil, &Error{Message: "Invalid request", Kind: KindUnknown, Method: verb, Path: path, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

func (c *Client) expire(ctx context.Context, cause *Error) {
	c.logger.Info("session expired", "method", cause.Method, "path", cause.Path, "status", cause.Status)
	if c.onExpired != nil {
		c.onExpired(ctx, cause)
	}
}

func encodeQuery(data any) (url.Values, error) {
	switch v := data.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return v, nil
	case Querier:
		return v.Query(), nil
	case map[string]string:
		q := url.Values{}
		for key, value := range v {
			q.Set(key, value)
		}
		return q, nil
	case map[string]any:
		q := url.Values{}
		for key, value := range v {
			q.Set(key, fmt.Sprint(value))
		}
		return q, nil
	default:
		return nil, fmt.Errorf("unsupported query parameters %T", data)
	}
}

// serverMessage pulls "message" (or "error") from a JSON error body.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if len(bytes.TrimSpace(body)) > 0 && json.Unmarshal(body, &payload) == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return "Request failed"
}
