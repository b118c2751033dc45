package transport

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
)

func newTestClient(t *testing.T, h http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, opts...)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return c, srv
}

func TestRequestGetSendsQueryAndBearer(t *testing.T) {
	var gotAuth, gotQuery, gotRequestID string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.RawQuery
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{"message":"ok"}`))
	}, WithTokenSource(TokenSourceFunc(func(context.Context) (string, error) { return "abc", nil })))

	var out struct {
		Message string `json:"message"`
	}
	err := c.Request(context.Background(), Get, "/api/products/get", url.Values{"page": {"2"}, "limit": {"10"}}, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "Bearer abc" {
		t.Fatalf("expected bearer header, got %q", gotAuth)
	}
	if gotQuery != "limit=10&page=2" {
		t.Fatalf("unexpected query %q", gotQuery)
	}
	if gotRequestID == "" {
		t.Fatalf("expected a request id header")
	}
	if out.Message != "ok" {
		t.Fatalf("expected decoded body, got %+v", out)
	}
}

func TestRequestPostSendsJSONBodyWithoutToken(t *testing.T) {
	var gotBody map[string]any
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &gotBody)
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"message":"created"}`))
	}, WithTokenSource(TokenSourceFunc(func(context.Context) (string, error) { return "", nil })))

	err := c.Request(context.Background(), Post, "/api/login", map[string]string{"email": "a@b.co"}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "" {
		t.Fatalf("expected no auth header for empty token, got %q", gotAuth)
	}
	if gotBody["email"] != "a@b.co" {
		t.Fatalf("unexpected body %v", gotBody)
	}
}

func TestRequestNormalizesServerErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		message string
		kind    Kind
	}{
		{"message field", http.StatusBadRequest, `{"message":"Email taken"}`, "Email taken", KindClient},
		{"error field", http.StatusNotFound, `{"error":"not found"}`, "not found", KindClient},
		{"no body", http.StatusInternalServerError, ``, "Request failed", KindServer},
		{"html body", http.StatusBadGateway, `<html>oops</html>`, "Request failed", KindServer},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			})
			err := c.Request(context.Background(), Get, "/x", nil, nil)
			var terr *Error
			if !errors.As(err, &terr) {
				t.Fatalf("expected *Error, got %T %v", err, err)
			}
			if terr.Status != tc.status || terr.Message != tc.message || terr.Kind != tc.kind {
				t.Fatalf("unexpected error %+v", terr)
			}
		})
	}
}

func TestRequestUnauthorizedEmitsSessionExpired(t *testing.T) {
	var calls int32
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid or expired token"}`))
	}, WithSessionExpired(func(ctx context.Context, cause *Error) {
		atomic.AddInt32(&calls, 1)
		if cause.Status != http.StatusUnauthorized {
			t.Errorf("expected 401 cause, got %d", cause.Status)
		}
	}))

	err := c.Request(context.Background(), Get, "/api/orders/get", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if Message(err) != "Invalid or expired token" {
		t.Fatalf("unexpected message %q", Message(err))
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected one session-expired event, got %d", calls)
	}
}

func TestRequestExpiredTokenIsDroppedAndSessionEnded(t *testing.T) {
	var expired int32
	var gotAuth []string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		if r.URL.Path == "/api/login" {
			w.Write([]byte(`{"message":"Login successful","token":"fresh"}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Authorization header required"}`))
	},
		WithTokenSource(TokenSourceFunc(func(context.Context) (string, error) {
			return "", fmt.Errorf("token past exp: %w", ErrSessionExpired)
		})),
		WithSessionExpired(func(context.Context, *Error) { atomic.AddInt32(&expired, 1) }),
	)
	ctx := context.Background()

	var out struct {
		Token string `json:"token"`
	}
	if err := c.Request(ctx, Post, "/api/login", map[string]string{"email": "a@b.co"}, &out); err != nil {
		t.Fatalf("public route must succeed with an expired stored token, got %v", err)
	}
	if out.Token != "fresh" {
		t.Fatalf("unexpected body %+v", out)
	}
	if expired != 1 {
		t.Fatalf("expected one session-expired event, got %d", expired)
	}

	err := c.Request(ctx, Get, "/api/orders/get", nil, nil)
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected unauthorized from a protected route, got %v", err)
	}
	if expired != 2 {
		t.Fatalf("expected one more session-expired event, got %d", expired)
	}
	for i, h := range gotAuth {
		if h != "" {
			t.Fatalf("request %d carried a stale Authorization header %q", i, h)
		}
	}
}

func TestRequestAcceptedStatusSet(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}

	c, _ := newTestClient(t, handler)
	err := c.Request(context.Background(), Delete, "/api/shipper-info/delete/1", nil, nil)
	if !errors.Is(err, ErrUnexpectedStatus) || StatusOf(err) != http.StatusNoContent {
		t.Fatalf("expected unexpected-status error for 204, got %v", err)
	}

	c, _ = newTestClient(t, handler, WithAcceptedStatuses(200, 201, 204))
	if err := c.Request(context.Background(), Delete, "/api/shipper-info/delete/1", nil, nil); err != nil {
		t.Fatalf("expected 204 to be accepted, got %v", err)
	}
}

func TestRequestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := srv.URL
	srv.Close()

	c, err := New(base)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	err = c.Request(context.Background(), Get, "/x", nil, nil)
	if StatusOf(err) != http.StatusInternalServerError || Message(err) != "Server Error" || KindOf(err) != KindNetwork {
		t.Fatalf("expected normalized network error, got %v", err)
	}
}

func TestRequestCanceledContext(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := c.Request(ctx, Get, "/x", nil, nil)
	if KindOf(err) != KindCanceled {
		t.Fatalf("expected canceled kind, got %v", err)
	}
}

func TestRequestDecodeFailure(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"orders": "not-a-list"}`))
	})
	var out struct {
		Orders []string `json:"orders"`
	}
	err := c.Request(context.Background(), Get, "/x", nil, &out)
	if KindOf(err) != KindDecode {
		t.Fatalf("expected decode kind, got %v", err)
	}
}

func TestRequestUnsupportedMethod(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("request should not be sent")
	})
	err := c.Request(context.Background(), Method("head"), "/x", nil, nil)
	if !errors.Is(err, ErrUnsupportedMethod) {
		t.Fatalf("expected ErrUnsupportedMethod, got %v", err)
	}
}

func TestNewRejectsEmptyBaseURL(t *testing.T) {
	if _, err := New("  "); err == nil {
		t.Fatalf("expected error for empty base URL")
	}
}
