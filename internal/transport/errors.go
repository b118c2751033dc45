package transport

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized matches any *Error produced by an HTTP 401.
	ErrUnauthorized     = errors.New("transport: unauthorized")
	// ErrSessionExpired may be returned (wrapped) by a TokenSource. The session
	// is torn down and the request is sent without a bearer token.
	ErrSessionExpired   = errors.New("transport: session expired")
	// ErrUnexpectedStatus matches successful responses outside the accepted status set.
	ErrUnexpectedStatus = errors.New("transport: unexpected status")

	ErrUnsupportedMethod = errors.New("transport: unsupported method")
)

// Kind classifies a failed request so callers can branch without string matching.
type Kind int

const (
	KindUnknown Kind = iota
	KindNetwork
	KindCanceled
	KindUnauthorized
	KindClient
	KindServer
	KindUnexpectedStatus
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindCanceled:
		return "canceled"
	case KindUnauthorized:
		return "unauthorized"
	case KindClient:
		return "client"
	case KindServer:
		return "server"
	case KindUnexpectedStatus:
		return "unexpected_status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is the normalized {status, message} failure every request reduces to.
type Error struct {
	Status  int
	Message string
	Kind    Kind
	Method  string
	Path    string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("transport: %s %s: %d %s", e.Method, e.Path, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is lets errors.Is match the package sentinels against the error kind.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	switch target {
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrUnexpectedStatus:
		return e.Kind == KindUnexpectedStatus
	}
	return false
}

// Message extracts the user-facing text of err.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Message
	}
	return err.Error()
}

// StatusOf returns the HTTP status carried by err, or 0.
func StatusOf(err error) int {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Status
	}
	return 0
}

// KindOf returns the Kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	var terr *Error
	if errors.As(err, &terr) {
		return terr.Kind
	}
	return KindUnknown
}

func kindForStatus(status int) Kind {
	switch {
	case status == 401:
		return KindUnauthorized
	case status >= 500:
		return KindServer
	case status >= 400:
		return KindClient
	case status >= 200 && status < 300:
		return KindUnexpectedStatus
	default:
		return KindUnknown
	}
}
