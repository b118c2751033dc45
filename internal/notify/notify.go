// Package notify carries transient, auto-dismissing user feedback (toasts).
package notify

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/01moynul/shopcart-admin/internal/transport"
)

type Kind string

const (
	Success Kind = "success"
	Error   Kind = "error"
	Info    Kind = "info"
)

// Toast is a single transient message.
type Toast struct {
	Kind   Kind
	Text   string
	Source string
	At     time.Time
}

// Notifier shows toasts to the user.
type Notifier interface {
	Notify(ctx context.Context, toast Toast)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(ctx context.Context, toast Toast)

// Notify implements Notifier.
func (f NotifierFunc) Notify(ctx context.Context, toast Toast) {
	if f != nil {
		f(ctx, toast)
	}
}

// Nop drops every toast.
type Nop struct{}

func (Nop) Notify(context.Context, Toast) {}

// SlogNotifier writes toasts to a structured logger. Errors log at WARN.
type SlogNotifier struct {
	Logger *slog.Logger
}

func (n SlogNotifier) Notify(ctx context.Context, toast Toast) {
	logger := n.Logger
	if logger == nil {
		logger = slog.Default()
	}
	level := slog.LevelInfo
	if toast.Kind == Error {
		level = slog.LevelWarn
	}
	logger.Log(ctx, level, "toast", "kind", toast.Kind, "text", toast.Text, "source", toast.Source)
}

// Recorder keeps toasts in memory. The CLI prints them after each command.
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Notify(_ context.Context, toast Toast) {
	if toast.At.IsZero() {
		toast.At = time.Now()
	}
	r.mu.Lock()
	r.toasts = append(r.toasts, toast)
	r.mu.Unlock()
}

// Toasts returns a copy of everything recorded so far.
func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Drain returns and clears the recorded toasts.
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}

// Last returns the most recent toast.
func (r *Recorder) Last() (Toast, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.toasts) == 0 {
		return Toast{}, false
	}
	return r.toasts[len(r.toasts)-1], true
}

// Multi fans a toast out to several notifiers.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, toast Toast) {
	for _, n := range m {
		if n != nil {
			n.Notify(ctx, toast)
		}
	}
}

// Show builds and dispatches a toast. Blank messages fall back to a generic
// text so the user always sees something.
func Show(ctx context.Context, n Notifier, kind Kind, source, text string) {
	if n == nil {
		return
	}
	text = strings.TrimSpace(text)
	if text == "" {
		switch kind {
		case Error:
			text = "Something went wrong"
		default:
			text = "Done"
		}
	}
	n.Notify(ctx, Toast{Kind: kind, Text: text, Source: source, At: time.Now()})
}

// ShowError toasts a failed call. A 401 is left to the forced logout and a
// canceled call has nobody left to tell.
func ShowError(ctx context.Context, n Notifier, source string, err error) {
	switch transport.KindOf(err) {
	case transport.KindUnauthorized, transport.KindCanceled:
		return
	}
	Show(ctx, n, Error, source, transport.Message(err))
}
