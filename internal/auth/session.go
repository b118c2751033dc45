package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/storage"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

// Storage keys of the persisted session.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

var ErrNoSession = errors.New("auth: no stored session")

// Manager owns the persisted session: it is the transport's token source and
// the receiver of its session-expired events.
type Manager struct {
	store  storage.Storage
	nav    navigation.Navigator
	now    func() time.Time
	logger *slog.Logger
}

type ManagerOption func(*Manager)

// WithClock overrides time.Now for expiry checks.
func WithClock(now func() time.Time) ManagerOption {
	return func(m *Manager) {
		if now != nil {
			m.now = now
		}
	}
}

func WithManagerLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func NewManager(store storage.Storage, nav navigation.Navigator, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:  store,
		nav:    nav,
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Save persists token and user.
func (m *Manager) Save(ctx context.Context, session models.AuthSession) error {
	if err := m.store.Set(ctx, KeyToken, session.Token); err != nil {
		return fmt.Errorf("auth: save token: %w", err)
	}
	if err := storage.SetJSON(ctx, m.store, KeyUser, session.User); err != nil {
		return fmt.Errorf("auth: save user: %w", err)
	}
	return nil
}

// Load returns the stored session, or ErrNoSession when no token is stored.
func (m *Manager) Load(ctx context.Context) (models.AuthSession, error) {
	token, ok, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("auth: load token: %w", err)
	}
	if !ok || token == "" {
		return models.AuthSession{}, ErrNoSession
	}
	session := models.AuthSession{Token: token}
	if _, err := storage.GetJSON(ctx, m.store, KeyUser, &session.User); err != nil {
		return models.AuthSession{}, fmt.Errorf("auth: load user: %w", err)
	}
	return session, nil
}

// HasSession reports whether a token is stored. Storage errors count as "no".
func (m *Manager) HasSession(ctx context.Context) bool {
	_, err := m.Load(ctx)
	return err == nil
}

// User returns the cached profile.
func (m *Manager) User(ctx context.Context) (models.User, bool, error) {
	var u models.User
	ok, err := storage.GetJSON(ctx, m.store, KeyUser, &u)
	return u, ok, err
}

// SetUser replaces the cached profile.
func (m *Manager) SetUser(ctx context.Context, u models.User) error {
	return storage.SetJSON(ctx, m.store, KeyUser, u)
}

// Token implements transport.TokenSource. A JWT whose exp has passed is never
// sent; the error wraps transport.ErrSessionExpired instead.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, ok, err := m.store.Get(ctx, KeyToken)
	if err != nil {
		return "", fmt.Errorf("auth: read token: %w", err)
	}
	if !ok {
		return "", nil
	}
	if exp, ok := ExpiresAt(token); ok && !m.now().Before(exp) {
		return "", fmt.Errorf("auth: token expired at %s: %w", exp.Format(time.RFC3339), transport.ErrSessionExpired)
	}
	return token, nil
}

// Logout clears token and user, then sends the user to the login screen.
func (m *Manager) Logout(ctx context.Context) error {
	var errs []error
	if err := m.store.Delete(ctx, KeyUser); err != nil {
		errs = append(errs, err)
	}
	if err := m.store.Delete(ctx, KeyToken); err != nil {
		errs = append(errs, err)
	}
	if m.nav != nil {
		m.nav.Navigate(navigation.RouteLogin)
	}
	if len(errs) > 0 {
		err := errors.Join(errs...)
		m.logger.Error("Logout failed", "error", err)
		return err
	}
	return nil
}

// Expire tears the session down after the server or the token clock said so.
func (m *Manager) Expire(ctx context.Context) error {
	// A 401 can arrive after the caller gave up; teardown must still happen.
	return m.Logout(context.WithoutCancel(ctx))
}

// HandleSessionExpired is the transport.SessionExpiredFunc the app wires in.
func (m *Manager) HandleSessionExpired(ctx context.Context, cause *transport.Error) {
	m.logger.Warn("Session expired, logging out", "path", cause.Path, "status", cause.Status)
	_ = m.Expire(ctx)
}
