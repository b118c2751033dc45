package auth

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/notify"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

// API is the slice of the auth controller the service needs.
type API interface {
	Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error)
	Signup(ctx context.Context, in models.SignupInput) (*models.AuthResponse, error)
	ForgetPassword(ctx context.Context, in models.ForgetPasswordInput) (*models.MessageResponse, error)
	UpdateProfile(ctx context.Context, in models.UpdateProfileInput) (*models.MessageResponse, error)
}

// Service is the auth hook: it calls the API, persists the session and
// reports progress through a loading flag and toasts.
type Service struct {
	api      API
	sessions *Manager
	notifier notify.Notifier
	logger   *slog.Logger

	inflight atomic.Int32
	mu       sync.Mutex
	lastErr  string
}

func NewService(api API, sessions *Manager, notifier notify.Notifier) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Service{api: api, sessions: sessions, notifier: notifier, logger: slog.Default()}
}

// Loading reports whether any auth call is in flight.
func (s *Service) Loading() bool {
	return s.inflight.Load() > 0
}

// LastError is the message of the most recent failed call, or "".
func (s *Service) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Service) begin() func() {
	s.inflight.Add(1)
	s.setError("")
	return func() { s.inflight.Add(-1) }
}

func (s *Service) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

func (s *Service) fail(err error, fallback string) error {
	msg := transport.Message(err)
	if msg == "" {
		msg = fallback
	}
	s.setError(msg)
	return err
}

// Login authenticates and stores the returned session.
func (s *Service) Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error) {
	defer s.begin()()
	res, err := s.api.Login(ctx, in)
	if err != nil {
		return nil, s.fail(err, "Login failed")
	}
	if err := s.persist(ctx, res); err != nil {
		return nil, s.fail(err, "Login failed")
	}
	notify.Show(ctx, s.notifier, notify.Success, "auth", res.Message)
	return res, nil
}

// Signup registers and stores the returned session.
func (s *Service) Signup(ctx context.Context, in models.SignupInput) (*models.AuthResponse, error) {
	defer s.begin()()
	res, err := s.api.Signup(ctx, in)
	if err != nil {
		return nil, s.fail(err, "Signup failed")
	}
	if err := s.persist(ctx, res); err != nil {
		return nil, s.fail(err, "Signup failed")
	}
	notify.Show(ctx, s.notifier, notify.Success, "auth", res.Message)
	return res, nil
}

func (s *Service) ForgotPassword(ctx context.Context, in models.ForgetPasswordInput) (*models.MessageResponse, error) {
	defer s.begin()()
	res, err := s.api.ForgetPassword(ctx, in)
	if err != nil {
		return nil, s.fail(err, "Request failed")
	}
	notify.Show(ctx, s.notifier, notify.Success, "auth", res.Message)
	return res, nil
}

// UpdateProfile saves the profile remotely and merges it into the stored user.
func (s *Service) UpdateProfile(ctx context.Context, in models.UpdateProfileInput) (*models.MessageResponse, error) {
	defer s.begin()()
	res, err := s.api.UpdateProfile(ctx, in)
	if err != nil {
		notify.ShowError(ctx, s.notifier, "auth", err)
		return nil, s.fail(err, "Update failed")
	}
	user, _, err := s.sessions.User(ctx)
	if err != nil {
		s.logger.Warn("Could not read stored user", "error", err)
	}
	if err := s.sessions.SetUser(ctx, in.Apply(user)); err != nil {
		s.logger.Warn("Could not store updated user", "error", err)
	}
	notify.Show(ctx, s.notifier, notify.Success, "auth", res.Message)
	return res, nil
}

// StoredSession returns whatever session is persisted on the device.
func (s *Service) StoredSession(ctx context.Context) (models.AuthSession, error) {
	return s.sessions.Load(ctx)
}

func (s *Service) persist(ctx context.Context, res *models.AuthResponse) error {
	if res == nil || res.Token == "" {
		return nil
	}
	var user models.User
	if res.User != nil {
		user = *res.User
	}
	return s.sessions.Save(ctx, models.AuthSession{Token: res.Token, User: user})
}
