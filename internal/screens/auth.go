package screens

import (
	"context"

	"github.com/01moynul/shopcart-admin/internal/auth"
	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/validation"
)

// Auth backs the login, signup and forgot-password screens.
type Auth struct {
	svc *auth.Service
	nav navigation.Navigator
}

func NewAuth(svc *auth.Service, nav navigation.Navigator) *Auth {
	return &Auth{svc: svc, nav: nav}
}

// Login signs in and opens the dashboard.
func (s *Auth) Login(ctx context.Context, form validation.LoginForm) (*models.AuthResponse, error) {
	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	res, err := s.svc.Login(ctx, form.Input())
	if err != nil {
		return nil, err
	}
	s.nav.Navigate(navigation.RouteHome)
	return res, nil
}

// Signup registers and opens the dashboard.
func (s *Auth) Signup(ctx context.Context, form validation.SignupForm) (*models.AuthResponse, error) {
	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	res, err := s.svc.Signup(ctx, form.Input())
	if err != nil {
		return nil, err
	}
	s.nav.Navigate(navigation.RouteHome)
	return res, nil
}

// ForgotPassword asks for a reset mail. The user stays on the screen.
func (s *Auth) ForgotPassword(ctx context.Context, form validation.ForgotPasswordForm) (*models.MessageResponse, error) {
	if err := validation.Validate(form); err != nil {
		return nil, err
	}
	return s.svc.ForgotPassword(ctx, form.Input())
}

func (s *Auth) Loading() bool {
	return s.svc.Loading()
}

func (s *Auth) LastError() string {
	return s.svc.LastError()
}
