package screens

import (
	"context"
	"sync"

	"github.com/01moynul/shopcart-admin/internal/auth"
	"github.com/01moynul/shopcart-admin/internal/navigation"
	"github.com/01moynul/shopcart-admin/internal/validation"
)

// Settings is the settings menu.
type Settings struct {
	sessions *auth.Manager
	nav      navigation.Navigator
}

func NewSettings(sessions *auth.Manager, nav navigation.Navigator) *Settings {
	return &Settings{sessions: sessions, nav: nav}
}

func (s *Settings) OpenProfile() {
	s.nav.Navigate(navigation.RouteProfile)
}

func (s *Settings) OpenShipper() {
	s.nav.Navigate(navigation.RouteShipper)
}

// Logout clears the session and returns to the login screen.
func (s *Settings) Logout(ctx context.Context) error {
	return s.sessions.Logout(ctx)
}

// Profile edits the stored user's profile.
type Profile struct {
	svc      *auth.Service
	sessions *auth.Manager

	mu      sync.Mutex
	initial validation.ProfileForm
}

func NewProfile(svc *auth.Service, sessions *auth.Manager) *Profile {
	return &Profile{svc: svc, sessions: sessions}
}

// Mount prefills the form from the stored user.
func (s *Profile) Mount(ctx context.Context) (validation.ProfileForm, error) {
	u, ok, err := s.sessions.User(ctx)
	if err != nil {
		return validation.ProfileForm{}, err
	}
	var form validation.ProfileForm
	if ok {
		image := u.Image
		form = validation.ProfileForm{
			Name:        u.UserName,
			Email:       u.Email,
			PhoneNumber: u.PhoneNumber,
			Address:     u.Address,
			Image:       &image,
		}
	}
	s.mu.Lock()
	s.initial = form
	s.mu.Unlock()
	return form, nil
}

// Changed reports whether form differs from what Mount loaded; the save
// button is disabled otherwise.
func (s *Profile) Changed(form validation.ProfileForm) bool {
	s.mu.Lock()
	initial := s.initial
	s.mu.Unlock()
	if form.Name != initial.Name || form.Email != initial.Email ||
		form.PhoneNumber != initial.PhoneNumber || form.Address != initial.Address {
		return true
	}
	return stringValue(form.Image) != stringValue(initial.Image)
}

// Submit validates and saves the profile. The service merges it into the
// stored user.
func (s *Profile) Submit(ctx context.Context, form validation.ProfileForm) error {
	if err := validation.Validate(form); err != nil {
		return err
	}
	if _, err := s.svc.UpdateProfile(ctx, form.Input()); err != nil {
		return err
	}
	s.mu.Lock()
	s.initial = form
	s.mu.Unlock()
	return nil
}

func (s *Profile) Loading() bool {
	return s.svc.Loading()
}

func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
