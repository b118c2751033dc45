package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// User is the profile stored alongside the session token.
type User struct {
	ID          string `json:"_id"`
	UserName    string `json:"userName"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	Image       string `json:"image"`
}

// AuthSession is what gets persisted on the device after login or signup.
type AuthSession struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// AuthResponse is the body of login and register calls.
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    *User  `json:"user,omitempty"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupInput struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgetPasswordInput struct {
	Email string `json:"email"`
}

// UpdateProfileInput is the body of PUT /api/update. A nil Image clears nothing;
// the server keeps the previous picture.
type UpdateProfileInput struct {
	Name        string  `json:"name,omitempty"`
	Email       string  `json:"email,omitempty"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	Address     string  `json:"address,omitempty"`
	Image       *string `json:"image"`
}

// Apply merges the non-empty profile fields into u.
func (in UpdateProfileInput) Apply(u User) User {
	if in.Name != "" {
		u.UserName = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if in.PhoneNumber != "" {
		u.PhoneNumber = in.PhoneNumber
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if in.Image != nil {
		u.Image = *in.Image
	}
	return u
}

// Password Helper (Standard)
type Password struct {
	Plaintext *string
	Hash      string
}

func (p *Password) Set(plaintextPassword string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintextPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.Hash = string(hash)
	p.Plaintext = &plaintextPassword
	return nil
}

func (p *Password) Matches(plaintextPassword string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(p.Hash), []byte(plaintextPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
