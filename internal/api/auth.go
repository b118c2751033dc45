package api

import (
	"context"

	"github.com/01moynul/shopcart-admin/internal/models"
	"github.com/01moynul/shopcart-admin/internal/transport"
)

const (
	PathLogin          = "/api/login"
	PathRegister       = "/api/register"
	PathForgetPassword = "/auth/forget-password"
	PathUpdateProfile  = "/api/update"
	PathDashboardStats = "/api/orders/dashboard-stats"
)

type AuthController struct {
	r transport.Requester
}

func (c *AuthController) Login(ctx context.Context, in models.LoginInput) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.r.Request(ctx, transport.Post, PathLogin, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthController) Signup(ctx context.Context, in models.SignupInput) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.r.Request(ctx, transport.Post, PathRegister, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthController) ForgetPassword(ctx context.Context, in models.ForgetPasswordInput) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Post, PathForgetPassword, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthController) UpdateProfile(ctx context.Context, in models.UpdateProfileInput) (*models.MessageResponse, error) {
	var out models.MessageResponse
	if err := c.r.Request(ctx, transport.Put, PathUpdateProfile, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *AuthController) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var out models.DashboardStats
	if err := c.r.Request(ctx, transport.Get, PathDashboardStats, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
