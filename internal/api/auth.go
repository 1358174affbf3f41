package api

import (
	"context"
	"net/http"

	"github.com/erinpaul2002/careops-console/internal/domain"
)

// Credentials is the login payload for both owner and staff modes.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterOwner creates the owning account plus its workspace.
func (c *Client) RegisterOwner(ctx context.Context, input domain.OwnerSignup) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/auth/register-owner",
		body:   input,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates an owner account.
func (c *Client) Login(ctx context.Context, input Credentials) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   input,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// StaffLogin authenticates a staff account.
func (c *Client) StaffLogin(ctx context.Context, input Credentials) (*domain.AuthResponse, error) {
	var out domain.AuthResponse
	err := c.do(ctx, requestOptions{
		method: http.MethodPost,
		path:   "/auth/staff-login",
		body:   input,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the authenticated identity and workspace memberships.
func (c *Client) Me(ctx context.Context) (*domain.Me, error) {
	var out domain.Me
	err := c.do(ctx, requestOptions{
		path: "/auth/me",
		auth: true,
		out:  &out,
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
