package api

import (
	"context"
	"net/http"

	"estatecli/internal/model"
)

// AuthAPI covers credential exchange and the current principal.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (model.Tokens, error)
	Register(ctx context.Context, req RegisterRequest) (model.Tokens, error)
	LoginGoogle(ctx context.Context, code string) (model.Tokens, error)
	Logout(ctx context.Context) error
	Current(ctx context.Context) (model.User, error)
}

// RegisterRequest is the account-creation payload.
type RegisterRequest struct {
	Email    string     `json:"email" validate:"required,email"`
	Username string     `json:"username" validate:"required,min=3"`
	Password string     `json:"password" validate:"required,min=8"`
	Role     model.Role `json:"role" validate:"required,oneof=renter_buyer private_seller agency"`
}

func (a *Client) Login(ctx context.Context, email, password string) (model.Tokens, error) {
	var tokens model.Tokens
	err := a.c.Do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"email": email, "password": password}, &tokens)
	return tokens, err
}

func (a *Client) Register(ctx context.Context, req RegisterRequest) (model.Tokens, error) {
	var tokens model.Tokens
	err := a.c.Do(ctx, http.MethodPost, "/api/auth/register", req, &tokens)
	return tokens, err
}

// LoginGoogle exchanges an OAuth authorization code for a token pair.
func (a *Client) LoginGoogle(ctx context.Context, code string) (model.Tokens, error) {
	var tokens model.Tokens
	err := a.c.Do(ctx, http.MethodPost, "/api/auth/google",
		map[string]string{"code": code}, &tokens)
	return tokens, err
}

func (a *Client) Logout(ctx context.Context) error {
	return a.c.Do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

func (a *Client) Current(ctx context.Context) (model.User, error) {
	var u model.User
	err := a.c.Do(ctx, http.MethodGet, "/api/user", nil, &u)
	return u, err
}
