package api

import (
	"context"
	"fmt"
	"net/http"

	"estatecli/internal/model"
)

// UserAdminAPI covers back-office user management.
type UserAdminAPI interface {
	Users(ctx context.Context) ([]model.User, error)
	DeleteUser(ctx context.Context, id int64) error
	VerifyUser(ctx context.Context, id int64) error
	UpdateRole(ctx context.Context, id int64, role model.Role) error
}

func (a *Client) Users(ctx context.Context) ([]model.User, error) {
	var out []model.User
	err := a.c.Do(ctx, http.MethodGet, "/api/user/all", nil, &out)
	return out, err
}

func (a *Client) DeleteUser(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/user/%d", id), nil, nil)
}

func (a *Client) VerifyUser(ctx context.Context, id int64) error {
	return a.c.Do(ctx, http.MethodPatch, fmt.Sprintf("/api/user/%d/verify", id), nil, nil)
}

func (a *Client) UpdateRole(ctx context.Context, id int64, role model.Role) error {
	return a.c.Do(ctx, http.MethodPatch, fmt.Sprintf("/api/user/%d/role", id),
		map[string]model.Role{"role": role}, nil)
}
