package api

import (
	"context"
	"fmt"
	"net/http"

	"estatecli/internal/model"
)

// WishlistAPI covers wishlist membership for the current user.
type WishlistAPI interface {
	Wishlist(ctx context.Context) ([]model.Property, error)
	AddWish(ctx context.Context, propertyID int64) error
	RemoveWish(ctx context.Context, propertyID int64) error
}

func (a *Client) Wishlist(ctx context.Context) ([]model.Property, error) {
	var out []model.Property
	err := a.c.Do(ctx, http.MethodGet, "/api/wishlist", nil, &out)
	return out, err
}

func (a *Client) AddWish(ctx context.Context, propertyID int64) error {
	return a.c.Do(ctx, http.MethodPost, "/api/wishlist",
		map[string]int64{"propertyId": propertyID}, nil)
}

func (a *Client) RemoveWish(ctx context.Context, propertyID int64) error {
	return a.c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/wishlist/%d", propertyID), nil, nil)
}
