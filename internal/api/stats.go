package api

import (
	"context"
	"net/http"

	"estatecli/internal/model"
)

// StatsAPI covers the aggregated back-office metrics.
type StatsAPI interface {
	SalesStats(ctx context.Context) ([]model.StatPoint, error)
	ViewStats(ctx context.Context) ([]model.StatPoint, error)
	NewUserStats(ctx context.Context) ([]model.StatPoint, error)
}

func (a *Client) SalesStats(ctx context.Context) ([]model.StatPoint, error) {
	return a.statSeries(ctx, "/api/stats/sales")
}

func (a *Client) ViewStats(ctx context.Context) ([]model.StatPoint, error) {
	return a.statSeries(ctx, "/api/stats/views")
}

func (a *Client) NewUserStats(ctx context.Context) ([]model.StatPoint, error) {
	return a.statSeries(ctx, "/api/stats/new-users")
}

func (a *Client) statSeries(ctx context.Context, path string) ([]model.StatPoint, error) {
	var out []model.StatPoint
	err := a.c.Do(ctx, http.MethodGet, path, nil, &out)
	return out, err
}
