package api

import (
	"context"
	"net/http"

	"estatecli/internal/model"
)

// SubscriptionAPI covers the billing projection and plan activation.
type SubscriptionAPI interface {
	Subscription(ctx context.Context) (model.Subscription, error)
	ActivatePlan(ctx context.Context, orderID string) error
}

func (a *Client) Subscription(ctx context.Context) (model.Subscription, error) {
	var out model.Subscription
	err := a.c.Do(ctx, http.MethodGet, "/api/subscription", nil, &out)
	return out, err
}

// ActivatePlan finalizes a captured payment into an active subscription.
func (a *Client) ActivatePlan(ctx context.Context, orderID string) error {
	return a.c.Do(ctx, http.MethodPost, "/api/subscription/activate",
		map[string]string{"orderId": orderID}, nil)
}
