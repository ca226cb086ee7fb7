package api

import (
	"context"
	"net/http"

	"github.com/gofrs/uuid/v5"

	"estatecli/internal/model"
)

// PaymentAPI covers the PayPal order lifecycle as consumed by the client:
// create an order, then capture it after approval. Provider internals stay
// behind the backend.
type PaymentAPI interface {
	CreateOrder(ctx context.Context, plan string) (model.PaymentOrder, error)
	CaptureOrder(ctx context.Context, orderID string) error
}

// CreateOrder opens a provider order for plan. The idempotency key lets the
// backend collapse duplicate submissions from an impatient double-click.
func (a *Client) CreateOrder(ctx context.Context, plan string) (model.PaymentOrder, error) {
	body := map[string]string{"plan": plan}
	if key, err := uuid.NewV4(); err == nil {
		body["idempotencyKey"] = key.String()
	}
	var out model.PaymentOrder
	err := a.c.Do(ctx, http.MethodPost, "/api/paypal/create-order", body, &out)
	return out, err
}

func (a *Client) CaptureOrder(ctx context.Context, orderID string) error {
	return a.c.Do(ctx, http.MethodPost, "/api/paypal/capture-order",
		map[string]string{"orderId": orderID}, nil)
}
