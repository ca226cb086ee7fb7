package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/model"
)

// subscriptionBackend is the slice of the api client the store drives:
// billing projection plus the payment order lifecycle.
type subscriptionBackend interface {
	api.SubscriptionAPI
	api.PaymentAPI
}

// SubscriptionStore holds the read-only billing projection and runs the
// purchase flow: create order, capture, activate, refetch.
type SubscriptionStore struct {
	mu  sync.Mutex
	tr  tracker
	api subscriptionBackend
	log *zap.Logger

	sub model.Subscription
}

func NewSubscriptionStore(a subscriptionBackend, log *zap.Logger) *SubscriptionStore {
	return &SubscriptionStore{api: a, log: log}
}

func (s *SubscriptionStore) Snapshot() (model.Subscription, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sub, s.tr.status()
}

func (s *SubscriptionStore) Fetch(ctx context.Context) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	sub, err := s.api.Subscription(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if s.tr.succeed(g) {
		s.sub = sub
	}
}

// Purchase runs the full payment lifecycle for a plan and refreshes the
// billing projection afterwards.
func (s *SubscriptionStore) Purchase(ctx context.Context, plan string) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	fail := func(err error) error {
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}

	order, err := s.api.CreateOrder(ctx, plan)
	if err != nil {
		return fail(err)
	}
	s.log.Info("payment order created", zap.String("orderId", order.OrderID))

	if err := s.api.CaptureOrder(ctx, order.OrderID); err != nil {
		return fail(err)
	}
	if err := s.api.ActivatePlan(ctx, order.OrderID); err != nil {
		return fail(err)
	}

	sub, err := s.api.Subscription(ctx)
	if err != nil {
		return fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tr.succeed(g) {
		s.sub = sub
	}
	return nil
}
