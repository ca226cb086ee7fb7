package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/model"
)

// WishlistStore keeps the current user's wishlist in sync: adds trigger a
// full reload, removals patch the collection optimistically once the backend
// confirms.
type WishlistStore struct {
	mu  sync.Mutex
	tr  tracker
	api api.WishlistAPI
	log *zap.Logger

	items []model.Property
}

func NewWishlistStore(a api.WishlistAPI, log *zap.Logger) *WishlistStore {
	return &WishlistStore{api: a, log: log}
}

func (s *WishlistStore) Snapshot() ([]model.Property, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Property(nil), s.items...), s.tr.status()
}

func (s *WishlistStore) Fetch(ctx context.Context) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	items, err := s.api.Wishlist(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if s.tr.succeed(g) {
		s.items = items
	}
}

// Add registers the property and reloads the whole list, trading a
// round-trip for consistency.
func (s *WishlistStore) Add(ctx context.Context, propertyID int64) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	if err := s.api.AddWish(ctx, propertyID); err != nil {
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}

	items, err := s.api.Wishlist(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return err
	}
	if s.tr.succeed(g) {
		s.items = items
	}
	return nil
}

// Remove drops the entry locally after the backend confirms, no refetch.
func (s *WishlistStore) Remove(ctx context.Context, propertyID int64) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	if err := s.api.RemoveWish(ctx, propertyID); err != nil {
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.tr.succeed(g) {
		return nil
	}
	kept := s.items[:0]
	for _, p := range s.items {
		if p.ID != propertyID {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return nil
}
