package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/model"
)

type fakeWishlistAPI struct {
	items     []model.Property
	listCalls int
	addErr    error
	removeErr error
}

var _ api.WishlistAPI = (*fakeWishlistAPI)(nil)

func (f *fakeWishlistAPI) Wishlist(context.Context) ([]model.Property, error) {
	f.listCalls++
	return append([]model.Property(nil), f.items...), nil
}
func (f *fakeWishlistAPI) AddWish(_ context.Context, id int64) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.items = append(f.items, model.Property{ID: id})
	return nil
}
func (f *fakeWishlistAPI) RemoveWish(_ context.Context, id int64) error {
	return f.removeErr
}

// Adding reloads the full list; the store reflects the backend's view.
func TestWishlistStore_AddReloads(t *testing.T) {
	t.Parallel()
	fake := &fakeWishlistAPI{items: props(1)}
	s := NewWishlistStore(fake, zap.NewNop())
	s.Fetch(context.Background())

	require.NoError(t, s.Add(context.Background(), 2))

	items, st := s.Snapshot()
	require.Empty(t, st.Err)
	require.Len(t, items, 2)
	require.Equal(t, 2, fake.listCalls, "add triggers a full reload")
}

// Removal patches locally once confirmed, without reloading.
func TestWishlistStore_RemoveOptimistic(t *testing.T) {
	t.Parallel()
	fake := &fakeWishlistAPI{items: props(1, 2, 3)}
	s := NewWishlistStore(fake, zap.NewNop())
	s.Fetch(context.Background())

	require.NoError(t, s.Remove(context.Background(), 2))

	items, _ := s.Snapshot()
	require.Len(t, items, 2)
	require.Equal(t, 1, fake.listCalls, "remove must not reload")
}
