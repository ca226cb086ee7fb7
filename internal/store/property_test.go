package store

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/errs"
	"estatecli/internal/model"
)

type fakePropertyAPI struct {
	listFn func(ctx context.Context, f model.PropertyFilter) ([]model.Property, error)

	listCalls   int32
	createCalls int32
	deleteCalls int32
	verifyCalls int32

	createErr error
	deleteErr error
	verifyErr error
}

var _ api.PropertyAPI = (*fakePropertyAPI)(nil)

func (f *fakePropertyAPI) List(ctx context.Context, flt model.PropertyFilter) ([]model.Property, error) {
	atomic.AddInt32(&f.listCalls, 1)
	if f.listFn != nil {
		return f.listFn(ctx, flt)
	}
	return nil, nil
}
func (f *fakePropertyAPI) Get(context.Context, int64) (model.Property, error) {
	return model.Property{}, errs.ErrNotFound
}
func (f *fakePropertyAPI) Mine(context.Context) ([]model.Property, error) { return nil, nil }
func (f *fakePropertyAPI) Create(context.Context, api.PropertyDraft) (model.Property, error) {
	atomic.AddInt32(&f.createCalls, 1)
	return model.Property{}, f.createErr
}
func (f *fakePropertyAPI) Update(context.Context, int64, api.PropertyDraft) (model.Property, error) {
	return model.Property{}, nil
}
func (f *fakePropertyAPI) Delete(context.Context, int64) error {
	atomic.AddInt32(&f.deleteCalls, 1)
	return f.deleteErr
}
func (f *fakePropertyAPI) Verify(context.Context, int64) error {
	atomic.AddInt32(&f.verifyCalls, 1)
	return f.verifyErr
}

func props(ids ...int64) []model.Property {
	out := make([]model.Property, 0, len(ids))
	for _, id := range ids {
		out = append(out, model.Property{ID: id, Status: model.StatusActive})
	}
	return out
}

func validDraft() api.PropertyDraft {
	return api.PropertyDraft{
		Title:           "Two-room flat",
		PropertyType:    "apartment",
		TransactionType: model.TransactionSale,
		Price:           120000,
		Currency:        "EUR",
		Size:            54,
		Rooms:           2,
		Address:         "Main St 5",
	}
}

// Removing a listing patches the collection in place without a refetch.
func TestPropertyStore_OptimisticDelete(t *testing.T) {
	t.Parallel()
	fake := &fakePropertyAPI{listFn: func(context.Context, model.PropertyFilter) ([]model.Property, error) {
		return props(1, 2, 3), nil
	}}
	s := NewPropertyStore(fake, zap.NewNop())
	s.FetchAll(context.Background(), model.PropertyFilter{})

	require.NoError(t, s.Remove(context.Background(), 2))

	items, st := s.Snapshot()
	require.False(t, st.Loading)
	require.Empty(t, st.Err)
	require.EqualValues(t, 1, fake.listCalls, "delete must not refetch")
	require.Len(t, items, 2)
	require.EqualValues(t, 1, items[0].ID)
	require.EqualValues(t, 3, items[1].ID)
}

// The patch must not apply when the backend rejects the delete.
func TestPropertyStore_DeleteFailureKeepsCollection(t *testing.T) {
	t.Parallel()
	fake := &fakePropertyAPI{
		listFn: func(context.Context, model.PropertyFilter) ([]model.Property, error) {
			return props(1, 2), nil
		},
		deleteErr: errs.ErrNotFound,
	}
	s := NewPropertyStore(fake, zap.NewNop())
	s.FetchAll(context.Background(), model.PropertyFilter{})

	err := s.Remove(context.Background(), 2)
	require.Error(t, err)

	items, st := s.Snapshot()
	require.NotEmpty(t, st.Err)
	require.Len(t, items, 2)
}

// One fetch per status, concatenated, duplicates preserved.
func TestPropertyStore_FetchMultipleNoDedup(t *testing.T) {
	t.Parallel()
	fake := &fakePropertyAPI{listFn: func(_ context.Context, f model.PropertyFilter) ([]model.Property, error) {
		if f.Status == model.StatusActive {
			return props(1, 2, 7), nil
		}
		return props(7, 9), nil
	}}
	s := NewPropertyStore(fake, zap.NewNop())

	s.FetchMultiple(context.Background(), []model.PropertyStatus{model.StatusActive, model.StatusInactive})

	items, st := s.Snapshot()
	require.Empty(t, st.Err)
	require.Len(t, items, 5)

	var sevens int
	for _, p := range items {
		if p.ID == 7 {
			sevens++
		}
	}
	require.Equal(t, 2, sevens, "overlapping ids are kept, not deduplicated")
}

// A response from a superseded fetch must not overwrite the newer one.
func TestPropertyStore_StaleResponseDiscarded(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	gate := make(chan struct{})
	fake := &fakePropertyAPI{listFn: func(_ context.Context, f model.PropertyFilter) ([]model.Property, error) {
		if f.Search == "old" {
			close(started)
			<-gate
			return props(100), nil
		}
		return props(1, 2), nil
	}}
	s := NewPropertyStore(fake, zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.FetchAll(context.Background(), model.PropertyFilter{Search: "old"})
	}()
	<-started

	s.FetchAll(context.Background(), model.PropertyFilter{Search: "new"})
	close(gate)
	<-done

	items, st := s.Snapshot()
	require.False(t, st.Loading)
	require.Len(t, items, 2, "stale result must not win")
}

// Client-side validation short-circuits before any network call.
func TestPropertyStore_CreateValidationShortCircuit(t *testing.T) {
	t.Parallel()
	fake := &fakePropertyAPI{}
	s := NewPropertyStore(fake, zap.NewNop())

	err := s.Create(context.Background(), api.PropertyDraft{Title: "x"})
	require.ErrorIs(t, err, errs.ErrValidation)
	require.EqualValues(t, 0, fake.createCalls)
	require.EqualValues(t, 0, fake.listCalls)

	_, st := s.Snapshot()
	require.NotEmpty(t, st.Err)
}

// Create refetches the active filter set instead of patching locally.
func TestPropertyStore_CreateRefetches(t *testing.T) {
	t.Parallel()
	fake := &fakePropertyAPI{listFn: func(context.Context, model.PropertyFilter) ([]model.Property, error) {
		return props(1, 2, 3), nil
	}}
	s := NewPropertyStore(fake, zap.NewNop())
	s.FetchAll(context.Background(), model.PropertyFilter{Status: model.StatusActive})

	require.NoError(t, s.Create(context.Background(), validDraft()))
	require.EqualValues(t, 1, fake.createCalls)
	require.EqualValues(t, 2, fake.listCalls, "initial fetch plus refetch")
}

func TestPropertyStore_VerifyFlipsFlagLocally(t *testing.T) {
	t.Parallel()
	fake := &fakePropertyAPI{listFn: func(context.Context, model.PropertyFilter) ([]model.Property, error) {
		return props(5), nil
	}}
	s := NewPropertyStore(fake, zap.NewNop())
	s.FetchAll(context.Background(), model.PropertyFilter{})

	require.NoError(t, s.Verify(context.Background(), 5))

	items, _ := s.Snapshot()
	require.True(t, items[0].Verified)
	require.EqualValues(t, 1, fake.listCalls, "verify must not refetch")
}

// loading holds strictly between action start and resolution.
func TestPropertyStore_LoadingLifecycle(t *testing.T) {
	t.Parallel()
	started := make(chan struct{})
	gate := make(chan struct{})
	fake := &fakePropertyAPI{listFn: func(context.Context, model.PropertyFilter) ([]model.Property, error) {
		close(started)
		<-gate
		return nil, nil
	}}
	s := NewPropertyStore(fake, zap.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.FetchAll(context.Background(), model.PropertyFilter{})
	}()
	<-started

	_, st := s.Snapshot()
	require.True(t, st.Loading)

	close(gate)
	<-done
	_, st = s.Snapshot()
	require.False(t, st.Loading)
}
