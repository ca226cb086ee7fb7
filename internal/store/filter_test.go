package store

import (
	"testing"

	"github.com/stretchr/testify/require"

	"estatecli/internal/model"
)

func TestFilterStore_DeriveBounds(t *testing.T) {
	t.Parallel()
	s := NewFilterStore()
	s.DeriveBounds([]model.Property{
		{Price: 90000, Size: 40},
		{Price: 250000, Size: 120},
		{Price: 150000, Size: 75},
	})

	minP, maxP, minS, maxS := s.Bounds()
	require.EqualValues(t, 90000, minP)
	require.EqualValues(t, 250000, maxP)
	require.EqualValues(t, 40, minS)
	require.EqualValues(t, 120, maxS)

	// An empty set keeps the previous bounds.
	s.DeriveBounds(nil)
	minP, maxP, _, _ = s.Bounds()
	require.EqualValues(t, 90000, minP)
	require.EqualValues(t, 250000, maxP)
}

func TestFilterStore_PriceRangeClampsToBounds(t *testing.T) {
	t.Parallel()
	s := NewFilterStore()
	s.DeriveBounds([]model.Property{{Price: 100, Size: 10}, {Price: 500, Size: 50}})

	s.SetPriceRange(50, 900)
	f := s.Filter()
	require.EqualValues(t, 100, f.MinPrice)
	require.EqualValues(t, 500, f.MaxPrice)

	s.SetPriceRange(200, 0) // open upper end snaps to max
	f = s.Filter()
	require.EqualValues(t, 200, f.MinPrice)
	require.EqualValues(t, 500, f.MaxPrice)
}

func TestFilterStore_ResetKeepsBoundsDropsSelection(t *testing.T) {
	t.Parallel()
	s := NewFilterStore()
	s.DeriveBounds([]model.Property{{Price: 100, Size: 10}, {Price: 500, Size: 50}})
	s.SetSearch("garden")
	s.SetRooms(3)
	s.SetStatus(model.StatusActive)
	s.SetSort("price_asc")

	s.Reset()

	f := s.Filter()
	require.Empty(t, f.Search)
	require.Zero(t, f.Rooms)
	require.Empty(t, string(f.Status))
	require.Equal(t, "newest", f.Sort)

	_, maxP, _, _ := s.Bounds()
	require.EqualValues(t, 500, maxP)
}
