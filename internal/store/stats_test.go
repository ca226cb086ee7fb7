package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/model"
)

type fakeStatsAPI struct {
	salesCalls int
	series     []model.StatPoint
	err        error
}

var _ api.StatsAPI = (*fakeStatsAPI)(nil)

func (f *fakeStatsAPI) SalesStats(context.Context) ([]model.StatPoint, error) {
	f.salesCalls++
	return f.series, f.err
}
func (f *fakeStatsAPI) ViewStats(context.Context) ([]model.StatPoint, error)    { return nil, nil }
func (f *fakeStatsAPI) NewUserStats(context.Context) ([]model.StatPoint, error) { return nil, nil }

// A refetch inside the TTL is served from cache without hitting the backend.
func TestStatsStore_CachesSeries(t *testing.T) {
	t.Parallel()
	fake := &fakeStatsAPI{series: []model.StatPoint{{Period: "2026-07", Value: 12}}}
	s := NewStatsStore(fake, zap.NewNop())

	s.FetchSales(context.Background())
	s.FetchSales(context.Background())
	require.Equal(t, 1, fake.salesCalls)

	sales, _, _, st := s.Snapshot()
	require.Empty(t, st.Err)
	require.Len(t, sales, 1)

	s.Invalidate()
	s.FetchSales(context.Background())
	require.Equal(t, 2, fake.salesCalls)
}
