package store

import (
	"context"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/model"
)

// StatsStore loads the back-office metric series. Aggregates change slowly,
// so fetched series are held in a short TTL cache and dashboard refreshes
// inside the TTL skip the backend entirely.
type StatsStore struct {
	mu    sync.Mutex
	tr    tracker
	api   api.StatsAPI
	log   *zap.Logger
	cache *gocache.Cache

	sales    []model.StatPoint
	views    []model.StatPoint
	newUsers []model.StatPoint
}

func NewStatsStore(a api.StatsAPI, log *zap.Logger) *StatsStore {
	return &StatsStore{
		api:   a,
		log:   log,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

// Snapshot returns copies of all three series with the flags.
func (s *StatsStore) Snapshot() (sales, views, newUsers []model.StatPoint, st Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StatPoint(nil), s.sales...),
		append([]model.StatPoint(nil), s.views...),
		append([]model.StatPoint(nil), s.newUsers...),
		s.tr.status()
}

func (s *StatsStore) FetchSales(ctx context.Context) {
	s.fetchSeries(ctx, "sales", s.api.SalesStats, func(pts []model.StatPoint) { s.sales = pts })
}

func (s *StatsStore) FetchViews(ctx context.Context) {
	s.fetchSeries(ctx, "views", s.api.ViewStats, func(pts []model.StatPoint) { s.views = pts })
}

func (s *StatsStore) FetchNewUsers(ctx context.Context) {
	s.fetchSeries(ctx, "new-users", s.api.NewUserStats, func(pts []model.StatPoint) { s.newUsers = pts })
}

// assign runs under the store lock.
func (s *StatsStore) fetchSeries(ctx context.Context, key string, load func(context.Context) ([]model.StatPoint, error), assign func([]model.StatPoint)) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	if cached, ok := s.cache.Get(key); ok {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.tr.succeed(g) {
			assign(cached.([]model.StatPoint))
		}
		return
	}

	pts, err := load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if s.tr.succeed(g) {
		s.cache.SetDefault(key, pts)
		assign(pts)
	}
}

// Invalidate drops the cached series so the next fetch hits the backend.
func (s *StatsStore) Invalidate() {
	s.cache.Flush()
}
