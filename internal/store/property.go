package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"estatecli/internal/api"
	"estatecli/internal/errs"
	"estatecli/internal/model"
)

// PropertyStore caches the listing collection for the active filter. The
// collection is transient: mutations round-trip through the backend, with
// create/update triggering a full refetch and delete/verify applying a local
// optimistic patch after the backend confirms.
type PropertyStore struct {
	mu       sync.Mutex
	tr       tracker
	api      api.PropertyAPI
	log      *zap.Logger
	validate *validator.Validate

	items  []model.Property
	filter model.PropertyFilter
}

func NewPropertyStore(a api.PropertyAPI, log *zap.Logger) *PropertyStore {
	return &PropertyStore{api: a, log: log, validate: validator.New()}
}

// Snapshot returns a copy of the collection plus the loading/error flags.
func (s *PropertyStore) Snapshot() ([]model.Property, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Property(nil), s.items...), s.tr.status()
}

// FetchAll loads the collection for the given filter, which becomes the
// store's active filter for later refetches.
func (s *PropertyStore) FetchAll(ctx context.Context, f model.PropertyFilter) {
	s.mu.Lock()
	g := s.tr.begin()
	s.filter = f
	s.mu.Unlock()

	items, err := s.api.List(ctx, f)

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

// FetchByID loads one listing into the collection, replacing a previous copy
// of the same id.
func (s *PropertyStore) FetchByID(ctx context.Context, id int64) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	p, err := s.api.Get(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if !s.tr.succeed(g) {
		return
	}
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i] = p
			return
		}
	}
	s.items = append(s.items, p)
}

// FetchMine loads the current user's own listings.
func (s *PropertyStore) FetchMine(ctx context.Context) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	items, err := s.api.Mine(ctx)

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

// FetchMultiple issues one fetch per status concurrently and concatenates
// the results in argument order. Overlapping result sets are not deduplicated.
func (s *PropertyStore) FetchMultiple(ctx context.Context, statuses []model.PropertyStatus) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	results := make([][]model.Property, len(statuses))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, st := range statuses {
		eg.Go(func() error {
			items, err := s.api.List(egCtx, model.PropertyFilter{Status: st})
			if err != nil {
				return err
			}
			results[i] = items
			return nil
		})
	}
	err := eg.Wait()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if !s.tr.succeed(g) {
		return
	}
	var merged []model.Property
	for _, r := range results {
		merged = append(merged, r...)
	}
	s.items = merged
}

// Create validates the draft locally, creates the listing, then refetches
// the active filter set for consistency.
func (s *PropertyStore) Create(ctx context.Context, d api.PropertyDraft) error {
	if err := s.validate.Struct(d); err != nil {
		s.recordValidation(err)
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}

	s.mu.Lock()
	g := s.tr.begin()
	f := s.filter
	s.mu.Unlock()

	if _, err := s.api.Create(ctx, d); err != nil {
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}
	s.refetch(ctx, g, f)
	return nil
}

// Update validates and updates a listing, then refetches the active filter set.
func (s *PropertyStore) Update(ctx context.Context, id int64, d api.PropertyDraft) error {
	if err := s.validate.Struct(d); err != nil {
		s.recordValidation(err)
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}

	s.mu.Lock()
	g := s.tr.begin()
	f := s.filter
	s.mu.Unlock()

	if _, err := s.api.Update(ctx, id, d); err != nil {
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}
	s.refetch(ctx, g, f)
	return nil
}

// Remove deletes a listing and, once the backend confirms, filters it out of
// the in-memory collection without a refetch.
func (s *PropertyStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	if err := s.api.Delete(ctx, id); err != nil {
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
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.items = kept
	return nil
}

// Verify flips the moderation flag locally after the backend confirms.
func (s *PropertyStore) Verify(ctx context.Context, id int64) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	if err := s.api.Verify(ctx, id); err != nil {
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
	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Verified = true
		}
	}
	return nil
}

func (s *PropertyStore) refetch(ctx context.Context, g uint64, f model.PropertyFilter) {
	items, err := s.api.List(ctx, f)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		// The mutation itself succeeded; only the refetch failed.
		s.tr.fail(g, err)
		s.log.Warn("refetch after mutation failed", zap.Error(err))
		return
	}
	if s.tr.succeed(g) {
		s.items = items
	}
}

func (s *PropertyStore) recordValidation(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g := s.tr.begin()
	s.tr.fail(g, fmt.Errorf("%w: %v", errs.ErrValidation, err))
}
