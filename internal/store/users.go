package store

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/model"
)

// UserStore backs the admin user-management page. Removal and verification
// patch the collection optimistically after backend confirmation; role
// changes refetch the full list.
type UserStore struct {
	mu  sync.Mutex
	tr  tracker
	api api.UserAdminAPI
	log *zap.Logger

	users []model.User
}

func NewUserStore(a api.UserAdminAPI, log *zap.Logger) *UserStore {
	return &UserStore{api: a, log: log}
}

func (s *UserStore) Snapshot() ([]model.User, Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.User(nil), s.users...), s.tr.status()
}

func (s *UserStore) FetchAll(ctx context.Context) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	users, err := s.api.Users(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if s.tr.succeed(g) {
		s.users = users
	}
}

func (s *UserStore) Remove(ctx context.Context, id int64) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	if err := s.api.DeleteUser(ctx, id); err != nil {
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
	kept := s.users[:0]
	for _, u := range s.users {
		if u.ID != id {
			kept = append(kept, u)
		}
	}
	s.users = kept
	return nil
}

func (s *UserStore) Verify(ctx context.Context, id int64) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	if err := s.api.VerifyUser(ctx, id); err != nil {
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
	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Verified = true
		}
	}
	return nil
}

// ChangeRole updates the role then refetches the collection.
func (s *UserStore) ChangeRole(ctx context.Context, id int64, role model.Role) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	if err := s.api.UpdateRole(ctx, id, role); err != nil {
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}

	users, err := s.api.Users(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return err
	}
	if s.tr.succeed(g) {
		s.users = users
	}
	return nil
}
