package store

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"estatecli/internal/api"
	"estatecli/internal/errs"
	"estatecli/internal/model"
	"estatecli/internal/session"
)

// AuthStore owns the current principal and drives every auth flow. All three
// login paths persist the returned token pair wholesale through the shared
// keystore before loading the profile; logout clears both.
type AuthStore struct {
	mu       sync.Mutex
	tr       tracker
	api      api.AuthAPI
	ks       *session.Keystore
	log      *zap.Logger
	validate *validator.Validate

	user *model.User
}

func NewAuthStore(a api.AuthAPI, ks *session.Keystore, log *zap.Logger) *AuthStore {
	return &AuthStore{api: a, ks: ks, log: log, validate: validator.New()}
}

// CurrentUser returns a copy of the principal, nil when logged out.
func (s *AuthStore) CurrentUser() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *AuthStore) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tr.status()
}

// Login exchanges credentials for tokens, persists them, and loads the
// profile. The error is re-thrown after being recorded so callers can show
// contextual feedback.
func (s *AuthStore) Login(ctx context.Context, email, password string) error {
	return s.establish(ctx, func() (model.Tokens, error) {
		return s.api.Login(ctx, email, password)
	})
}

// Register creates the account and establishes the session, after local
// validation of the registration form.
func (s *AuthStore) Register(ctx context.Context, req api.RegisterRequest) error {
	if err := s.validate.Struct(req); err != nil {
		s.mu.Lock()
		g := s.tr.begin()
		s.tr.fail(g, fmt.Errorf("%w: %v", errs.ErrValidation, err))
		s.mu.Unlock()
		return fmt.Errorf("%w: %v", errs.ErrValidation, err)
	}
	return s.establish(ctx, func() (model.Tokens, error) {
		return s.api.Register(ctx, req)
	})
}

// LoginGoogle exchanges an OAuth authorization code for a session.
func (s *AuthStore) LoginGoogle(ctx context.Context, code string) error {
	return s.establish(ctx, func() (model.Tokens, error) {
		return s.api.LoginGoogle(ctx, code)
	})
}

func (s *AuthStore) establish(ctx context.Context, exchange func() (model.Tokens, error)) error {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	fail := func(err error) error {
		s.mu.Lock()
		s.tr.fail(g, err)
		s.mu.Unlock()
		return err
	}

	tokens, err := exchange()
	if err != nil {
		return fail(err)
	}
	if err := s.ks.Save(tokens); err != nil {
		return fail(err)
	}
	user, err := s.api.Current(ctx)
	if err != nil {
		return fail(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.tr.succeed(g) {
		s.user = &user
	}
	return nil
}

// FetchCurrent refreshes the principal from the backend (read action).
func (s *AuthStore) FetchCurrent(ctx context.Context) {
	s.mu.Lock()
	g := s.tr.begin()
	s.mu.Unlock()

	user, err := s.api.Current(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.tr.fail(g, err)
		return
	}
	if s.tr.succeed(g) {
		s.user = &user
	}
}

// Logout revokes the session server-side (best effort) and clears all local
// session state.
func (s *AuthStore) Logout(ctx context.Context) error {
	if err := s.api.Logout(ctx); err != nil {
		s.log.Warn("server-side logout failed", zap.Error(err))
	}
	if err := s.ks.Clear(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	return nil
}

// ForceLogout is the session-expiry hook target: the keystore has already
// been cleared by the session client, only the principal remains to drop.
func (s *AuthStore) ForceLogout() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = nil
	s.log.Info("session torn down, login required")
}
