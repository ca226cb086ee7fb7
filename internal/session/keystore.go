// Package session provides the authenticated HTTP client and the persisted
// token keystore it reads from.
package session

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"estatecli/internal/errs"
	"estatecli/internal/model"
)

type tokenFile struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// Keystore persists the access/refresh token pair in the config directory.
// Tokens are read fresh before every request, never cached in memory, so a
// refresh performed by one in-flight call is visible to the next.
type Keystore struct {
	mu  sync.Mutex
	dir string
}

// NewKeystore returns a keystore rooted at dir.
func NewKeystore(dir string) *Keystore {
	return &Keystore{dir: dir}
}

func (k *Keystore) path() string { return filepath.Join(k.dir, "session.json") }

// Save replaces the persisted session wholesale. The access token expiry is
// derived from its JWT exp claim when parsable.
func (k *Keystore) Save(t model.Tokens) error {
	k.mu.Lock()
	defer k.mu.Unlock()

	if err := os.MkdirAll(k.dir, 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(k.path(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpiresAt:    accessExpiry(t.AccessToken),
	})
}

// Load returns the persisted tokens, or ErrNoSession when none exist.
func (k *Keystore) Load() (model.Tokens, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	b, err := os.ReadFile(k.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Tokens{}, errs.ErrNoSession
		}
		return model.Tokens{}, err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return model.Tokens{}, err
	}
	if tf.AccessToken == "" {
		return model.Tokens{}, errs.ErrNoSession
	}
	return model.Tokens{
		AccessToken:  tf.AccessToken,
		RefreshToken: tf.RefreshToken,
		ExpiresAt:    tf.ExpiresAt,
	}, nil
}

// Clear removes the persisted session wholesale.
func (k *Keystore) Clear() error {
	k.mu.Lock()
	defer k.mu.Unlock()

	err := os.Remove(k.path())
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// accessExpiry extracts the exp claim without validating the signature.
// Tokens are otherwise opaque to the client; a zero time means unknown.
func accessExpiry(access string) time.Time {
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(access, &claims,
		func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
