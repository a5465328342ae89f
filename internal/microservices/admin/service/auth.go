package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"

	"chickkart-system/internal/common/logger"
)

const authKeyPrefix = "admin_auth:"

var ErrBadCredentials = errors.New("invalid username or password")

// TokenStore is the TTL-capable KV slice auth needs (redis in production).
type TokenStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error
}

// AuthService gates the admin API with opaque bearer tokens whose expiry is
// the store's TTL.
type AuthService struct {
	store    TokenStore
	username string
	password string
	ttl      time.Duration
	lg       *logger.Logger
	now      func() time.Time
}

func NewAuthService(store TokenStore, username, password string, ttl time.Duration, lg *logger.Logger) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{store: store, username: username, password: password, ttl: ttl, lg: lg, now: time.Now}
}

// Login checks the configured credentials and issues a fresh token.
func (a *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	if username != a.username || password != a.password {
		a.lg.Warn("admin_login_rejected", map[string]any{"username": username})
		return "", time.Time{}, ErrBadCredentials
	}
	token := newToken()
	expiry := a.now().Add(a.ttl)
	if err := a.store.Set(ctx, authKeyPrefix+token, username, a.ttl); err != nil {
		return "", time.Time{}, err
	}
	a.lg.Info("admin_login", map[string]any{"username": username})
	return token, expiry, nil
}

// Validate reports whether the token is live. Expiry happens implicitly as
// the store drops the key.
func (a *AuthService) Validate(ctx context.Context, token string) bool {
	if token == "" {
		return false
	}
	v, err := a.store.Get(ctx, authKeyPrefix+token)
	if err != nil {
		a.lg.Error("auth_lookup_failed", err, nil)
		return false
	}
	return v != ""
}

// Logout invalidates the token immediately.
func (a *AuthService) Logout(ctx context.Context, token string) {
	_ = a.store.Delete(ctx, authKeyPrefix+token)
}

func newToken() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}
