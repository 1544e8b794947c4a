// Package session owns the client-side session: the access token and the
// decoded user profile. The token is persisted to local storage; the
// profile is always fetched fresh. Guard and API adapter read session state
// through accessors and never mutate it.
package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/Anbokor/megastation/internal/api"
	"github.com/Anbokor/megastation/internal/domain"
	"github.com/Anbokor/megastation/internal/localstore"
)

// Notifier receives user-facing feedback emitted by store actions. State
// mutation never depends on it; the default is a no-op so the store is
// testable without any UI wiring.
type Notifier func(message string)

// Store holds the session state. The invariant is that user is never
// non-nil while the token is empty; both are cleared together on logout.
type Store struct {
	client  *api.Client
	storage *localstore.Store
	logger  *slog.Logger
	notify  Notifier

	token string
	user  *domain.Profile
}

// NewStore creates the session store and hydrates the token from local
// storage. Persisted tokens are untrusted input: anything that does not
// parse as an unexpired JWT is silently discarded.
func NewStore(client *api.Client, storage *localstore.Store, logger *slog.Logger) *Store {
	s := &Store{
		client:  client,
		storage: storage,
		logger:  logger,
		notify:  func(string) {},
	}

	if raw, ok := storage.Get(localstore.KeyToken); ok {
		token := sanitizeToken(strings.TrimSpace(string(raw)))
		if token == "" {
			logger.Debug("discarding stale or malformed persisted token")
			_ = storage.Delete(localstore.KeyToken)
		}
		s.token = token
	}

	return s
}

// SetNotifier installs the user-feedback callback.
func (s *Store) SetNotifier(fn Notifier) {
	if fn != nil {
		s.notify = fn
	}
}

// Token implements api.TokenSource.
func (s *Store) Token() string {
	return s.token
}

// IsAuthenticated reports whether a token is present. It is derived from
// the token on every call, never stored separately.
func (s *Store) IsAuthenticated() bool {
	return s.token != ""
}

// Current returns the fetched profile, or nil when none is loaded.
func (s *Store) Current() *domain.Profile {
	return s.user
}

// Role returns the current user's role, empty when no profile is loaded.
func (s *Store) Role() domain.Role {
	if s.user == nil {
		return ""
	}
	return s.user.Role
}

// Login exchanges credentials for a token, persists it, and fetches the
// profile. On any failure the prior session state is left untouched.
func (s *Store) Login(ctx context.Context, creds domain.Credentials) error {
	token, err := s.client.ObtainToken(ctx, creds)
	if err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if token == "" {
		return fmt.Errorf("login failed: server returned an empty token")
	}

	s.token = token
	if err := s.storage.Set(localstore.KeyToken, []byte(token)); err != nil {
		s.logger.Warn("could not persist token, session will not survive this run", "error", err)
	}

	if err := s.FetchUser(ctx); err != nil {
		return err
	}

	s.notify(fmt.Sprintf("logged in as %s", s.user.Username))
	return nil
}

// Register creates an account and then logs in with the same credentials.
// Registration always returns the created profile without a token, so the
// chained login is part of the contract; its failure fails the whole
// registration from the caller's perspective.
func (s *Store) Register(ctx context.Context, reg domain.Registration) (*domain.Profile, error) {
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.client.RegisterUser(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}

	creds := domain.Credentials{Username: reg.Username, Password: reg.Password}
	if err := s.Login(ctx, creds); err != nil {
		return nil, fmt.Errorf("account created but login failed: %w", err)
	}

	return profile, nil
}

// FetchUser loads the profile for the current token. Any failure,
// network or authorization alike, logs the session out as a side effect
// before returning the error, so the guard never evaluates a known-stale
// session.
func (s *Store) FetchUser(ctx context.Context) error {
	if s.token == "" {
		return api.ErrNoToken
	}

	profile, err := s.client.Me(ctx)
	if err != nil {
		s.Logout()
		return fmt.Errorf("fetching profile: %w", err)
	}

	s.user = profile
	return nil
}

// Logout unconditionally clears the token and profile, in memory and in
// local storage. Idempotent, never fails.
func (s *Store) Logout() {
	wasAuthenticated := s.token != ""

	s.token = ""
	s.user = nil
	_ = s.storage.Delete(localstore.KeyToken)

	if wasAuthenticated {
		s.notify("logged out")
	}
}

// TokenExpiry returns the expiry claim of the current token, when present.
func (s *Store) TokenExpiry() (time.Time, bool) {
	if s.token == "" {
		return time.Time{}, false
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(s.token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// sanitizeToken validates a persisted token. The client holds no signing
// key, so the JWT is decoded without signature verification purely to
// reject garbage and tokens that are already expired.
func sanitizeToken(raw string) string {
	if raw == "" {
		return ""
	}
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(raw, claims); err != nil {
		return ""
	}
	if claims.ExpiresAt != nil && claims.ExpiresAt.Before(time.Now()) {
		return ""
	}
	return raw
}
