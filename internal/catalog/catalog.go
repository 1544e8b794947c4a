// Package catalog is a cached fetch wrapper over the public product and
// category endpoints. A snapshot is kept for a configurable TTL; refresh
// failures leave the previous snapshot in place so the storefront shows
// stale-but-present data alongside the error.
package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Anbokor/megastation/internal/api"
	"github.com/Anbokor/megastation/internal/domain"
)

// Snapshot is one consistent view of the catalog.
type Snapshot struct {
	Products   []domain.Product
	Categories []domain.Category
	FetchedAt  time.Time
}

// Store caches the catalog. The mutex only protects the snapshot swap; the
// CLI has a single logical thread of mutation per command.
type Store struct {
	client *api.Client
	ttl    time.Duration
	logger *slog.Logger

	mu      sync.RWMutex
	snap    Snapshot
	lastErr error
}

// NewStore creates the catalog store.
func NewStore(client *api.Client, ttl time.Duration, logger *slog.Logger) *Store {
	return &Store{client: client, ttl: ttl, logger: logger}
}

// Snapshot returns the current snapshot and the error of the most recent
// refresh, if it failed. An empty snapshot with a nil error means nothing
// has been fetched yet.
func (s *Store) Snapshot() (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap, s.lastErr
}

// Fresh reports whether the snapshot is within its TTL.
func (s *Store) Fresh() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.snap.FetchedAt.IsZero() && time.Since(s.snap.FetchedAt) < s.ttl
}

// Refresh fetches products and categories in parallel and swaps in a new
// snapshot. On failure the previous snapshot is kept and the error is
// recorded and returned.
func (s *Store) Refresh(ctx context.Context) error {
	var (
		products   []domain.Product
		categories []domain.Category
	)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		products, err = s.client.Products(groupCtx, api.ProductFilter{})
		return err
	})
	group.Go(func() error {
		var err error
		categories, err = s.client.Categories(groupCtx)
		return err
	})

	if err := group.Wait(); err != nil {
		s.logger.Debug("catalog refresh failed", "error", err)
		s.mu.Lock()
		s.lastErr = err
		s.mu.Unlock()
		return err
	}

	s.mu.Lock()
	s.snap = Snapshot{
		Products:   products,
		Categories: categories,
		FetchedAt:  time.Now(),
	}
	s.lastErr = nil
	s.mu.Unlock()
	return nil
}

// Load returns a usable snapshot, refreshing first when the cached one has
// expired. When the refresh fails but stale data exists, the stale
// snapshot is returned together with the error.
func (s *Store) Load(ctx context.Context) (Snapshot, error) {
	if s.Fresh() {
		snap, _ := s.Snapshot()
		return snap, nil
	}

	err := s.Refresh(ctx)
	snap, _ := s.Snapshot()
	if err != nil && len(snap.Products) == 0 {
		return Snapshot{}, err
	}
	return snap, err
}
