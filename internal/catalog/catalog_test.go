package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anbokor/megastation/internal/api"
	"github.com/Anbokor/megastation/internal/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(nullWriter{}, &slog.HandlerOptions{Level: slog.LevelError + 4}))
}

type nullWriter struct{}

func (nullWriter) Write(p []byte) (int, error) { return len(p), nil }

// catalogServer serves a fixed catalog and counts hits; set fail to make
// every response a 500.
type catalogServer struct {
	hits atomic.Int64
	fail atomic.Bool
}

func (cs *catalogServer) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/store/products/", func(w http.ResponseWriter, r *http.Request) {
		cs.hits.Add(1)
		if cs.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]domain.Product{
			{ID: 1, Name: "Teclado", Price: 25.00, Stock: 10},
		})
	})
	mux.HandleFunc("/api/store/categories/", func(w http.ResponseWriter, r *http.Request) {
		cs.hits.Add(1)
		if cs.fail.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode([]domain.Category{{ID: 1, Name: "Periféricos"}})
	})
	return mux
}

func newCatalogStore(t *testing.T, cs *catalogServer, ttl time.Duration) *Store {
	t.Helper()
	server := httptest.NewServer(cs.handler())
	t.Cleanup(server.Close)
	client := api.New(server.URL, 5*time.Second, discardLogger())
	return NewStore(client, ttl, discardLogger())
}

func TestLoad_FetchesBothCollections(t *testing.T) {
	cs := &catalogServer{}
	store := newCatalogStore(t, cs, time.Minute)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Products, 1)
	require.Len(t, snap.Categories, 1)
	assert.False(t, snap.FetchedAt.IsZero())
	assert.Equal(t, int64(2), cs.hits.Load())
}

func TestLoad_CachedWithinTTL(t *testing.T) {
	cs := &catalogServer{}
	store := newCatalogStore(t, cs, time.Minute)

	_, err := store.Load(context.Background())
	require.NoError(t, err)
	_, err = store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), cs.hits.Load(), "second load must be served from cache")
}

func TestLoad_RefreshAfterExpiry(t *testing.T) {
	cs := &catalogServer{}
	store := newCatalogStore(t, cs, time.Nanosecond)

	_, err := store.Load(context.Background())
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = store.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(4), cs.hits.Load())
}

func TestLoad_StaleSnapshotOnFailure(t *testing.T) {
	cs := &catalogServer{}
	store := newCatalogStore(t, cs, time.Nanosecond)

	snap, err := store.Load(context.Background())
	require.NoError(t, err)
	firstFetch := snap.FetchedAt

	cs.fail.Store(true)
	time.Sleep(time.Millisecond)

	snap, err = store.Load(context.Background())
	require.Error(t, err, "the refresh failure is surfaced")
	require.Len(t, snap.Products, 1, "stale data is still served")
	assert.True(t, snap.FetchedAt.Equal(firstFetch), "the stale snapshot is unchanged")
}

func TestLoad_FailureWithNoDataIsFatal(t *testing.T) {
	cs := &catalogServer{}
	cs.fail.Store(true)
	store := newCatalogStore(t, cs, time.Minute)

	snap, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Empty(t, snap.Products)
}

func TestFresh(t *testing.T) {
	cs := &catalogServer{}
	store := newCatalogStore(t, cs, time.Minute)

	assert.False(t, store.Fresh(), "nothing fetched yet")
	require.NoError(t, store.Refresh(context.Background()))
	assert.True(t, store.Fresh())
}
