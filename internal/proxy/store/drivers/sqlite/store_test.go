package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jasiripay/krabridge/internal/proxy/domain"
	"github.com/jasiripay/krabridge/internal/proxy/store"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "tokens.db")
	st, err := NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	return st
}

func TestPutGetRoundTrip(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).UTC()
	require.NoError(t, st.Put(ctx, domain.CachedToken{
		App: "app1", Value: "tok-1", ExpiresAt: expires,
	}))

	got, err := st.Get(ctx, "app1")
	require.NoError(t, err)
	require.Equal(t, "app1", got.App)
	require.Equal(t, "tok-1", got.Value)
	require.WithinDuration(t, expires, got.ExpiresAt, time.Second)
}

func TestGetMissingReturnsNotFound(t *testing.T) {
	st := newTestStore(t)

	_, err := st.Get(context.Background(), "app1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestExpiredEntriesAreFiltered(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, domain.CachedToken{
		App: "app1", Value: "tok-1", ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := st.Get(ctx, "app1")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUpsertReplacesEntry(t *testing.T) {
	st := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, domain.CachedToken{
		App: "app1", Value: "old", ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, st.Put(ctx, domain.CachedToken{
		App: "app1", Value: "new", ExpiresAt: time.Now().Add(time.Hour),
	}))

	got, err := st.Get(ctx, "app1")
	require.NoError(t, err)
	require.Equal(t, "new", got.Value)
}

func TestMigrationsAreIdempotent(t *testing.T) {
	st := newTestStore(t)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Ping(context.Background()))
}

func TestTokensSurviveReopen(t *testing.T) {
	dir := t.TempDir()
	dsn := "file:" + filepath.Join(dir, "tokens.db")
	ctx := context.Background()

	st, err := NewStore(dsn)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	require.NoError(t, st.Put(ctx, domain.CachedToken{
		App: "app1", Value: "persisted", ExpiresAt: time.Now().Add(time.Hour),
	}))
	require.NoError(t, st.Close())

	st, err = NewStore(dsn)
	require.NoError(t, err)
	defer st.Close()

	got, err := st.Get(ctx, "app1")
	require.NoError(t, err)
	require.Equal(t, "persisted", got.Value)
}
