package kvstore_test

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Amund211/bosslevels/internal/adapters/database"
	"github.com/Amund211/bosslevels/internal/adapters/kvstore"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func fixedNow() time.Time {
	return time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
}

func newSQLiteStore(t *testing.T) kvstore.Store {
	t.Helper()

	db, err := database.NewSQLiteDatabase(filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	err = database.NewDatabaseMigrator(db, logger).MigrateSQLite(t.Context())
	require.NoError(t, err)

	return kvstore.NewSQLite(db, fixedNow)
}

func newPostgresStore(t *testing.T, schemaName string) kvstore.Store {
	t.Helper()

	db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
	require.NoError(t, err)

	db.MustExec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pq.QuoteIdentifier(schemaName)))

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	err = database.NewDatabaseMigrator(db, logger).Migrate(t.Context(), schemaName)
	require.NoError(t, err)

	return kvstore.NewPostgres(db, schemaName, fixedNow)
}

func runStoreTests(t *testing.T, store kvstore.Store) {
	t.Helper()

	ctx := t.Context()

	t.Run("missing key", func(t *testing.T) {
		value, ok, err := store.Get(ctx, "xp_missing")
		require.NoError(t, err)
		require.False(t, ok)
		require.Empty(t, value)
	})

	t.Run("set then get", func(t *testing.T) {
		err := store.Set(ctx, "xp_zulrah", "1500")
		require.NoError(t, err)

		value, ok, err := store.Get(ctx, "xp_zulrah")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "1500", value)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "xp_vorkath", "100"))
		require.NoError(t, store.Set(ctx, "xp_vorkath", "200"))

		value, ok, err := store.Get(ctx, "xp_vorkath")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "200", value)
	})

	t.Run("empty value is stored", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "xp_empty", ""))

		value, ok, err := store.Get(ctx, "xp_empty")
		require.NoError(t, err)
		require.True(t, ok)
		require.Empty(t, value)
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "xp_a", "1"))
		require.NoError(t, store.Set(ctx, "xp_b", "2"))

		a, _, err := store.Get(ctx, "xp_a")
		require.NoError(t, err)
		b, _, err := store.Get(ctx, "xp_b")
		require.NoError(t, err)

		require.Equal(t, "1", a)
		require.Equal(t, "2", b)
	})
}

func TestMemory(t *testing.T) {
	t.Parallel()

	store := kvstore.NewMemory()
	runStoreTests(t, store)

	require.Equal(t, "1500", store.Values()["xp_zulrah"])
}

func TestSQLite(t *testing.T) {
	t.Parallel()

	runStoreTests(t, newSQLiteStore(t))
}

func TestCached(t *testing.T) {
	t.Parallel()

	runStoreTests(t, kvstore.NewCached(kvstore.NewMemory(), time.Minute))
}

func TestPostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping db tests in short mode.")
	}
	t.Parallel()

	runStoreTests(t, newPostgresStore(t, "kvstore_test"))
}

type countingStore struct {
	kvstore.Store

	mu     sync.Mutex
	gets   int
	setErr error
}

func (s *countingStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	s.gets++
	s.mu.Unlock()
	return s.Store.Get(ctx, key)
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	if s.setErr != nil {
		return s.setErr
	}
	return s.Store.Set(ctx, key, value)
}

func TestCachedReadsThrough(t *testing.T) {
	t.Parallel()

	ctx := t.Context()

	t.Run("repeated reads hit the cache", func(t *testing.T) {
		t.Parallel()

		inner := &countingStore{Store: kvstore.NewMemory()}
		require.NoError(t, inner.Set(ctx, "xp_zulrah", "50"))
		store := kvstore.NewCached(inner, time.Minute)

		for range 5 {
			value, ok, err := store.Get(ctx, "xp_zulrah")
			require.NoError(t, err)
			require.True(t, ok)
			require.Equal(t, "50", value)
		}

		require.Equal(t, 1, inner.gets)
	})

	t.Run("writes update the cache", func(t *testing.T) {
		t.Parallel()

		inner := &countingStore{Store: kvstore.NewMemory()}
		store := kvstore.NewCached(inner, time.Minute)

		_, ok, err := store.Get(ctx, "xp_zulrah")
		require.NoError(t, err)
		require.False(t, ok)

		require.NoError(t, store.Set(ctx, "xp_zulrah", "100"))

		value, ok, err := store.Get(ctx, "xp_zulrah")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "100", value)
		require.Equal(t, 1, inner.gets)
	})

	t.Run("failed writes invalidate", func(t *testing.T) {
		t.Parallel()

		inner := &countingStore{Store: kvstore.NewMemory()}
		store := kvstore.NewCached(inner, time.Minute)

		require.NoError(t, store.Set(ctx, "xp_zulrah", "100"))

		inner.setErr = errors.New("disk full")
		require.Error(t, store.Set(ctx, "xp_zulrah", "150"))

		value, ok, err := store.Get(ctx, "xp_zulrah")
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, "100", value)
		require.Equal(t, 1, inner.gets)
	})
}
