package progression_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Amund211/bosslevels/internal/adapters/kvstore"
	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/domaintest"
	"github.com/Amund211/bosslevels/internal/progression"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	getErr error
	setErr error

	lock sync.Mutex
	sets int
}

func (f *failingStore) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return "", false, nil
}

func (f *failingStore) Set(ctx context.Context, key, value string) error {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.sets++
	return f.setErr
}

func TestLoad(t *testing.T) {
	t.Parallel()

	zulrah := domaintest.NewBossBuilder("Zulrah").WithOrdinal(1).Build()
	vorkath := domaintest.NewBossBuilder("Vorkath").WithOrdinal(2).Build()
	obor := domaintest.NewBossBuilder("Obor").WithOrdinal(0).Build()
	registry := domaintest.NewRegistry(t, zulrah, vorkath, obor)

	t.Run("restores stored xp", func(t *testing.T) {
		t.Parallel()

		kv := kvstore.NewMemory()
		require.NoError(t, kv.Set(t.Context(), "xp_zulrah", "600"))
		require.NoError(t, kv.Set(t.Context(), "xp_vorkath", "not a number"))
		require.NoError(t, kv.Set(t.Context(), "xp_obor", "-10"))

		store := progression.Load(t.Context(), registry, kv)

		zulrahProgress, err := store.Get("zulrah")
		require.NoError(t, err)
		require.Equal(t, domain.Progress{
			Boss:          zulrah,
			XP:            600,
			Level:         6,
			LastSeenCount: domain.NeverObserved,
		}, zulrahProgress)

		vorkathProgress, err := store.Get("vorkath")
		require.NoError(t, err)
		require.Equal(t, int64(0), vorkathProgress.XP)
		require.Equal(t, 1, vorkathProgress.Level)

		oborProgress, err := store.Get("obor")
		require.NoError(t, err)
		require.Equal(t, int64(0), oborProgress.XP)
	})

	t.Run("read failures default to zero", func(t *testing.T) {
		t.Parallel()

		store := progression.Load(t.Context(), registry, &failingStore{getErr: errors.New("db down")})

		for _, progress := range store.Snapshot() {
			require.Equal(t, int64(0), progress.XP)
			require.Equal(t, 1, progress.Level)
			require.Equal(t, domain.NeverObserved, progress.LastSeenCount)
		}
	})

	t.Run("snapshot is in ordinal order", func(t *testing.T) {
		t.Parallel()

		store := progression.Load(t.Context(), registry, kvstore.NewMemory())

		snapshot := store.Snapshot()
		require.Len(t, snapshot, 3)
		require.Equal(t, "obor", snapshot[0].Boss.Key)
		require.Equal(t, "zulrah", snapshot[1].Boss.Key)
		require.Equal(t, "vorkath", snapshot[2].Boss.Key)
	})
}

func TestApplyCount(t *testing.T) {
	t.Parallel()

	zulrah := domaintest.NewBossBuilder("Zulrah").WithXPPerKill(50).Build()

	t.Run("kill count scenario", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		kv := kvstore.NewMemory()
		store := progression.Load(ctx, domaintest.NewRegistry(t, zulrah), kv)

		result, err := store.ApplyCount(ctx, "zulrah", 10)
		require.NoError(t, err)
		require.Equal(t, domain.UpdateResult{
			Boss:        zulrah,
			GainedUnits: 1,
			GainedXP:    50,
			TotalXP:     500,
			OldLevel:    1,
			NewLevel:    domain.LevelForXP(500),
			LeveledUp:   true,
		}, result)
		require.Equal(t, map[string]string{"xp_zulrah": "500"}, kv.Values())

		result, err = store.ApplyCount(ctx, "zulrah", 12)
		require.NoError(t, err)
		require.Equal(t, domain.UpdateResult{
			Boss:        zulrah,
			GainedUnits: 2,
			GainedXP:    100,
			TotalXP:     600,
			OldLevel:    5,
			NewLevel:    6,
			LeveledUp:   true,
		}, result)
		require.Equal(t, map[string]string{"xp_zulrah": "600"}, kv.Values())

		result, err = store.ApplyCount(ctx, "zulrah", 12)
		require.NoError(t, err)
		require.False(t, result.Gained())
		require.False(t, result.LeveledUp)
		require.Equal(t, int64(0), result.GainedXP)
		require.Equal(t, int64(600), result.TotalXP)

		progress, err := store.Get("zulrah")
		require.NoError(t, err)
		require.Equal(t, domain.Progress{
			Boss:          zulrah,
			XP:            600,
			Level:         6,
			LastSeenCount: 12,
		}, progress)
	})

	t.Run("first observation counts a single kill regardless of count", func(t *testing.T) {
		t.Parallel()

		for _, count := range []int64{0, 1, 7, 2500} {
			store := progression.Load(t.Context(), domaintest.NewRegistry(t, zulrah), kvstore.NewMemory())

			result, err := store.ApplyCount(t.Context(), "zulrah", count)
			require.NoError(t, err)
			require.Equal(t, int64(1), result.GainedUnits)
			require.Equal(t, int64(50), result.GainedXP)
			require.Equal(t, count*50, result.TotalXP)
			require.Equal(t, domain.LevelForXP(count*50), result.NewLevel)
		}
	})

	t.Run("lower count never regresses", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		kv := kvstore.NewMemory()
		store := progression.Load(ctx, domaintest.NewRegistry(t, zulrah), kv)

		_, err := store.ApplyCount(ctx, "zulrah", 100)
		require.NoError(t, err)

		result, err := store.ApplyCount(ctx, "zulrah", 3)
		require.NoError(t, err)
		require.False(t, result.Gained())
		require.Equal(t, int64(5000), result.TotalXP)

		progress, err := store.Get("zulrah")
		require.NoError(t, err)
		require.Equal(t, int64(5000), progress.XP)
		require.Equal(t, int64(100), progress.LastSeenCount)
		require.Equal(t, map[string]string{"xp_zulrah": "5000"}, kv.Values())
	})

	t.Run("restored xp is replaced by the absolute count", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		kv := kvstore.NewMemory()
		require.NoError(t, kv.Set(ctx, "xp_zulrah", "100000"))
		store := progression.Load(ctx, domaintest.NewRegistry(t, zulrah), kv)

		result, err := store.ApplyCount(ctx, "zulrah", 10)
		require.NoError(t, err)
		require.Equal(t, int64(500), result.TotalXP)
		require.Equal(t, domain.LevelForXP(100000), result.OldLevel)
		require.False(t, result.LeveledUp)
	})

	t.Run("negative count", func(t *testing.T) {
		t.Parallel()

		store := progression.Load(t.Context(), domaintest.NewRegistry(t, zulrah), kvstore.NewMemory())

		_, err := store.ApplyCount(t.Context(), "zulrah", -1)
		require.ErrorIs(t, err, domain.ErrInvalidCount)
	})

	t.Run("unknown boss", func(t *testing.T) {
		t.Parallel()

		store := progression.Load(t.Context(), domaintest.NewRegistry(t, zulrah), kvstore.NewMemory())

		_, err := store.ApplyCount(t.Context(), "vorkath", 10)
		require.ErrorIs(t, err, domain.ErrBossNotFound)

		_, err = store.Get("vorkath")
		require.ErrorIs(t, err, domain.ErrBossNotFound)
	})

	t.Run("persist failure keeps the update", func(t *testing.T) {
		t.Parallel()

		kv := &failingStore{setErr: errors.New("disk full")}
		store := progression.Load(t.Context(), domaintest.NewRegistry(t, zulrah), kv)

		result, err := store.ApplyCount(t.Context(), "zulrah", 10)
		require.NoError(t, err)
		require.Equal(t, int64(500), result.TotalXP)
		require.Equal(t, 1, kv.sets)

		progress, err := store.Get("zulrah")
		require.NoError(t, err)
		require.Equal(t, int64(500), progress.XP)
	})

	t.Run("concurrent updates", func(t *testing.T) {
		t.Parallel()

		ctx := t.Context()
		store := progression.Load(ctx, domaintest.NewRegistry(t, zulrah), kvstore.NewMemory())

		var wg sync.WaitGroup
		for i := range 50 {
			wg.Go(func() {
				_, err := store.ApplyCount(ctx, "zulrah", int64(i))
				require.NoError(t, err)
				_ = store.Snapshot()
			})
		}
		wg.Wait()

		progress, err := store.Get("zulrah")
		require.NoError(t, err)
		require.Equal(t, progress.LastSeenCount*50, progress.XP)
		require.Equal(t, domain.LevelForXP(progress.XP), progress.Level)
	})
}
