package progression

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/reporting"
)

type keyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// XPKey is the persisted key holding the cumulative xp of a boss
func XPKey(boss domain.Boss) string {
	return "xp_" + boss.Key
}

// Store owns the progression records of every known boss and is the only place they change
type Store struct {
	mu      sync.Mutex
	kv      keyValueStore
	bosses  []domain.Boss
	records map[string]*domain.Progress
}

// Load restores the progression of every boss in the registry from the key value store.
// Missing, unreadable or malformed values fall back to zero xp.
func Load(ctx context.Context, registry *domain.Registry, kv keyValueStore) *Store {
	logger := logging.FromContext(ctx)

	store := &Store{
		kv:      kv,
		bosses:  registry.All(),
		records: make(map[string]*domain.Progress, registry.Len()),
	}

	for _, boss := range store.bosses {
		experience := loadXP(ctx, kv, boss)
		progress := domain.NewProgress(boss, experience)
		store.records[boss.Key] = &progress
	}

	logger.InfoContext(ctx, "Loaded boss progression", slog.Int("bosses", len(store.records)))

	return store
}

func loadXP(ctx context.Context, kv keyValueStore, boss domain.Boss) int64 {
	logger := logging.FromContext(ctx).With(slog.String("boss", boss.Key))
	key := XPKey(boss)

	raw, ok, err := kv.Get(ctx, key)
	if err != nil {
		reporting.Report(ctx, fmt.Errorf("failed to load boss xp: %w", err), map[string]string{
			"key": key,
		})
		return 0
	}
	if !ok {
		return 0
	}

	experience, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || experience < 0 {
		logger.WarnContext(ctx, "Ignoring malformed stored xp", slog.String("value", raw))
		return 0
	}

	return experience
}

// ApplyCount applies a newly observed cumulative kill count for a boss.
//
// The first observation since startup counts as a single kill. Counts that did not increase
// leave the record untouched and report no gain.
func (s *Store) ApplyCount(ctx context.Context, bossKey string, count int64) (domain.UpdateResult, error) {
	if count < 0 {
		return domain.UpdateResult{}, fmt.Errorf("%w: %d", domain.ErrInvalidCount, count)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[bossKey]
	if !ok {
		return domain.UpdateResult{}, fmt.Errorf("%w: %s", domain.ErrBossNotFound, bossKey)
	}
	boss := record.Boss

	gainedUnits := int64(1)
	if record.LastSeenCount != domain.NeverObserved {
		gainedUnits = count - record.LastSeenCount
	}

	if gainedUnits <= 0 {
		return domain.UpdateResult{
			Boss:     boss,
			TotalXP:  record.XP,
			OldLevel: record.Level,
			NewLevel: record.Level,
		}, nil
	}

	oldLevel := record.Level

	record.LastSeenCount = count
	record.XP = count * boss.XPPerKill
	record.Level = domain.LevelForXP(record.XP)

	err := s.kv.Set(ctx, XPKey(boss), strconv.FormatInt(record.XP, 10))
	if err != nil {
		// NOTE: The in-memory record stays updated, the next accepted update persists it again
		reporting.Report(ctx, fmt.Errorf("failed to persist boss xp: %w", err), map[string]string{
			"boss": boss.Key,
			"xp":   strconv.FormatInt(record.XP, 10),
		})
	}

	return domain.UpdateResult{
		Boss:        boss,
		GainedUnits: gainedUnits,
		GainedXP:    gainedUnits * boss.XPPerKill,
		TotalXP:     record.XP,
		OldLevel:    oldLevel,
		NewLevel:    record.Level,
		LeveledUp:   record.Level > oldLevel,
	}, nil
}

func (s *Store) Get(bossKey string) (domain.Progress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[bossKey]
	if !ok {
		return domain.Progress{}, fmt.Errorf("%w: %s", domain.ErrBossNotFound, bossKey)
	}
	return *record, nil
}

// Snapshot returns a copy of every record in boss ordinal order
func (s *Store) Snapshot() []domain.Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]domain.Progress, 0, len(s.bosses))
	for _, boss := range s.bosses {
		snapshot = append(snapshot, *s.records[boss.Key])
	}
	return snapshot
}
