package notifier

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/jellydator/ttlcache/v3"
)

// Feed holds published entries until they are drained or expire.
// Entries nobody picks up within the ttl are dropped.
type Feed[T any] struct {
	mu       sync.Mutex
	sequence uint64
	entries  *ttlcache.Cache[uint64, T]
}

func NewFeed[T any](ttl time.Duration, capacity uint64) (*Feed[T], func()) {
	entries := ttlcache.New[uint64, T](
		ttlcache.WithTTL[uint64, T](ttl),
		ttlcache.WithCapacity[uint64, T](capacity),
		ttlcache.WithDisableTouchOnHit[uint64, T](),
	)
	go entries.Start()

	return &Feed[T]{entries: entries}, entries.Stop
}

func (f *Feed[T]) Publish(ctx context.Context, entry T) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.sequence++
	f.entries.Set(f.sequence, entry, ttlcache.DefaultTTL)

	logging.FromContext(ctx).DebugContext(ctx, "Published to feed", slog.Uint64("sequence", f.sequence))
}

// Drain removes and returns every pending entry in publish order
func (f *Feed[T]) Drain() []T {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := f.entries.Items()
	sequences := make([]uint64, 0, len(items))
	for sequence, item := range items {
		if item.IsExpired() {
			continue
		}
		sequences = append(sequences, sequence)
	}
	slices.Sort(sequences)

	drained := make([]T, 0, len(sequences))
	for _, sequence := range sequences {
		drained = append(drained, items[sequence].Value())
	}

	f.entries.DeleteAll()

	return drained
}

func (f *Feed[T]) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.entries.Len()
}
