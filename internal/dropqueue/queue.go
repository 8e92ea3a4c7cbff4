package dropqueue

import (
	"slices"
	"sync"
	"time"
)

// Drop is a single floating xp drop. CreatedAt is the time the drop first appeared,
// merging later gains into it does not restart its animation.
type Drop struct {
	BossKey   string
	Amount    int64
	CreatedAt time.Time
}

// Age returns how long the drop has been on screen. Never negative.
func (d Drop) Age(now time.Time) time.Duration {
	return max(0, now.Sub(d.CreatedAt))
}

type Policy struct {
	MergeEnabled bool
	MergeWindow  time.Duration
	MaxVisible   int
}

// Queue holds the visible drops, newest first
type Queue struct {
	mu    sync.Mutex
	drops []Drop
}

func New() *Queue {
	return &Queue{}
}

// Push adds a gain to the queue.
//
// When merging is enabled and the newest drop is at most MergeWindow old, the gain is added to it
// and the drop is attributed to bossKey. Otherwise a new drop is put in front. The oldest drops are
// then removed until at most MaxVisible remain.
func (q *Queue) Push(bossKey string, amount int64, now time.Time, policy Policy) {
	if amount < 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	if policy.MergeEnabled && len(q.drops) > 0 {
		newest := &q.drops[0]
		if now.Sub(newest.CreatedAt) <= policy.MergeWindow {
			newest.Amount += amount
			newest.BossKey = bossKey
			return
		}
	}

	q.drops = slices.Insert(q.drops, 0, Drop{
		BossKey:   bossKey,
		Amount:    amount,
		CreatedAt: now,
	})

	maxVisible := max(1, policy.MaxVisible)
	if len(q.drops) > maxVisible {
		q.drops = q.drops[:maxVisible]
	}
}

// EvictExpired removes every drop that has been visible for at least duration
func (q *Queue) EvictExpired(now time.Time, duration time.Duration) {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.drops = slices.DeleteFunc(q.drops, func(drop Drop) bool {
		return now.Sub(drop.CreatedAt) >= duration
	})
}

// Snapshot returns a copy of the drops, newest first
func (q *Queue) Snapshot() []Drop {
	q.mu.Lock()
	defer q.mu.Unlock()

	return slices.Clone(q.drops)
}

func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.drops = nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()

	return len(q.drops)
}
