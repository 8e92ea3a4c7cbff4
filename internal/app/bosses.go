package app

import (
	"context"
	"fmt"

	"github.com/Amund211/bosslevels/internal/domain"
)

type progressReader interface {
	Get(bossKey string) (domain.Progress, error)
	Snapshot() []domain.Progress
}

// GetOverview returns the progression of every boss in ordinal order
type GetOverview func(ctx context.Context) []domain.Progress

func BuildGetOverview(store progressReader) GetOverview {
	return func(ctx context.Context) []domain.Progress {
		return store.Snapshot()
	}
}

type GetBossDetail func(ctx context.Context, bossKey string) (domain.BossDetail, error)

func BuildGetBossDetail(store progressReader) GetBossDetail {
	return func(ctx context.Context, bossKey string) (domain.BossDetail, error) {
		progress, err := store.Get(bossKey)
		if err != nil {
			// NOTE: Get only fails for unknown bosses, which is not worth reporting
			return domain.BossDetail{}, fmt.Errorf("could not get boss progress: %w", err)
		}

		return domain.NewBossDetail(progress), nil
	}
}
