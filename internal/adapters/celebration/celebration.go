package celebration

import (
	"context"
	"log/slog"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/logging"
)

type celebrator interface {
	Celebrate(ctx context.Context, celebration domain.Celebration)
}

type logCelebrator struct{}

// NewLogCelebrator announces level-ups in the log only
func NewLogCelebrator() logCelebrator {
	return logCelebrator{}
}

func (logCelebrator) Celebrate(ctx context.Context, celebration domain.Celebration) {
	logging.FromContext(ctx).InfoContext(
		ctx,
		"Level up",
		slog.String("boss", celebration.Boss.Key),
		slog.Int("level", celebration.Level),
		slog.Bool("maxLevel", celebration.IsMaxLevel()),
	)
}

type multi []celebrator

// NewMulti celebrates with every celebrator, in order
func NewMulti(celebrators ...celebrator) multi {
	return multi(celebrators)
}

func (m multi) Celebrate(ctx context.Context, celebration domain.Celebration) {
	for _, c := range m {
		c.Celebrate(ctx, celebration)
	}
}
