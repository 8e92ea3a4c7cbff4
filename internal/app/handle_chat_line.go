package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/Amund211/bosslevels/internal/dropqueue"
	"github.com/Amund211/bosslevels/internal/logging"
	"github.com/Amund211/bosslevels/internal/normalizer"
	"github.com/Amund211/bosslevels/internal/reporting"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// HandleChatLine applies a chat line to the boss progression.
// Returns false when the line is not a kill count message of the local player.
type HandleChatLine func(ctx context.Context, event normalizer.Event) (domain.UpdateResult, bool)

type killCountNormalizer interface {
	Normalize(event normalizer.Event, localPlayerName string) (normalizer.KillCount, bool)
}

type progressUpdater interface {
	ApplyCount(ctx context.Context, bossKey string, count int64) (domain.UpdateResult, error)
}

type dropPusher interface {
	Push(bossKey string, amount int64, now time.Time, policy dropqueue.Policy)
}

type panelRefresher interface {
	Refresh(ctx context.Context, bossKey string)
}

type chatNotifier interface {
	Notify(ctx context.Context, message string)
}

type celebrator interface {
	Celebrate(ctx context.Context, celebration domain.Celebration)
}

func BuildHandleChatLine(
	kcNormalizer killCountNormalizer,
	store progressUpdater,
	drops dropPusher,
	panel panelRefresher,
	notifier chatNotifier,
	celebrator celebrator,
	getSettings GetSettings,
	getLocalPlayerName func() string,
	nowFunc func() time.Time,
) HandleChatLine {
	return func(ctx context.Context, event normalizer.Event) (domain.UpdateResult, bool) {
		killCount, ok := kcNormalizer.Normalize(event, getLocalPlayerName())
		if !ok {
			return domain.UpdateResult{}, false
		}

		boss := killCount.Boss
		ctx = logging.AddBossToContext(ctx, boss.Key)
		ctx = reporting.SetBossInContext(ctx, boss.Key)
		ctx = logging.AddMetaToContext(ctx,
			slog.Int64("count", killCount.Count),
			slog.String("grammar", killCount.Grammar),
		)
		logger := logging.FromContext(ctx)

		result, err := store.ApplyCount(ctx, boss.Key, killCount.Count)
		if err != nil {
			// NOTE: The normalizer only returns known bosses and non-negative counts
			reporting.Report(ctx, fmt.Errorf("failed to apply kill count: %w", err), map[string]string{
				"count": fmt.Sprint(killCount.Count),
			})
			return domain.UpdateResult{}, false
		}

		bossAttribute := metric.WithAttributes(attribute.String("boss", boss.Key))
		metrics.killCounts.Add(ctx, 1, bossAttribute)

		if !result.Gained() {
			logger.DebugContext(ctx, "Kill count did not increase")
			return result, true
		}

		metrics.xpGained.Add(ctx, result.GainedXP, bossAttribute)

		settings := getSettings()

		if settings.EnableXPDrops {
			drops.Push(boss.Key, result.GainedXP, nowFunc(), DropPolicy(settings))
		}

		panel.Refresh(ctx, boss.Key)

		if settings.EnableChatLine {
			notifier.Notify(ctx, fmt.Sprintf(
				"Boss Levels: %s +%d xp (Total: %d, Level: %d)",
				boss.Name, result.GainedXP, result.TotalXP, result.NewLevel,
			))
		}

		if result.LeveledUp {
			metrics.levelUps.Add(ctx, 1, bossAttribute)
			logger.InfoContext(ctx, "Boss level up",
				slog.Int("oldLevel", result.OldLevel),
				slog.Int("newLevel", result.NewLevel),
			)

			if settings.EnableFireworks {
				celebrator.Celebrate(ctx, domain.Celebration{Boss: boss, Level: result.NewLevel})
			}
		}

		return result, true
	}
}
