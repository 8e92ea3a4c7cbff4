package app

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

type appMetricsCollection struct {
	killCounts metric.Int64Counter
	xpGained   metric.Int64Counter
	levelUps   metric.Int64Counter
}

var metrics appMetricsCollection

func init() {
	const name = "bosslevels/app"
	meter := otel.Meter(name)

	killCounts, err := meter.Int64Counter(
		"app/kill_count_count",
		metric.WithDescription("Number of recognized kill count messages"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create kill count metric: %w", err))
	}

	xpGained, err := meter.Int64Counter(
		"app/xp_gained",
		metric.WithDescription("Boss xp gained"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create xp gained metric: %w", err))
	}

	levelUps, err := meter.Int64Counter(
		"app/level_up_count",
		metric.WithDescription("Number of boss level-ups"),
	)
	if err != nil {
		panic(fmt.Errorf("failed to create level up metric: %w", err))
	}

	metrics = appMetricsCollection{
		killCounts: killCounts,
		xpGained:   xpGained,
		levelUps:   levelUps,
	}
}
