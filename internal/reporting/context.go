package reporting

import (
	"context"
	"maps"
	"time"
)

type reportingMetaContextKey struct{}

type ReportingMeta struct {
	tags      map[string]string
	extras    map[string]string
	player    string
	boss      string
	startedAt time.Time
}

// MetaFromContext returns a copy of the reporting meta stored in ctx
func MetaFromContext(ctx context.Context) ReportingMeta {
	meta, _ := ctx.Value(reportingMetaContextKey{}).(ReportingMeta)
	meta.tags = maps.Clone(meta.tags)
	meta.extras = maps.Clone(meta.extras)
	if meta.tags == nil {
		meta.tags = make(map[string]string)
	}
	if meta.extras == nil {
		meta.extras = make(map[string]string)
	}
	return meta
}

func (m ReportingMeta) Player() string {
	return m.player
}

func updateMeta(ctx context.Context, update func(meta *ReportingMeta)) context.Context {
	meta := MetaFromContext(ctx)
	update(&meta)
	return context.WithValue(ctx, reportingMetaContextKey{}, meta)
}

func setStartedAtInContext(ctx context.Context, startedAt time.Time) context.Context {
	return updateMeta(ctx, func(meta *ReportingMeta) {
		meta.startedAt = startedAt
	})
}

func AddExtrasToContext(ctx context.Context, extras map[string]string) context.Context {
	return updateMeta(ctx, func(meta *ReportingMeta) {
		maps.Copy(meta.extras, extras)
	})
}

func AddTagsToContext(ctx context.Context, tags map[string]string) context.Context {
	return updateMeta(ctx, func(meta *ReportingMeta) {
		maps.Copy(meta.tags, tags)
	})
}

// SetPlayerInContext attributes reports to the player the request was made for
func SetPlayerInContext(ctx context.Context, player string) context.Context {
	return updateMeta(ctx, func(meta *ReportingMeta) {
		meta.player = player
	})
}

// SetBossInContext tags reports with the boss whose progression was being changed or read
func SetBossInContext(ctx context.Context, bossKey string) context.Context {
	return updateMeta(ctx, func(meta *ReportingMeta) {
		meta.boss = bossKey
	})
}
