package domaintest

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Amund211/bosslevels/internal/domain"
	"github.com/stretchr/testify/require"
)

type bossBuilder struct {
	boss domain.Boss
}

func (bb *bossBuilder) WithXPPerKill(xp int64) *bossBuilder {
	bb.boss.XPPerKill = xp
	return bb
}

func (bb *bossBuilder) WithOrdinal(ordinal int) *bossBuilder {
	bb.boss.Ordinal = ordinal
	return bb
}

func (bb *bossBuilder) WithIcon(icon string) *bossBuilder {
	bb.boss.Icon = icon
	return bb
}

func (bb *bossBuilder) Build() domain.Boss {
	return bb.boss
}

// NewBossBuilder creates a boss with a key derived from the name and 50 xp per kill
func NewBossBuilder(name string) *bossBuilder {
	key := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	return &bossBuilder{
		boss: domain.Boss{
			Key:       key,
			Name:      name,
			XPPerKill: 50,
			Icon:      fmt.Sprintf("%s.png", key),
		},
	}
}

func NewRegistry(t *testing.T, bosses ...domain.Boss) *domain.Registry {
	t.Helper()

	registry, err := domain.NewRegistry(bosses)
	require.NoError(t, err)
	return registry
}
