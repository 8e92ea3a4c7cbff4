package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Boss is a static boss definition. Ordinal is explicitly assigned and stable across releases,
// as it seeds the per-boss overlay color.
type Boss struct {
	Key       string
	Name      string
	XPPerKill int64
	Icon      string
	Ordinal   int
}

// Registry is the read-only set of known bosses
type Registry struct {
	bosses []Boss
	byKey  map[string]Boss
	byName map[string]Boss
}

func NewRegistry(bosses []Boss) (*Registry, error) {
	registry := &Registry{
		bosses: make([]Boss, 0, len(bosses)),
		byKey:  make(map[string]Boss, len(bosses)),
		byName: make(map[string]Boss, len(bosses)),
	}
	ordinals := make(map[int]string, len(bosses))

	for _, boss := range bosses {
		if boss.Key == "" || strings.TrimSpace(boss.Name) == "" {
			return nil, fmt.Errorf("boss must have a key and a name: %+v", boss)
		}
		if boss.XPPerKill < 0 {
			return nil, fmt.Errorf("boss %s has negative xp per kill", boss.Key)
		}
		if _, ok := registry.byKey[boss.Key]; ok {
			return nil, fmt.Errorf("duplicate boss key %s", boss.Key)
		}
		name := nameKey(boss.Name)
		if _, ok := registry.byName[name]; ok {
			return nil, fmt.Errorf("duplicate boss name %s", boss.Name)
		}
		if other, ok := ordinals[boss.Ordinal]; ok {
			return nil, fmt.Errorf("boss %s reuses ordinal %d of %s", boss.Key, boss.Ordinal, other)
		}

		ordinals[boss.Ordinal] = boss.Key
		registry.byKey[boss.Key] = boss
		registry.byName[name] = boss
		registry.bosses = append(registry.bosses, boss)
	}

	slices.SortFunc(registry.bosses, func(a, b Boss) int {
		return a.Ordinal - b.Ordinal
	})

	return registry, nil
}

// FindByName looks up a boss by its kill count name, ignoring case and surrounding whitespace
func (r *Registry) FindByName(name string) (Boss, bool) {
	boss, ok := r.byName[nameKey(name)]
	return boss, ok
}

func (r *Registry) FindByKey(key string) (Boss, bool) {
	boss, ok := r.byKey[key]
	return boss, ok
}

// All returns every boss in ordinal order
func (r *Registry) All() []Boss {
	return slices.Clone(r.bosses)
}

func (r *Registry) Len() int {
	return len(r.bosses)
}

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
