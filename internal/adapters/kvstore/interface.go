package kvstore

import "context"

// Store is a flat string key value store scoped to a single configuration group
type Store interface {
	// Get returns the stored value and whether the key exists
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// ConfigGroup is the group every bosslevels key is stored under
const ConfigGroup = "bosslevels"
