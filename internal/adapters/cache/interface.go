package cache

type hitResult[T any] struct {
	data    T
	valid   bool
	claimed bool
}

// Cache is a keyed cache where a missing entry is claimed by the first caller.
// Other callers wait for the claimant to set or delete the entry.
type Cache[T any] interface {
	getOrClaim(key string) hitResult[T]
	set(key string, data T)
	delete(key string)
	wait()
}

// Set stores data for key, replacing any claim or existing entry
func Set[T any](cache Cache[T], key string, data T) {
	cache.set(key, data)
}

// Delete drops the entry for key, if any
func Delete[T any](cache Cache[T], key string) {
	cache.delete(key)
}
