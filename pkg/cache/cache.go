// Package cache stores probe results between runs.
//
// Probing a video with ffprobe costs a process launch and a container scan.
// Its result only changes when the file does, so entries are keyed by path,
// size and modification time (see [Keyer.ProbeKey]) and reused until they
// expire.
//
// [FileCache] keeps one JSON file per entry under a directory, normally
// $XDG_CACHE_HOME/contactsheet. [NullCache] disables caching.
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with per-entry expiry.
type Cache interface {
	// Get returns the value for key and whether it was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// Keyer builds cache keys.
type Keyer interface {
	// ProbeKey identifies the probe result of one version of a file.
	ProbeKey(path string, size int64, modTime time.Time) string
}

// DefaultKeyer is the standard Keyer.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard Keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// ProbeKey hashes the file identity into a "probe:" key.
func (DefaultKeyer) ProbeKey(path string, size int64, modTime time.Time) string {
	return hashKey("probe", path, size, modTime.UTC().UnixNano())
}
