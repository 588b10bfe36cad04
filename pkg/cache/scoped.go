package cache

import "time"

// ScopedKeyer prefixes every key of an inner Keyer. The CLI scopes keys by
// build version so a new release never reads entries written by an old one.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner, or the DefaultKeyer if inner is nil.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// ProbeKey returns the prefixed inner key.
func (k *ScopedKeyer) ProbeKey(path string, size int64, modTime time.Time) string {
	return k.prefix + k.inner.ProbeKey(path, size, modTime)
}
