package cache

// ScopedKeyer wraps a Keyer with a prefix for namespace isolation.
// This is useful when several deployments or ecosystems share one Redis
// server and need separate key spaces.
//
// Example usage:
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "platform:")
//	keyer.MatrixKey("default") // "platform:matrix:default"
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// MatrixKey generates a prefixed matrix key.
func (k *ScopedKeyer) MatrixKey(name string) string {
	return k.prefix + k.inner.MatrixKey(name)
}

// ManifestKey generates a prefixed manifest key.
func (k *ScopedKeyer) ManifestKey(contentHash string) string {
	return k.prefix + k.inner.ManifestKey(contentHash)
}
