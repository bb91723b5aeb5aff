// Package cache provides byte-oriented key/value storage for versionforge.
//
// The compatibility matrix and parsed manifests are persisted through the
// [Cache] interface so the CLI and the HTTP service can share state across
// runs. Three backends are provided:
//
//   - [FileCache]: JSON entry files under a directory (default for the CLI)
//   - [RedisCache]: a Redis server via go-redis (shared deployments)
//   - [NullCache]: stores nothing (caching disabled)
//
// Keys are produced by a [Keyer] so that every backend uses the same naming
// scheme, optionally namespaced with [NewScopedKeyer].
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys.
//
// Get reports a miss with ok == false and a nil error; errors are reserved
// for backend failures. A ttl of zero means "no expiration".
type Cache interface {
	Get(ctx context.Context, key string) (data []byte, ok bool, err error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Keyer generates cache keys for the values versionforge persists.
type Keyer interface {
	// MatrixKey names a persisted compatibility matrix.
	MatrixKey(name string) string
	// ManifestKey names a parsed manifest, identified by its content hash.
	ManifestKey(contentHash string) string
}

// DefaultKeyer produces "matrix:<name>" and hashed "manifest:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default key scheme.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// MatrixKey implements [Keyer].
func (DefaultKeyer) MatrixKey(name string) string { return "matrix:" + name }

// ManifestKey implements [Keyer].
func (DefaultKeyer) ManifestKey(contentHash string) string { return digestKey("manifest", contentHash) }
