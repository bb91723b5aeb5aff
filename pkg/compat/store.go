package compat

import (
	"context"
	"time"

	"github.com/matzehuels/versionforge/pkg/cache"
	"github.com/matzehuels/versionforge/pkg/errors"
	"github.com/matzehuels/versionforge/pkg/observability"
)

const cacheKeyType = "matrix"

// Store persists matrices in a [cache.Cache] under keys from a
// [cache.Keyer].
type Store struct {
	cache cache.Cache
	keyer cache.Keyer
	ttl   time.Duration
	opts  []Option
}

// NewStore returns a Store backed by c. A nil keyer selects the default
// key scheme; ttl zero keeps entries forever. opts are applied to every
// loaded matrix.
func NewStore(c cache.Cache, keyer cache.Keyer, ttl time.Duration, opts ...Option) *Store {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &Store{cache: c, keyer: keyer, ttl: ttl, opts: opts}
}

// Save writes m under name.
func (s *Store) Save(ctx context.Context, name string, m *Matrix) error {
	data, err := m.ToJSON()
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode matrix %q", name)
	}
	if err := s.cache.Set(ctx, s.keyer.MatrixKey(name), data, s.ttl); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "store matrix %q", name)
	}
	observability.Cache().OnCacheSet(ctx, cacheKeyType, len(data))
	return nil
}

// Load reads the matrix stored under name. A missing entry yields an empty
// matrix and found == false. Corrupt entries also yield an empty matrix,
// as [FromJSON] does. Only backend failures are returned as errors.
func (s *Store) Load(ctx context.Context, name string) (m *Matrix, found bool, err error) {
	data, ok, err := s.cache.Get(ctx, s.keyer.MatrixKey(name))
	if err != nil {
		return New(s.opts...), false, errors.Wrap(errors.ErrCodeInternal, err, "load matrix %q", name)
	}
	if !ok {
		observability.Cache().OnCacheMiss(ctx, cacheKeyType)
		return New(s.opts...), false, nil
	}
	observability.Cache().OnCacheHit(ctx, cacheKeyType)
	return FromJSON(data, s.opts...), true, nil
}

// Delete removes the matrix stored under name.
func (s *Store) Delete(ctx context.Context, name string) error {
	return s.cache.Delete(ctx, s.keyer.MatrixKey(name))
}
