package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"

	"github.com/matzehuels/versionforge/pkg/cache"
	"github.com/matzehuels/versionforge/pkg/compat"
	"github.com/matzehuels/versionforge/pkg/errors"
	vfio "github.com/matzehuels/versionforge/pkg/io"
	"github.com/matzehuels/versionforge/pkg/migration"
	"github.com/matzehuels/versionforge/pkg/observability"
	"github.com/matzehuels/versionforge/pkg/validator"
)

// ecosystem is a manifest applied to fresh engine components.
type ecosystem struct {
	path      string
	manifest  *vfio.Manifest
	validator *validator.Validator
	matrix    *compat.Matrix
	guides    *migration.Generator
}

// loadEcosystem reads the manifest at path and registers it with a new
// validator, matrix and guide generator.
func (c *CLI) loadEcosystem(ctx context.Context, path string) (*ecosystem, error) {
	m, err := c.readManifest(ctx, path)
	if err != nil {
		return nil, err
	}

	eco := &ecosystem{
		path:      path,
		manifest:  m,
		validator: validator.New(validator.WithLogger(c.Logger)),
		matrix:    compat.New(compat.WithLogger(c.Logger)),
		guides:    migration.New(migration.WithLogger(c.Logger)),
	}
	m.Apply(eco.validator, eco.matrix, eco.guides)
	c.Logger.Debug("loaded manifest", "path", path,
		"components", len(m.Components),
		"pairs", len(m.Compatibility),
		"migrations", len(m.Migrations))
	return eco, nil
}

// readManifest decodes a manifest file. Decoded manifests are cached under
// their content hash so repeated runs over the same file skip parsing.
func (c *CLI) readManifest(ctx context.Context, path string) (*vfio.Manifest, error) {
	if err := errors.ValidateManifestPath(path); err != nil {
		return nil, err
	}
	format, err := vfio.FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read %s", path)
	}

	backend, keyer, err := c.openCache(ctx)
	if err != nil {
		c.Logger.Warn("manifest cache unavailable", "err", err)
		backend, keyer = cache.NewNullCache(), cache.NewDefaultKeyer()
	}
	defer backend.Close()

	key := keyer.ManifestKey(cache.Hash(data))
	if cached, ok, err := backend.Get(ctx, key); err == nil && ok {
		var m vfio.Manifest
		if json.Unmarshal(cached, &m) == nil {
			observability.Cache().OnCacheHit(ctx, "manifest")
			return &m, nil
		}
	}
	observability.Cache().OnCacheMiss(ctx, "manifest")

	m, err := vfio.Read(bytes.NewReader(data), format)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "manifest %s", path)
	}

	if encoded, err := json.Marshal(m); err == nil {
		if err := backend.Set(ctx, key, encoded, c.Config.Cache.TTL.Duration); err != nil {
			c.Logger.Debug("manifest cache write failed", "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, "manifest", len(encoded))
		}
	}
	return m, nil
}
