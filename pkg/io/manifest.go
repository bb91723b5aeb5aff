package io

import (
	"path/filepath"
	"strings"

	"github.com/matzehuels/versionforge/pkg/compat"
	"github.com/matzehuels/versionforge/pkg/component"
	"github.com/matzehuels/versionforge/pkg/errors"
	"github.com/matzehuels/versionforge/pkg/migration"
	"github.com/matzehuels/versionforge/pkg/validator"
)

// Format identifies a manifest encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromPath derives the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported manifest extension %q (want .json, .yaml, .yml or .toml)", filepath.Ext(path))
}

// Manifest is the on-disk description of a component ecosystem.
type Manifest struct {
	Components    []Component     `json:"components" yaml:"components" toml:"components"`
	Compatibility []Compatibility `json:"compatibility,omitempty" yaml:"compatibility,omitempty" toml:"compatibility,omitempty"`
	Migrations    []Migration     `json:"migrations,omitempty" yaml:"migrations,omitempty" toml:"migrations,omitempty"`
}

// Component declares one component and its outgoing dependencies.
type Component struct {
	Name       string            `json:"name" yaml:"name" toml:"name"`
	Version    string            `json:"version" yaml:"version" toml:"version"`
	MinVersion string            `json:"min_version,omitempty" yaml:"min_version,omitempty" toml:"min_version,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty" toml:"metadata,omitempty"`
	DependsOn  []string          `json:"depends_on,omitempty" yaml:"depends_on,omitempty" toml:"depends_on,omitempty"`
}

// Info returns the component capability for c.
func (c Component) Info() component.Info {
	return component.Info{CurrentVersion: c.Version, MinimumVersion: c.MinVersion, Attributes: c.Metadata}
}

// Compatibility declares one known-good version pair.
type Compatibility struct {
	Component   string `json:"component" yaml:"component" toml:"component"`
	Version     string `json:"version" yaml:"version" toml:"version"`
	With        string `json:"with" yaml:"with" toml:"with"`
	WithVersion string `json:"with_version" yaml:"with_version" toml:"with_version"`
}

// Migration declares curated facts about one version transition.
type Migration struct {
	Component       string   `json:"component" yaml:"component" toml:"component"`
	From            string   `json:"from" yaml:"from" toml:"from"`
	To              string   `json:"to" yaml:"to" toml:"to"`
	BreakingChanges []string `json:"breaking_changes,omitempty" yaml:"breaking_changes,omitempty" toml:"breaking_changes,omitempty"`
	NewFeatures     []string `json:"new_features,omitempty" yaml:"new_features,omitempty" toml:"new_features,omitempty"`
	Deprecations    []string `json:"deprecations,omitempty" yaml:"deprecations,omitempty" toml:"deprecations,omitempty"`
}

// Validate checks names and required fields. It does not check versions:
// unparsable versions are legal input and fail closed downstream.
func (m *Manifest) Validate() error {
	seen := make(map[string]bool, len(m.Components))
	for i, c := range m.Components {
		if err := errors.ValidateComponentName(c.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidName, err, "components[%d]", i)
		}
		if seen[c.Name] {
			return errors.New(errors.ErrCodeInvalidManifest, "component %q declared twice", c.Name)
		}
		seen[c.Name] = true
		if strings.TrimSpace(c.Version) == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "component %q has no version", c.Name)
		}
		for _, dep := range c.DependsOn {
			if err := errors.ValidateComponentName(dep); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidName, err, "component %q depends_on", c.Name)
			}
		}
	}
	for i, p := range m.Compatibility {
		for _, name := range []string{p.Component, p.With} {
			if err := errors.ValidateComponentName(name); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidName, err, "compatibility[%d]", i)
			}
		}
		if p.Version == "" || p.WithVersion == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "compatibility[%d] needs both versions", i)
		}
	}
	for i, mg := range m.Migrations {
		if err := errors.ValidateComponentName(mg.Component); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidName, err, "migrations[%d]", i)
		}
		if mg.From == "" || mg.To == "" {
			return errors.New(errors.ErrCodeInvalidManifest, "migrations[%d] needs from and to", i)
		}
	}
	return nil
}

// Apply registers the manifest contents. Any of the targets may be nil,
// in which case that part of the manifest is skipped for it. Components
// are registered in declaration order, then dependency edges, then
// compatibility pairs and migration facts.
func (m *Manifest) Apply(v *validator.Validator, mx *compat.Matrix, gen *migration.Generator) {
	for _, c := range m.Components {
		info := c.Info()
		if v != nil {
			v.RegisterComponent(c.Name, info)
		}
		if mx != nil {
			mx.RegisterComponent(c.Name, info)
		}
	}
	if v != nil {
		for _, c := range m.Components {
			for _, dep := range c.DependsOn {
				v.RegisterDependency(c.Name, dep)
			}
		}
	}
	if mx != nil {
		for _, p := range m.Compatibility {
			mx.RegisterCompatibility(p.Component, p.Version, p.With, p.WithVersion)
		}
	}
	if gen != nil {
		for _, mg := range m.Migrations {
			gen.Register(mg.Component, mg.From, mg.To, migration.Info{
				BreakingChanges: mg.BreakingChanges,
				NewFeatures:     mg.NewFeatures,
				Deprecations:    mg.Deprecations,
			})
		}
	}
}

// Lookup returns the declared component with the given name.
func (m *Manifest) Lookup(name string) (Component, bool) {
	for _, c := range m.Components {
		if c.Name == name {
			return c, true
		}
	}
	return Component{}, false
}
