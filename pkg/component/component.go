// Package component defines the capability the dependency engine consumes
// from callers: something that carries a version and, optionally, a
// minimum-version requirement.
//
// The engine never constructs components itself. Callers adapt their own
// data to [Component]; [Info] covers the common case of plain strings read
// from a manifest or an HTTP request.
package component

import "github.com/matzehuels/versionforge/pkg/version"

// MinVersionKey is the metadata key consulted when a component declares no
// explicit minimum version.
const MinVersionKey = "min_version"

// Component is a versioned unit participating in the dependency graph.
type Component interface {
	// Version is the component's current version.
	Version() version.Version
	// MinVersion returns the explicitly declared minimum version, if any.
	MinVersion() (version.Version, bool)
}

// MetadataProvider is implemented by components that carry free-form
// attributes. It is consulted for [MinVersionKey] when MinVersion reports
// nothing.
type MetadataProvider interface {
	Metadata() map[string]string
}

// MinimumOf resolves the effective minimum version of c: the explicit
// minimum if declared, then the metadata "min_version" entry, then
// [version.DefaultMinVersion].
//
// A declared but unparsable minimum is returned as is: comparisons against
// it fail closed.
func MinimumOf(c Component) version.Version {
	if c == nil {
		return version.Parse(version.DefaultMinVersion)
	}
	if v, ok := c.MinVersion(); ok {
		return v
	}
	if mp, ok := c.(MetadataProvider); ok {
		if s, ok := mp.Metadata()[MinVersionKey]; ok {
			return version.Parse(s)
		}
	}
	return version.Parse(version.DefaultMinVersion)
}

// Info is a [Component] backed by plain strings.
type Info struct {
	CurrentVersion string            `json:"version" yaml:"version" toml:"version"`
	MinimumVersion string            `json:"min_version,omitempty" yaml:"min_version,omitempty" toml:"min_version,omitempty"`
	Attributes     map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty" toml:"metadata,omitempty"`
}

// New returns an Info with the given current version and no requirements.
func New(current string) Info { return Info{CurrentVersion: current} }

// Version implements [Component].
func (i Info) Version() version.Version { return version.Parse(i.CurrentVersion) }

// MinVersion implements [Component]. An empty MinimumVersion means "not
// declared".
func (i Info) MinVersion() (version.Version, bool) {
	if i.MinimumVersion == "" {
		return version.Version{}, false
	}
	return version.Parse(i.MinimumVersion), true
}

// Metadata implements [MetadataProvider].
func (i Info) Metadata() map[string]string { return i.Attributes }

// Fixed adapts an already parsed version. It declares no minimum.
type Fixed version.Version

// Version implements [Component].
func (f Fixed) Version() version.Version { return version.Version(f) }

// MinVersion implements [Component].
func (Fixed) MinVersion() (version.Version, bool) { return version.Version{}, false }
