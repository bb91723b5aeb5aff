package compat

import (
	"io"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/versionforge/pkg/component"
	"github.com/matzehuels/versionforge/pkg/version"
)

// Pair is one compatibility fact seen from the owning component: Version
// is the owner's version, With the other component's version.
type Pair struct {
	Version string
	With    string
}

// Report is the denormalized matrix dump: component -> other component ->
// component version -> compatible versions of the other component.
type Report map[string]map[string]map[string][]string

// Matrix is a symmetric store of compatibility facts.
//
// The zero value is not usable - use [New]. Matrix is not safe for
// concurrent use; callers that share one must serialize registrations.
type Matrix struct {
	versions map[string][]string          // component -> versions seen, in order
	pairs    map[string]map[string][]Pair // component -> other -> pairs, in order
	logger   *log.Logger
}

// Option configures a [Matrix].
type Option func(*Matrix)

// WithLogger sets the logger used for registration and import diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Matrix) {
		if l != nil {
			m.logger = l
		}
	}
}

// New returns an empty matrix.
func New(opts ...Option) *Matrix {
	m := &Matrix{
		versions: make(map[string][]string),
		pairs:    make(map[string]map[string][]Pair),
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RegisterComponent records c's current version, and its declared minimum
// version if any, in the version history of name. Versions already in the
// history are not added twice.
func (m *Matrix) RegisterComponent(name string, c component.Component) {
	current := c.Version().String()
	m.addVersion(name, current)

	minimum := current
	if v, ok := c.MinVersion(); ok {
		minimum = v.String()
		m.addVersion(name, minimum)
	}
	if _, ok := m.pairs[name]; !ok {
		m.pairs[name] = make(map[string][]Pair)
	}
	m.logger.Debug("registered component", "name", name, "version", current, "min", minimum)
}

func (m *Matrix) addVersion(name, v string) {
	history := m.versions[name]
	if history == nil {
		history = []string{}
	}
	if v != "" && !slices.Contains(history, v) {
		history = append(history, v)
	}
	m.versions[name] = history
}

// RegisterCompatibility records that a at version va works with b at
// version vb, and the mirrored fact for b. Registering a known pair again
// has no effect.
func (m *Matrix) RegisterCompatibility(a, va, b, vb string) {
	m.addPair(a, b, Pair{Version: va, With: vb})
	m.addPair(b, a, Pair{Version: vb, With: va})
	m.logger.Debug("registered compatibility", "component", a, "version", va, "with", b, "with_version", vb)
}

func (m *Matrix) addPair(owner, other string, p Pair) {
	targets, ok := m.pairs[owner]
	if !ok {
		targets = make(map[string][]Pair)
		m.pairs[owner] = targets
	}
	if !slices.Contains(targets[other], p) {
		targets[other] = append(targets[other], p)
	}
}

// Verify reports whether a at va is known to work with b at vb.
//
// It is true when the exact pair was registered, or when some pair
// registered for a at exactly va names a version of b that vb satisfies
// as a minimum. Everything else, including unknown components, is false.
func (m *Matrix) Verify(a, va, b, vb string) bool {
	for _, p := range m.pairs[a][b] {
		if p.Version != va {
			continue
		}
		if p.With == vb || version.IsCompatible(vb, p.With) {
			return true
		}
	}
	return false
}

// CompatibleVersions returns, for each other component, the versions
// registered as compatible with name at v. Components without a match are
// omitted; an unknown name yields an empty map.
func (m *Matrix) CompatibleVersions(name, v string) map[string][]string {
	result := make(map[string][]string)
	for other, pairs := range m.pairs[name] {
		var matches []string
		for _, p := range pairs {
			if p.Version == v {
				matches = append(matches, p.With)
			}
		}
		if len(matches) > 0 {
			result[other] = matches
		}
	}
	return result
}

// Report returns every recorded pair grouped by component, other
// component, and component version. Registered components without pairs
// appear with an empty inner map.
func (m *Matrix) Report() Report {
	report := make(Report, len(m.pairs))
	for name, targets := range m.pairs {
		byTarget := make(map[string]map[string][]string, len(targets))
		for other, pairs := range targets {
			byVersion := make(map[string][]string)
			for _, p := range pairs {
				byVersion[p.Version] = append(byVersion[p.Version], p.With)
			}
			byTarget[other] = byVersion
		}
		report[name] = byTarget
	}
	return report
}

// Components returns the sorted names of all components known to the
// matrix, whether registered directly or mentioned in a pair.
func (m *Matrix) Components() []string {
	set := make(map[string]struct{}, len(m.versions)+len(m.pairs))
	for name := range m.versions {
		set[name] = struct{}{}
	}
	for name := range m.pairs {
		set[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(set))
}

// Versions returns the version history recorded for name.
func (m *Matrix) Versions(name string) []string { return slices.Clone(m.versions[name]) }

// Pairs returns the pairs recorded for name against other.
func (m *Matrix) Pairs(name, other string) []Pair { return slices.Clone(m.pairs[name][other]) }

// PairCount returns the number of pairs recorded for name against other.
func (m *Matrix) PairCount(name, other string) int { return len(m.pairs[name][other]) }
