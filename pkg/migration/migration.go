// Package migration turns a version delta, plus optionally curated facts,
// into a structured migration guide.
//
// Curated facts are registered per component and exact (from, to) version
// strings with [Generator.Register]; no range matching is performed.
// [Generator.Guide] can be called for any pair: without curated facts the
// guide is derived from the [version.Delta] alone.
//
// [version.Delta]: github.com/matzehuels/versionforge/pkg/version#Delta
package migration

import (
	"io"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/versionforge/pkg/version"
)

// UpgradeType classifies a version transition.
type UpgradeType string

const (
	NoChange     UpgradeType = "no_change"
	Downgrade    UpgradeType = "downgrade"
	MajorUpgrade UpgradeType = "major_upgrade"
	MinorUpgrade UpgradeType = "minor_upgrade"
	PatchUpgrade UpgradeType = "patch_upgrade"
	Unknown      UpgradeType = "unknown"
)

// Effort is a coarse estimate of migration work.
type Effort string

const (
	EffortLow        Effort = "low"
	EffortMedium     Effort = "medium"
	EffortMediumHigh Effort = "medium_high"
	EffortHigh       Effort = "high"
	EffortVeryHigh   Effort = "very_high"
)

// Info holds curated facts about one version transition.
type Info struct {
	BreakingChanges []string `json:"breaking_changes"`
	NewFeatures     []string `json:"new_features"`
	Deprecations    []string `json:"deprecations"`
}

// Guide is the generated migration guide.
type Guide struct {
	Component       string        `json:"component"`
	FromVersion     string        `json:"from_version"`
	ToVersion       string        `json:"to_version"`
	Delta           version.Delta `json:"version_delta"`
	UpgradeType     UpgradeType   `json:"upgrade_type"`
	EstimatedEffort Effort        `json:"estimated_effort"`
	BreakingChanges []string      `json:"breaking_changes"`
	NewFeatures     []string      `json:"new_features"`
	Deprecations    []string      `json:"deprecations"`
	Suggestions     []string      `json:"suggestions"`
}

// Section is a titled list used for presentation.
type Section struct {
	Title string
	Items []string
}

// Sections returns the non-empty lists of the guide in reading order.
func (g Guide) Sections() []Section {
	var out []Section
	for _, s := range []Section{
		{"Breaking changes", g.BreakingChanges},
		{"New features", g.NewFeatures},
		{"Deprecations", g.Deprecations},
		{"Suggestions", g.Suggestions},
	} {
		if len(s.Items) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Generator stores curated migration facts and builds guides.
//
// The zero value is not usable - use [New]. A Generator is not safe for
// concurrent registration.
type Generator struct {
	known  map[string]map[string]Info // component -> "from_to_to" -> info
	logger *log.Logger
}

// Option configures a [Generator].
type Option func(*Generator)

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// New returns a generator without curated facts.
func New(opts ...Option) *Generator {
	g := &Generator{
		known:  make(map[string]map[string]Info),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Key returns the lookup key for a transition, "{from}_to_{to}".
func Key(from, to string) string { return from + "_to_" + to }

// Register stores curated facts for component moving from -> to,
// replacing any facts registered for the same transition.
func (g *Generator) Register(component, from, to string, info Info) {
	transitions, ok := g.known[component]
	if !ok {
		transitions = make(map[string]Info)
		g.known[component] = transitions
	}
	transitions[Key(from, to)] = info.clone()
	g.logger.Debug("registered migration info", "component", component, "from", from, "to", to,
		"breaking", len(info.BreakingChanges))
}

// Lookup returns a copy of the curated facts for an exact transition.
func (g *Generator) Lookup(component, from, to string) (Info, bool) {
	info, ok := g.known[component][Key(from, to)]
	return info.clone(), ok
}

func (i Info) clone() Info {
	return Info{
		BreakingChanges: slices.Clone(i.BreakingChanges),
		NewFeatures:     slices.Clone(i.NewFeatures),
		Deprecations:    slices.Clone(i.Deprecations),
	}
}

// Guide builds the migration guide for component moving from -> to.
func (g *Generator) Guide(component, from, to string) Guide {
	delta := version.CalculateDelta(from, to)
	info, known := g.Lookup(component, from, to)
	kind := Classify(delta)

	guide := Guide{
		Component:       component,
		FromVersion:     from,
		ToVersion:       to,
		Delta:           delta,
		UpgradeType:     kind,
		EstimatedEffort: estimateEffort(delta, info, known),
		BreakingChanges: nonNil(info.BreakingChanges),
		NewFeatures:     nonNil(info.NewFeatures),
		Deprecations:    nonNil(info.Deprecations),
		Suggestions:     suggestions(component, kind, info),
	}
	g.logger.Debug("generated migration guide", "component", component, "type", kind, "effort", guide.EstimatedEffort)
	return guide
}

// Classify maps a delta to an [UpgradeType]. A delta flagged as an upgrade
// with no positive field is reported as [Unknown].
func Classify(d version.Delta) UpgradeType {
	if !d.IsUpgrade {
		if d.IsSame {
			return NoChange
		}
		return Downgrade
	}
	switch {
	case d.Major > 0:
		return MajorUpgrade
	case d.Minor > 0:
		return MinorUpgrade
	case d.Patch > 0:
		return PatchUpgrade
	}
	return Unknown
}

// estimateEffort uses the breaking-change count when curated facts exist
// and the raw delta magnitude otherwise.
func estimateEffort(d version.Delta, info Info, known bool) Effort {
	if known {
		switch n := len(info.BreakingChanges); {
		case n > 5:
			return EffortHigh
		case n > 0:
			return EffortMedium
		}
		return EffortLow
	}

	switch {
	case d.Major > 1:
		return EffortVeryHigh
	case d.Major == 1:
		return EffortHigh
	case d.Minor > 5:
		return EffortMediumHigh
	case d.Minor > 0:
		return EffortMedium
	}
	return EffortLow
}

func suggestions(component string, kind UpgradeType, info Info) []string {
	out := []string{}

	switch name := strings.ToLower(component); {
	case strings.HasPrefix(name, "api"):
		out = append(out, "Check for API endpoint changes in "+component)
	case strings.HasPrefix(name, "ui"):
		out = append(out, "Review UI component changes in "+component)
	case strings.HasPrefix(name, "core"):
		out = append(out, "Test core functionality affected by "+component+" changes")
	}

	switch kind {
	case MajorUpgrade:
		out = append(out,
			"Review all APIs for breaking changes",
			"Update tests to account for new behaviors",
			"Consider a phased migration approach",
		)
	case MinorUpgrade:
		out = append(out,
			"Check documentation for new features",
			"Look for deprecated features you might be using",
		)
	case PatchUpgrade:
		out = append(out, "Review bug fixes to see if they impact your usage")
	}

	if len(info.BreakingChanges) > 0 {
		out = append(out, "Address all breaking changes listed above")
	}
	return out
}

// nonNil returns a copy of s, empty rather than nil.
func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return slices.Clone(s)
}
