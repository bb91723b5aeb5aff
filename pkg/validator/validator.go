package validator

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/versionforge/pkg/component"
	"github.com/matzehuels/versionforge/pkg/dag"
	"github.com/matzehuels/versionforge/pkg/errors"
	"github.com/matzehuels/versionforge/pkg/version"
)

// Validator holds registered components and dependency edges.
//
// The zero value is not usable - use [New].
type Validator struct {
	components map[string]component.Component
	order      []string            // registration order of component names
	deps       map[string][]string // dependent -> dependencies, deduplicated
	dependents []string            // dependents in first-edge order
	logger     *log.Logger
}

// Option configures a [Validator].
type Option func(*Validator)

// WithLogger sets the logger used for registration diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(v *Validator) {
		if l != nil {
			v.logger = l
		}
	}
}

// New returns an empty validator.
func New(opts ...Option) *Validator {
	v := &Validator{
		components: make(map[string]component.Component),
		deps:       make(map[string][]string),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// RegisterComponent adds or replaces the component registered as name.
func (v *Validator) RegisterComponent(name string, c component.Component) {
	if _, ok := v.components[name]; !ok {
		v.order = append(v.order, name)
	}
	v.components[name] = c
	v.logger.Debug("registered component", "name", name, "version", c.Version())
}

// RegisterDependency records that dependent depends on dependency.
// Repeated edges are ignored.
func (v *Validator) RegisterDependency(dependent, dependency string) {
	existing, ok := v.deps[dependent]
	if !ok {
		v.dependents = append(v.dependents, dependent)
	}
	if !slices.Contains(existing, dependency) {
		v.deps[dependent] = append(existing, dependency)
	}
	v.logger.Debug("registered dependency", "dependent", dependent, "dependency", dependency)
}

// Component returns the component registered as name.
func (v *Validator) Component(name string) (component.Component, bool) {
	c, ok := v.components[name]
	return c, ok
}

// Components returns registered component names in registration order.
func (v *Validator) Components() []string { return slices.Clone(v.order) }

// Dependencies returns the declared dependencies of name in edge order.
func (v *Validator) Dependencies(name string) []string { return slices.Clone(v.deps[name]) }

// Dependents returns the components that declare a dependency on name.
func (v *Validator) Dependents(name string) []string {
	var out []string
	for _, d := range v.dependents {
		if slices.Contains(v.deps[d], name) {
			out = append(out, d)
		}
	}
	return out
}

// EffectiveMinVersion resolves the minimum version requirement of name
// using [component.MinimumOf]. Unregistered names get the default.
func (v *Validator) EffectiveMinVersion(name string) version.Version {
	return component.MinimumOf(v.components[name])
}

// FindCompatibleVersion returns the current version of dependency when it
// satisfies the effective minimum of name. It does not search for other
// versions: the answer is the current version or nothing.
func (v *Validator) FindCompatibleVersion(name, dependency string) (string, bool) {
	c, ok := v.components[name]
	if !ok {
		return "", false
	}
	d, ok := v.components[dependency]
	if !ok {
		return "", false
	}
	if !version.Satisfies(d.Version(), component.MinimumOf(c)) {
		return "", false
	}
	return d.Version().String(), true
}

// Graph builds a fresh [dag.DAG] of the current state. Every registered
// component is a node, with "version" and "registered" metadata; edge
// targets that are not registered appear as nodes with registered=false.
// Components and edges with an empty name cannot be represented and are
// left out; [Validator.UpgradePlan] and [Validator.DetectCycle] reject
// such graphs instead.
func (v *Validator) Graph() *dag.DAG {
	g, err := v.graph()
	if err != nil {
		v.logger.Warn("dependency graph is incomplete", "err", err)
	}
	return g
}

// graph builds the DAG and reports the first name it could not add.
func (v *Validator) graph() (*dag.DAG, error) {
	g := dag.New(nil)
	var first error
	keep := func(err error, what string) {
		if err != nil && first == nil {
			first = errors.Wrap(errors.ErrCodeInvalidName, err, "%s", what)
		}
	}
	for _, d := range v.dependents {
		keep(g.AddNode(v.node(d)), "dependent with empty name")
		for _, dep := range v.deps[d] {
			keep(g.AddNode(v.node(dep)), fmt.Sprintf("dependency of %q with empty name", d))
			keep(g.AddEdge(d, dep), fmt.Sprintf("edge %q -> %q", d, dep))
		}
	}
	for _, name := range v.order {
		keep(g.AddNode(v.node(name)), "component with empty name")
	}
	return g, first
}

func (v *Validator) node(name string) dag.Node {
	c, ok := v.components[name]
	meta := dag.Metadata{"registered": ok}
	if ok {
		meta["version"] = c.Version().String()
		meta["min_version"] = component.MinimumOf(c).String()
	}
	return dag.Node{ID: name, Meta: meta}
}

// DetectCycle returns a CIRCULAR_DEPENDENCY error if the graph contains a
// cycle, an INVALID_NAME error if a component or edge has an empty name,
// nil otherwise.
func (v *Validator) DetectCycle() error {
	g, err := v.graph()
	if err != nil {
		return err
	}
	if err := g.Validate(); err != nil {
		return cycleError(err)
	}
	return nil
}

func cycleError(err error) error {
	var ce *dag.CycleError
	if errors.As(err, &ce) {
		return errors.Wrap(errors.ErrCodeCircularDependency, ce, "cannot order upgrades")
	}
	return errors.Wrap(errors.ErrCodeInternal, err, "cannot order upgrades")
}

// Step is one entry in an upgrade plan.
type Step struct {
	Component string `json:"component"`
	Version   string `json:"version"`
}

// Plan is an ordered upgrade plan: dependencies before their dependents.
type Plan []Step

// Versions returns the plan as a name -> version map.
func (p Plan) Versions() map[string]string {
	m := make(map[string]string, len(p))
	for _, s := range p {
		m[s.Component] = s.Version
	}
	return m
}

// String renders the plan as "a@1.0.0 -> b@2.0.0".
func (p Plan) String() string {
	s := ""
	for i, step := range p {
		if i > 0 {
			s += " -> "
		}
		s += fmt.Sprintf("%s@%s", step.Component, step.Version)
	}
	return s
}

// UpgradePlan orders targets so that every dependency comes before the
// components depending on it. Targets naming components that appear
// nowhere in the graph are dropped.
//
// The whole graph is sorted, not just the targets, so a cycle anywhere
// fails the call with a CIRCULAR_DEPENDENCY error wrapping the
// [*dag.CycleError]. A graph with an empty component name fails with
// INVALID_NAME, since edges through it could hide a cycle.
func (v *Validator) UpgradePlan(targets map[string]string) (Plan, error) {
	g, err := v.graph()
	if err != nil {
		v.logger.Warn("upgrade planning aborted", "err", err)
		return nil, err
	}
	order, err := g.TopoSort()
	if err != nil {
		v.logger.Warn("upgrade planning aborted", "err", err)
		return nil, cycleError(err)
	}

	plan := make(Plan, 0, len(targets))
	for _, name := range order {
		if target, ok := targets[name]; ok {
			plan = append(plan, Step{Component: name, Version: target})
		}
	}
	return plan, nil
}
