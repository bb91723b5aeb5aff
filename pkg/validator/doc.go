// Package validator owns the component dependency graph and answers two
// questions about it: is it consistent, and in what order should upgrades
// be applied.
//
// Components are registered by name together with a [component.Component]
// that supplies their version and minimum-version requirement. Dependency
// edges point from a dependent to its dependency and may name components
// that are not (yet) registered; such references are reported by
// [Validator.Validate] rather than rejected at insertion time.
//
// # Validation
//
// [Validator.Validate] walks dependents in the order their first edge was
// registered, and their dependencies in edge order. Every problem found is
// collected into the [Result]; validation never stops early. For each
// edge the check is
//
//	version.Satisfies(dependency.Version(), component.MinimumOf(dependent))
//
// that is, a dependent's effective minimum version is the bar every one of
// its dependencies must clear.
//
// # Upgrade Plans
//
// [Validator.UpgradePlan] topologically sorts the graph dependencies-first
// and keeps only the requested targets. A cycle anywhere in the graph
// aborts planning with an error coded CIRCULAR_DEPENDENCY; no partial plan
// is ever returned.
//
// Validators are not safe for concurrent mutation. Queries only read.
//
// [component.Component]: github.com/matzehuels/versionforge/pkg/component#Component
package validator
