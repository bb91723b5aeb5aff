package validator

import (
	"fmt"

	"github.com/matzehuels/versionforge/pkg/component"
	"github.com/matzehuels/versionforge/pkg/version"
)

// IssueKind classifies a validation problem.
type IssueKind string

const (
	// UnregisteredDependent: a component with declared dependencies is not
	// registered itself. Its edges are not checked.
	UnregisteredDependent IssueKind = "unregistered_dependent"
	// UnregisteredDependency: a declared dependency is not registered.
	UnregisteredDependency IssueKind = "unregistered_dependency"
	// IncompatibleVersion: a dependency's version is below the dependent's
	// effective minimum.
	IncompatibleVersion IssueKind = "incompatible_version"
)

// Issue is a single problem found by [Validator.Validate].
type Issue struct {
	Kind              IssueKind `json:"kind"`
	Dependent         string    `json:"dependent"`
	Dependency        string    `json:"dependency,omitempty"`
	DependentVersion  string    `json:"dependent_version,omitempty"`
	DependencyVersion string    `json:"dependency_version,omitempty"`
	Required          string    `json:"required,omitempty"`
}

// Message renders the issue as a sentence naming every involved component.
func (i Issue) Message() string {
	switch i.Kind {
	case UnregisteredDependent:
		return fmt.Sprintf("Component '%s' is not registered but has dependencies", i.Dependent)
	case UnregisteredDependency:
		return fmt.Sprintf("Dependency '%s' is not registered but is required by '%s'", i.Dependency, i.Dependent)
	case IncompatibleVersion:
		return fmt.Sprintf("Component '%s' v%s is incompatible with its dependency '%s' v%s (requires ≥ %s)",
			i.Dependent, i.DependentVersion, i.Dependency, i.DependencyVersion, i.Required)
	}
	return fmt.Sprintf("unknown issue %q for '%s'", i.Kind, i.Dependent)
}

// Suggestion returns a fix hint for incompatible versions, or "" for
// issues that have no mechanical fix.
func (i Issue) Suggestion() string {
	if i.Kind != IncompatibleVersion {
		return ""
	}
	return fmt.Sprintf("upgrade '%s' to at least %s", i.Dependency, i.Required)
}

// Result is the outcome of a validation pass.
type Result struct {
	Valid  bool    `json:"valid"`
	Issues []Issue `json:"issues"`
}

// Errors returns the issue messages in discovery order.
func (r Result) Errors() []string {
	msgs := make([]string, len(r.Issues))
	for i, issue := range r.Issues {
		msgs[i] = issue.Message()
	}
	return msgs
}

// Validate checks every dependency edge against the current registrations.
//
// Dependents are visited in the order their first edge was registered and
// their dependencies in edge order. An unregistered dependent produces one
// issue and its edges are skipped; an unregistered dependency produces one
// issue and the walk continues. An empty graph is valid. The verdict is
// recomputed on every call.
func (v *Validator) Validate() Result {
	res := Result{Valid: true, Issues: []Issue{}}
	if len(v.components) == 0 || len(v.deps) == 0 {
		return res
	}

	for _, dependent := range v.dependents {
		dc, ok := v.components[dependent]
		if !ok {
			res.Issues = append(res.Issues, Issue{Kind: UnregisteredDependent, Dependent: dependent})
			continue
		}
		minimum := component.MinimumOf(dc)

		for _, dependency := range v.deps[dependent] {
			tc, ok := v.components[dependency]
			if !ok {
				res.Issues = append(res.Issues, Issue{
					Kind:       UnregisteredDependency,
					Dependent:  dependent,
					Dependency: dependency,
				})
				continue
			}
			if !version.Satisfies(tc.Version(), minimum) {
				res.Issues = append(res.Issues, Issue{
					Kind:              IncompatibleVersion,
					Dependent:         dependent,
					Dependency:        dependency,
					DependentVersion:  dc.Version().String(),
					DependencyVersion: tc.Version().String(),
					Required:          minimum.String(),
				})
			}
		}
	}

	res.Valid = len(res.Issues) == 0
	v.logger.Debug("validated dependency graph", "valid", res.Valid, "issues", len(res.Issues))
	return res
}

// Suggestions returns one fix hint per incompatible edge, in validation
// order.
func (v *Validator) Suggestions() []string {
	var out []string
	for _, issue := range v.Validate().Issues {
		if s := issue.Suggestion(); s != "" {
			out = append(out, s)
		}
	}
	return out
}
