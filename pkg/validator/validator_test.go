package validator

import (
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/versionforge/pkg/component"
	"github.com/matzehuels/versionforge/pkg/dag"
	"github.com/matzehuels/versionforge/pkg/errors"
)

func info(current, minimum string) component.Info {
	return component.Info{CurrentVersion: current, MinimumVersion: minimum}
}

func TestValidateEmpty(t *testing.T) {
	tests := []struct {
		name  string
		setup func(v *Validator)
	}{
		{"nothing registered", func(*Validator) {}},
		{"components without edges", func(v *Validator) {
			v.RegisterComponent("a", component.New("1.0.0"))
		}},
		{"edges without components", func(v *Validator) {
			v.RegisterDependency("a", "b")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			tt.setup(v)
			res := v.Validate()
			if !res.Valid || len(res.Issues) != 0 {
				t.Errorf("Validate() = %+v, want vacuously valid", res)
			}
		})
	}
}

func TestValidateMinVersion(t *testing.T) {
	v := New()
	v.RegisterComponent("X", info("1.0.0", "2.0.0"))
	v.RegisterComponent("Y", component.New("2.0.0"))
	v.RegisterDependency("X", "Y")

	if res := v.Validate(); !res.Valid {
		t.Fatalf("Validate() = %v, want valid", res.Errors())
	}

	v.RegisterComponent("X", info("1.0.0", "3.0.0"))
	res := v.Validate()
	if res.Valid {
		t.Fatal("Validate() valid after raising X's minimum")
	}
	errs := res.Errors()
	if len(errs) != 1 {
		t.Fatalf("Errors() = %v, want exactly one", errs)
	}
	for _, want := range []string{"'X'", "'Y'", "3.0.0"} {
		if !strings.Contains(errs[0], want) {
			t.Errorf("error %q does not mention %s", errs[0], want)
		}
	}
	want := "Component 'X' v1.0.0 is incompatible with its dependency 'Y' v2.0.0 (requires ≥ 3.0.0)"
	if errs[0] != want {
		t.Errorf("error = %q, want %q", errs[0], want)
	}
}

// The dependent's effective minimum is the bar its dependency must clear,
// not the other way around.
func TestValidateCheckDirection(t *testing.T) {
	v := New()
	v.RegisterComponent("app", info("5.0.0", "1.2.0"))
	v.RegisterComponent("lib", info("1.1.0", "9.0.0"))
	v.RegisterDependency("app", "lib")

	res := v.Validate()
	if len(res.Issues) != 1 || res.Issues[0].Required != "1.2.0" {
		t.Fatalf("Issues = %+v, want lib below app's minimum 1.2.0", res.Issues)
	}
	if res.Issues[0].Suggestion() != "upgrade 'lib' to at least 1.2.0" {
		t.Errorf("Suggestion() = %q", res.Issues[0].Suggestion())
	}
}

func TestValidateMinimumFallback(t *testing.T) {
	tests := []struct {
		name      string
		dependent component.Component
		wantValid bool
	}{
		{"explicit", info("1.0.0", "0.2.0"), true},
		{"metadata", component.Info{
			CurrentVersion: "1.0.0",
			Attributes:     map[string]string{component.MinVersionKey: "0.3.0"},
		}, false},
		{"default 0.1.0 satisfied", component.New("1.0.0"), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New()
			v.RegisterComponent("app", tt.dependent)
			v.RegisterComponent("lib", component.New("0.2.0"))
			v.RegisterDependency("app", "lib")
			if got := v.Validate().Valid; got != tt.wantValid {
				t.Errorf("Valid = %v, want %v", got, tt.wantValid)
			}
		})
	}

	v := New()
	v.RegisterComponent("app", component.New("1.0.0"))
	v.RegisterComponent("lib", component.New("0.0.9"))
	v.RegisterDependency("app", "lib")
	if res := v.Validate(); res.Valid || res.Issues[0].Required != "0.1.0" {
		t.Errorf("Validate() = %+v, want failure against default 0.1.0", res)
	}
}

func TestValidateCollectsAllIssuesInOrder(t *testing.T) {
	v := New()
	v.RegisterComponent("b", info("1.0.0", "2.0.0"))
	v.RegisterComponent("c", component.New("1.0.0"))
	v.RegisterComponent("d", component.New("1.5.0"))

	v.RegisterDependency("ghost", "c")
	v.RegisterDependency("b", "missing")
	v.RegisterDependency("b", "c")
	v.RegisterDependency("b", "d")
	v.RegisterDependency("b", "c")

	res := v.Validate()
	kinds := make([]IssueKind, len(res.Issues))
	for i, issue := range res.Issues {
		kinds[i] = issue.Kind
	}
	want := []IssueKind{UnregisteredDependent, UnregisteredDependency, IncompatibleVersion, IncompatibleVersion}
	if !slices.Equal(kinds, want) {
		t.Errorf("issue kinds = %v, want %v", kinds, want)
	}
	if res.Issues[2].Dependency != "c" || res.Issues[3].Dependency != "d" {
		t.Errorf("incompatible issues out of edge order: %+v", res.Issues[2:])
	}
	if got := v.Suggestions(); !slices.Equal(got, []string{
		"upgrade 'c' to at least 2.0.0",
		"upgrade 'd' to at least 2.0.0",
	}) {
		t.Errorf("Suggestions() = %v", got)
	}
}

func TestValidateInvalidVersionsFailClosed(t *testing.T) {
	v := New()
	v.RegisterComponent("app", info("1.0.0", "not-a-version"))
	v.RegisterComponent("lib", component.New("3.0.0"))
	v.RegisterDependency("app", "lib")

	if v.Validate().Valid {
		t.Error("Validate() valid with unparsable minimum")
	}
}

func TestUpgradePlanOrder(t *testing.T) {
	v := New()
	v.RegisterComponent("A", component.New("1.0.0"))
	v.RegisterComponent("B", component.New("1.0.0"))
	v.RegisterComponent("C", component.New("1.0.0"))
	v.RegisterDependency("A", "B")

	plan, err := v.UpgradePlan(map[string]string{"A": "2.0", "B": "1.5", "C": "1.0"})
	if err != nil {
		t.Fatalf("UpgradePlan: %v", err)
	}
	if len(plan) != 3 {
		t.Fatalf("plan = %v, want 3 steps", plan)
	}
	pos := map[string]int{}
	for i, s := range plan {
		pos[s.Component] = i
	}
	if pos["B"] > pos["A"] {
		t.Errorf("plan %v places A before B", plan)
	}
	if _, ok := pos["C"]; !ok {
		t.Errorf("plan %v lacks C", plan)
	}
	if plan.Versions()["A"] != "2.0" {
		t.Errorf("plan version for A = %q", plan.Versions()["A"])
	}
}

func TestUpgradePlanFiltersTargets(t *testing.T) {
	v := New()
	v.RegisterComponent("ui", component.New("1.0.0"))
	v.RegisterComponent("api", component.New("1.0.0"))
	v.RegisterComponent("core", component.New("1.0.0"))
	v.RegisterDependency("ui", "api")
	v.RegisterDependency("api", "core")

	plan, err := v.UpgradePlan(map[string]string{"ui": "2.0.0", "core": "1.1.0", "nowhere": "9.9.9"})
	if err != nil {
		t.Fatalf("UpgradePlan: %v", err)
	}
	if got := plan.String(); got != "core@1.1.0 -> ui@2.0.0" {
		t.Errorf("plan = %s", got)
	}
}

func TestUpgradePlanWithoutDependencies(t *testing.T) {
	v := New()
	v.RegisterComponent("solo", component.New("1.0.0"))

	plan, err := v.UpgradePlan(map[string]string{"solo": "1.1.0"})
	if err != nil {
		t.Fatalf("UpgradePlan: %v", err)
	}
	if len(plan) != 1 || plan[0].Component != "solo" {
		t.Errorf("plan = %v, want [solo@1.1.0]", plan)
	}
}

func TestUpgradePlanCycle(t *testing.T) {
	v := New()
	for _, n := range []string{"A", "B", "C"} {
		v.RegisterComponent(n, component.New("1.0.0"))
	}
	v.RegisterDependency("A", "B")
	v.RegisterDependency("B", "C")
	v.RegisterDependency("C", "A")

	for _, targets := range []map[string]string{
		{"A": "2.0.0"},
		{"C": "2.0.0"},
		{"A": "2.0.0", "B": "2.0.0", "C": "2.0.0"},
	} {
		plan, err := v.UpgradePlan(targets)
		if plan != nil {
			t.Errorf("UpgradePlan(%v) returned partial plan %v", targets, plan)
		}
		if !errors.Is(err, errors.ErrCodeCircularDependency) {
			t.Fatalf("UpgradePlan(%v) error = %v, want CIRCULAR_DEPENDENCY", targets, err)
		}
		var ce *dag.CycleError
		if !errors.As(err, &ce) || ce.Node != "A" {
			t.Errorf("cycle node = %v, want A", ce)
		}
	}

	if err := v.DetectCycle(); !errors.Is(err, errors.ErrCodeCircularDependency) {
		t.Errorf("DetectCycle() = %v", err)
	}
}

func TestFindCompatibleVersion(t *testing.T) {
	v := New()
	v.RegisterComponent("app", info("1.0.0", "2.0.0"))
	v.RegisterComponent("new-lib", component.New("2.1.0"))
	v.RegisterComponent("old-lib", component.New("1.9.0"))

	if got, ok := v.FindCompatibleVersion("app", "new-lib"); !ok || got != "2.1.0" {
		t.Errorf("FindCompatibleVersion(app, new-lib) = %q, %v", got, ok)
	}
	if _, ok := v.FindCompatibleVersion("app", "old-lib"); ok {
		t.Error("FindCompatibleVersion(app, old-lib) found a version")
	}
	if _, ok := v.FindCompatibleVersion("app", "ghost"); ok {
		t.Error("FindCompatibleVersion(app, ghost) found a version")
	}
	if _, ok := v.FindCompatibleVersion("ghost", "new-lib"); ok {
		t.Error("FindCompatibleVersion(ghost, new-lib) found a version")
	}
}

func TestGraph(t *testing.T) {
	v := New()
	v.RegisterComponent("app", component.New("1.0.0"))
	v.RegisterComponent("tool", component.New("0.1.0"))
	v.RegisterDependency("app", "lib")

	g := v.Graph()
	if got := g.NodeIDs(); !slices.Equal(got, []string{"app", "lib", "tool"}) {
		t.Errorf("NodeIDs = %v", got)
	}
	lib, _ := g.Node("lib")
	if lib.Meta["registered"] != false {
		t.Errorf("lib registered = %v, want false", lib.Meta["registered"])
	}
	app, _ := g.Node("app")
	if app.Meta["version"] != "1.0.0" {
		t.Errorf("app version = %v", app.Meta["version"])
	}

	if got := v.Dependents("lib"); !slices.Equal(got, []string{"app"}) {
		t.Errorf("Dependents(lib) = %v", got)
	}
	if got := v.Dependencies("app"); !slices.Equal(got, []string{"lib"}) {
		t.Errorf("Dependencies(app) = %v", got)
	}
	if got := v.EffectiveMinVersion("ghost").String(); got != "0.1.0" {
		t.Errorf("EffectiveMinVersion(ghost) = %s", got)
	}
}

func TestSuggestions(t *testing.T) {
	v := New()
	v.RegisterComponent("api", info("2.0.0", "1.5.0"))
	v.RegisterComponent("core", component.New("1.2.0"))
	v.RegisterComponent("db", component.New("1.9.0"))
	v.RegisterDependency("api", "core")
	v.RegisterDependency("api", "db")
	v.RegisterDependency("api", "cache")

	got := v.Suggestions()
	want := []string{"upgrade 'core' to at least 1.5.0"}
	if !slices.Equal(got, want) {
		t.Errorf("Suggestions() = %q, want %q", got, want)
	}
}

func TestDependents(t *testing.T) {
	v := New()
	v.RegisterDependency("ui", "core")
	v.RegisterDependency("api", "core")
	v.RegisterDependency("ui", "api")
	v.RegisterDependency("ui", "core")

	if got := v.Dependents("core"); !slices.Equal(got, []string{"ui", "api"}) {
		t.Errorf("Dependents(core) = %v", got)
	}
	if got := v.Dependencies("ui"); !slices.Equal(got, []string{"core", "api"}) {
		t.Errorf("Dependencies(ui) = %v, want duplicates ignored", got)
	}
	if err := v.DetectCycle(); err != nil {
		t.Errorf("DetectCycle() = %v, want nil", err)
	}
}

func TestUpgradePlanEmptyName(t *testing.T) {
	v := New()
	v.RegisterComponent("A", component.New("1.0.0"))
	v.RegisterDependency("A", "")
	v.RegisterDependency("", "A")

	plan, err := v.UpgradePlan(map[string]string{"A": "2.0.0"})
	if plan != nil {
		t.Errorf("UpgradePlan returned plan %v for a graph with an empty name", plan)
	}
	if !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("UpgradePlan error = %v, want INVALID_NAME", err)
	}
	if err := v.DetectCycle(); !errors.Is(err, errors.ErrCodeInvalidName) {
		t.Errorf("DetectCycle() = %v, want INVALID_NAME", err)
	}
	if g := v.Graph(); g.HasNode("") || !g.HasNode("A") {
		t.Errorf("Graph() nodes = %v", g.NodeIDs())
	}
}
