package nodelink

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/versionforge/pkg/compat"
	"github.com/matzehuels/versionforge/pkg/component"
	"github.com/matzehuels/versionforge/pkg/dag"
	"github.com/matzehuels/versionforge/pkg/validator"
	"github.com/matzehuels/versionforge/pkg/version"
)

func sampleGraph() *dag.DAG {
	v := validator.New()
	v.RegisterComponent("app", component.New("2.0.0"))
	lib := component.New("1.4.0")
	lib.MinimumVersion = "1.0.0"
	v.RegisterComponent("lib", lib)
	v.RegisterDependency("app", "lib")
	v.RegisterDependency("app", "ghost")
	return v.Graph()
}

func TestGraphDOT(t *testing.T) {
	dot := GraphDOT(sampleGraph(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"app" [label="app\nv2.0.0"]`,
		`"app" -> "lib";`,
		`"app" -> "ghost";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if !strings.Contains(dot, `"ghost" [label="ghost", style="rounded,filled,dashed"`) {
		t.Errorf("unregistered node should be dashed:\n%s", dot)
	}
	if strings.Contains(dot, "min ") {
		t.Errorf("non-detailed DOT should not show minimums:\n%s", dot)
	}
}

func TestGraphDOTOptions(t *testing.T) {
	dot := GraphDOT(sampleGraph(), Options{Detailed: true, Highlight: []string{"lib", "ghost"}})

	if !strings.Contains(dot, `label="lib\nv1.4.0\nmin 1.0.0", fillcolor=lightblue`) {
		t.Errorf("detailed highlighted label missing:\n%s", dot)
	}
	if strings.Contains(dot, `"ghost" [label="ghost", fillcolor=lightblue`) {
		t.Errorf("unregistered style should win over highlight:\n%s", dot)
	}
}

func TestMatrixDOT(t *testing.T) {
	m := compat.New()
	m.RegisterComponent("api", component.Fixed(version.MustParse("1.0.0")))
	m.RegisterCompatibility("api", "1.0.0", "web", "2.0.0")
	m.RegisterCompatibility("api", "1.1.0", "web", "2.0.0")
	m.RegisterComponent("cli", component.Fixed(version.MustParse("0.1.0")))

	dot := MatrixDOT(m)
	for _, want := range []string{
		"graph M {",
		`"api" -- "web" [label="2"];`,
		`"cli" [label="cli\n0.1.0"];`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, `"web" -- "api"`) {
		t.Errorf("pair drawn twice:\n%s", dot)
	}
	if strings.Contains(dot, `"cli" --`) {
		t.Errorf("unpaired component has an edge:\n%s", dot)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	if !bytes.Contains(out, []byte(`viewBox="0 0 100.00 50.00" width="100" height="50"`)) {
		t.Errorf("normalizeViewBox = %s", out)
	}

	plain := []byte(`<svg><g/></svg>`)
	if got := normalizeViewBox(plain); !bytes.Equal(got, plain) {
		t.Errorf("input without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	if testing.Short() {
		t.Skip("graphviz rendering in short mode")
	}
	svg, err := RenderSVG(context.Background(), GraphDOT(sampleGraph(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}
