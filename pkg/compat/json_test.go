package compat

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/versionforge/pkg/component"
)

func TestJSONRoundTripPreservesVerify(t *testing.T) {
	m := New()
	m.RegisterComponent("core", component.New("1.0.0"))
	m.RegisterCompatibility("core", "1.0.0", "api", "2.0.0")
	m.RegisterCompatibility("core", "1.1.0", "ui", "3.0.0-beta")
	m.RegisterCompatibility("api", "2.0.0", "ui", "3.0.0")

	data, err := m.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	restored := FromJSON(data)

	queries := [][4]string{
		{"core", "1.0.0", "api", "2.0.0"},
		{"api", "2.0.0", "core", "1.0.0"},
		{"core", "1.1.0", "ui", "3.0.0-beta"},
		{"ui", "3.0.0", "api", "2.0.0"},
		{"core", "1.0.0", "api", "2.5.0"},
		{"core", "1.0.0", "ui", "3.0.0"},
	}
	for _, q := range queries {
		want := m.Verify(q[0], q[1], q[2], q[3])
		if got := restored.Verify(q[0], q[1], q[2], q[3]); got != want {
			t.Errorf("Verify%v after round trip = %v, want %v", q, got, want)
		}
	}
	if got := restored.Versions("core"); len(got) != 1 || got[0] != "1.0.0" {
		t.Errorf("Versions(core) = %v", got)
	}
}

func TestJSONShape(t *testing.T) {
	m := New()
	m.RegisterCompatibility("a", "1.0", "b", "2.0")
	data, _ := m.ToJSON()

	var doc struct {
		Compatibility map[string]map[string][][]string `json:"compatibility"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got := doc.Compatibility["a"]["b"]; len(got) != 1 || got[0][0] != "1.0" || got[0][1] != "2.0" {
		t.Errorf("compatibility[a][b] = %v, want [[1.0 2.0]]", got)
	}
	if !strings.Contains(string(data), `"components"`) {
		t.Error(`output lacks "components" key`)
	}
}

func TestFromJSONResymmetrizes(t *testing.T) {
	input := `{
		"components": {"a": ["1.0"]},
		"compatibility": {"a": {"b": [["1.0", "2.0"]]}}
	}`
	m := FromJSON([]byte(input))
	if !m.Verify("b", "2.0", "a", "1.0") {
		t.Error("mirrored pair missing after import")
	}
}

func TestFromJSONMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not json", "{not json"},
		{"wrong shape", `{"components": ["a"]}`},
		{"short pair", `{"compatibility": {"a": {"b": [["1.0"]]}}}`},
		{"numeric pair", `{"compatibility": {"a": {"b": [[1, 2]]}}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			m := FromJSON([]byte(tt.input), WithLogger(log.New(&buf)))
			if len(m.Components()) != 0 {
				t.Errorf("Components() = %v, want empty matrix", m.Components())
			}
			if !strings.Contains(buf.String(), "failed to parse compatibility matrix") {
				t.Errorf("log output = %q, want parse error", buf.String())
			}
		})
	}
}
