package component

import (
	"testing"

	"github.com/matzehuels/versionforge/pkg/version"
)

func TestMinimumOf(t *testing.T) {
	tests := []struct {
		name string
		c    Component
		want string
	}{
		{"explicit", Info{CurrentVersion: "1.0.0", MinimumVersion: "2.0.0"}, "2.0.0"},
		{"explicit wins over metadata", Info{
			CurrentVersion: "1.0.0",
			MinimumVersion: "2.0.0",
			Attributes:     map[string]string{MinVersionKey: "3.0.0"},
		}, "2.0.0"},
		{"metadata", Info{
			CurrentVersion: "1.0.0",
			Attributes:     map[string]string{MinVersionKey: "1.5.0"},
		}, "1.5.0"},
		{"metadata without key", Info{
			CurrentVersion: "1.0.0",
			Attributes:     map[string]string{"owner": "platform"},
		}, version.DefaultMinVersion},
		{"default", New("1.0.0"), version.DefaultMinVersion},
		{"fixed", Fixed(version.MustParse("4.0.0")), version.DefaultMinVersion},
		{"nil", nil, version.DefaultMinVersion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MinimumOf(tt.c).String(); got != tt.want {
				t.Errorf("MinimumOf() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMinimumOfInvalidExplicit(t *testing.T) {
	c := Info{CurrentVersion: "1.0.0", MinimumVersion: "latest"}
	got := MinimumOf(c)
	if got.Valid() {
		t.Fatalf("MinimumOf() = %v, want invalid version", got)
	}
	if version.Satisfies(c.Version(), got) {
		t.Error("Satisfies against invalid minimum = true, want false")
	}
}

func TestInfoVersion(t *testing.T) {
	c := New("v2.3.4")
	if got := c.Version().String(); got != "2.3.4" {
		t.Errorf("Version() = %q, want %q", got, "2.3.4")
	}
	if _, ok := c.MinVersion(); ok {
		t.Error("MinVersion() declared = true, want false")
	}
}
