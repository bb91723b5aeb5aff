package version

import "testing"

func TestCalculateDelta(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     Delta
	}{
		{
			name: "minor and patch upgrade",
			from: "1.0.0", to: "1.2.3",
			want: Delta{Major: 0, Minor: 2, Patch: 3, IsUpgrade: true},
		},
		{
			name: "major downgrade",
			from: "3.1.0", to: "1.4.0",
			want: Delta{Major: -2, Minor: 3, Patch: 0, IsDowngrade: true},
		},
		{
			name: "identical",
			from: "v2.2.2", to: "2.2.2",
			want: Delta{IsSame: true},
		},
		{
			name: "prerelease to release",
			from: "1.0.0-rc1", to: "1.0.0",
			want: Delta{IsUpgrade: true},
		},
		{
			name: "invalid from",
			from: "nope", to: "1.0.0",
			want: Delta{},
		},
		{
			name: "invalid to",
			from: "1.0.0", to: "1.0",
			want: Delta{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateDelta(tt.from, tt.to)
			if got != tt.want {
				t.Errorf("CalculateDelta(%q, %q) = %+v, want %+v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDeltaExactlyOneFlag(t *testing.T) {
	pairs := [][2]string{
		{"1.0.0", "1.0.0"}, {"1.0.0", "1.0.1"}, {"2.0.0", "1.9.9"},
		{"1.0.0-a", "1.0.0-b"}, {"1.0.0", "1.0.0-a"},
	}
	for _, p := range pairs {
		d := CalculateDelta(p[0], p[1])
		n := 0
		for _, f := range []bool{d.IsUpgrade, d.IsDowngrade, d.IsSame} {
			if f {
				n++
			}
		}
		if n != 1 {
			t.Errorf("CalculateDelta(%q, %q) has %d flags set, want exactly 1", p[0], p[1], n)
		}
		if !d.Known() {
			t.Errorf("CalculateDelta(%q, %q).Known() = false", p[0], p[1])
		}
	}
	if CalculateDelta("x", "1.0.0").Known() {
		t.Error("delta with invalid input should not be known")
	}
}

func TestDeltaDescribe(t *testing.T) {
	tests := []struct {
		delta Delta
		want  string
	}{
		{Delta{Major: 1, Minor: -2}, "+1 major, -2 minor"},
		{Delta{Patch: 3}, "+3 patch"},
		{Delta{}, "no version difference"},
	}
	for _, tt := range tests {
		if got := tt.delta.Describe(); got != tt.want {
			t.Errorf("Describe() = %q, want %q", got, tt.want)
		}
	}
}

func TestIsCompatible(t *testing.T) {
	tests := []struct {
		version, minimum string
		want             bool
	}{
		{"2.0.0", "1.0.0", true},
		{"1.0.0", "2.0.0", false},
		{"1.0.0-beta", "1.0.0", false},
		{"1.0.0", "1.0.0-beta", true},
		{"0.1.0", "", true},
		{"0.0.9", "", false},
		{"garbage", "1.0.0", false},
		{"1.0.0", "garbage", false},
		{"1.0", "1.0", false},
		{"99999999999999999999.0.0", "1.0.0", false},
	}
	for _, tt := range tests {
		if got := IsCompatible(tt.version, tt.minimum); got != tt.want {
			t.Errorf("IsCompatible(%q, %q) = %v, want %v", tt.version, tt.minimum, got, tt.want)
		}
	}
}

func TestIsCompatibleReflexive(t *testing.T) {
	for _, v := range []string{"0.0.0", "0.1.0", "1.0.0-alpha", "3.2.1", "v10.20.30-rc.1"} {
		if !IsCompatible(v, v) {
			t.Errorf("IsCompatible(%q, %q) = false, want true", v, v)
		}
	}
}
