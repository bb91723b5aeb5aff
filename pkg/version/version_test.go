package version

import (
	"slices"
	"testing"

	"github.com/matzehuels/versionforge/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		input               string
		wantValid           bool
		major, minor, patch int
		wantPrerelease      string
		wantString          string
	}{
		{"1.2.3", true, 1, 2, 3, "", "1.2.3"},
		{"v1.2.3", true, 1, 2, 3, "", "1.2.3"},
		{"V10.0.1", true, 10, 0, 1, "", "10.0.1"},
		{"  2.0.0  ", true, 2, 0, 0, "", "2.0.0"},
		{"1.0.0-alpha", true, 1, 0, 0, "alpha", "1.0.0-alpha"},
		{"1.0.0.beta", true, 1, 0, 0, "beta", "1.0.0-beta"},
		{"1.0.0-rc.1", true, 1, 0, 0, "rc.1", "1.0.0-rc.1"},
		{"1.0", false, 0, 0, 0, "", "1.0"},
		{"1.0.0-", false, 0, 0, 0, "", "1.0.0-"},
		{"1.0.0alpha", false, 0, 0, 0, "", "1.0.0alpha"},
		{"vv1.0.0", false, 0, 0, 0, "", "vv1.0.0"},
		{"", false, 0, 0, 0, "", ""},
		{"abc", false, 0, 0, 0, "", "abc"},
		{"99999999999999999999.0.0", false, 0, 0, 0, "", "99999999999999999999.0.0"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := Parse(tt.input)
			if v.Valid() != tt.wantValid {
				t.Fatalf("Parse(%q).Valid() = %v, want %v", tt.input, v.Valid(), tt.wantValid)
			}
			if v.Major != tt.major || v.Minor != tt.minor || v.Patch != tt.patch {
				t.Errorf("Parse(%q) = %d.%d.%d, want %d.%d.%d", tt.input, v.Major, v.Minor, v.Patch, tt.major, tt.minor, tt.patch)
			}
			if v.Prerelease != tt.wantPrerelease {
				t.Errorf("Prerelease = %q, want %q", v.Prerelease, tt.wantPrerelease)
			}
			if v.String() != tt.wantString {
				t.Errorf("String() = %q, want %q", v.String(), tt.wantString)
			}
			if v.Original() != tt.input {
				t.Errorf("Original() = %q, want %q", v.Original(), tt.input)
			}
		})
	}
}

func TestMustParsePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustParse should panic on invalid input")
		}
	}()
	MustParse("not-a-version")
}

func TestZeroValueIsInvalid(t *testing.T) {
	var v Version
	if v.Valid() {
		t.Error("zero Version should be invalid")
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "2.0.0", -1},
		{"2.0.0", "1.0.0", 1},
		{"1.0.0", "1.0.0", 0},
		{"v1.0.0", "1.0.0", 0},
		{"1.2.0", "1.10.0", -1},
		{"1.0.9", "1.0.10", -1},
		{"1.0.0", "1.0.0-alpha", 1},
		{"1.0.0-alpha", "1.0.0", -1},
		{"1.0.0-alpha", "1.0.0-beta", -1},
		{"1.0.0-rc10", "1.0.0-rc9", -1},
		{"1.0.0-beta", "1.0.0.beta", 0},
		{"0.9.9", "1.0.0-alpha", -1},
	}

	for _, tt := range tests {
		t.Run(tt.a+"_vs_"+tt.b, func(t *testing.T) {
			if got := Compare(Parse(tt.a), Parse(tt.b)); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestCompareInvalidBehavesLikeZero(t *testing.T) {
	if got := Parse("garbage").Compare(Parse("0.0.0")); got != 0 {
		t.Errorf("invalid vs 0.0.0 = %d, want 0", got)
	}
	if got := Parse("garbage").Compare(Parse("0.0.1")); got != -1 {
		t.Errorf("invalid vs 0.0.1 = %d, want -1", got)
	}
}

func TestCompareIsTotalOrder(t *testing.T) {
	inputs := []string{
		"0.0.1", "0.1.0", "1.0.0-alpha", "1.0.0-alpha.1", "1.0.0-beta",
		"1.0.0", "1.0.1", "1.1.0", "2.0.0-rc1", "2.0.0", "10.0.0",
	}
	vs := make([]Version, len(inputs))
	for i, s := range inputs {
		vs[i] = MustParse(s)
	}

	for _, a := range vs {
		for _, b := range vs {
			ab, ba := a.Compare(b), b.Compare(a)
			if ab != -ba {
				t.Errorf("antisymmetry broken: %s vs %s = %d, reverse %d", a, b, ab, ba)
			}
			if (ab == 0) != (a.String() == b.String()) {
				t.Errorf("equality of %s and %s inconsistent with string equality", a, b)
			}
			for _, c := range vs {
				if ab < 0 && b.Compare(c) < 0 && a.Compare(c) >= 0 {
					t.Errorf("transitivity broken: %s < %s < %s", a, b, c)
				}
			}
		}
	}

	shuffled := slices.Clone(vs)
	slices.Reverse(shuffled)
	slices.SortFunc(shuffled, Compare)
	for i := range vs {
		if shuffled[i].String() != vs[i].String() {
			t.Fatalf("sorted order mismatch at %d: got %s, want %s", i, shuffled[i], vs[i])
		}
	}
}

func TestFormat(t *testing.T) {
	tests := map[string]string{
		"1.2.3":       "v1.2.3",
		"v1.2.3":      "v1.2.3",
		"V2.0.0-beta": "v2.0.0-beta",
		"bogus":       "v0.1.0",
	}
	for in, want := range tests {
		if got := Format(in); got != want {
			t.Errorf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestValidateStrict(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"1.2.3", false},
		{"v1.2.3", false},
		{"1.0.0-rc.1+build.5", false},
		{"1.0.0.beta", true},
		{"1.2", true},
		{"01.2.3", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateStrict(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateStrict(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidVersion) {
				t.Errorf("error code = %q, want %q", errors.GetCode(err), errors.ErrCodeInvalidVersion)
			}
		})
	}
}
