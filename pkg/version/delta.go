package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/matzehuels/versionforge/pkg/errors"
)

// Delta is the component-wise difference between two versions.
//
// Major, Minor and Patch hold to-from differences. For any pair of valid
// versions exactly one of IsUpgrade, IsDowngrade and IsSame is true. When
// either side fails to parse all fields are zero and all flags are false:
// an unknown version never reports a difference.
type Delta struct {
	Major       int  `json:"major"`
	Minor       int  `json:"minor"`
	Patch       int  `json:"patch"`
	IsUpgrade   bool `json:"is_upgrade"`
	IsDowngrade bool `json:"is_downgrade"`
	IsSame      bool `json:"is_same"`
}

// Known reports whether the delta was computed from two valid versions.
func (d Delta) Known() bool { return d.IsUpgrade || d.IsDowngrade || d.IsSame }

// Describe renders the signed non-zero fields, e.g. "+1 major, -2 minor".
func (d Delta) Describe() string {
	var parts []string
	for _, f := range []struct {
		name  string
		value int
	}{{"major", d.Major}, {"minor", d.Minor}, {"patch", d.Patch}} {
		if f.value != 0 {
			parts = append(parts, fmt.Sprintf("%+d %s", f.value, f.name))
		}
	}
	if len(parts) == 0 {
		return "no version difference"
	}
	return strings.Join(parts, ", ")
}

// CalculateDelta parses from and to and returns their [Delta].
func CalculateDelta(from, to string) Delta {
	return DeltaOf(Parse(from), Parse(to))
}

// DeltaOf returns the [Delta] between two already parsed versions.
func DeltaOf(from, to Version) Delta {
	if !from.valid || !to.valid {
		return Delta{}
	}
	c := to.Compare(from)
	return Delta{
		Major:       to.Major - from.Major,
		Minor:       to.Minor - from.Minor,
		Patch:       to.Patch - from.Patch,
		IsUpgrade:   c > 0,
		IsDowngrade: c < 0,
		IsSame:      c == 0,
	}
}

// IsCompatible reports whether v is at least minimum. An empty minimum
// means [DefaultMinVersion]. Any parse failure yields false.
func IsCompatible(v, minimum string) bool {
	if minimum == "" {
		minimum = DefaultMinVersion
	}
	return Satisfies(Parse(v), Parse(minimum))
}

// Satisfies is the parsed form of [IsCompatible].
func Satisfies(v, minimum Version) bool {
	if !v.valid || !minimum.valid {
		return false
	}
	return v.Compare(minimum) >= 0
}

// ValidateStrict checks text against the SemVer 2.0.0 grammar. It is
// stricter than [Parse]: a "." separated suffix such as "1.0.0.beta" parses
// but is rejected here.
func ValidateStrict(text string) error {
	cleaned := strings.TrimSpace(text)
	if len(cleaned) > 0 && (cleaned[0] == 'v' || cleaned[0] == 'V') {
		cleaned = cleaned[1:]
	}
	if _, err := semver.StrictNewVersion(cleaned); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidVersion, err, "%q is not a strict semantic version", text)
	}
	return nil
}
