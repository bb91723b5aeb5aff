package version

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// DefaultMinVersion is the minimum version assumed when a component declares
// no explicit requirement.
const DefaultMinVersion = "0.1.0"

var versionRe = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:[-.](.+))?$`)

// Version is an immutable semantic version value.
//
// A Version is either valid (parsed from a string matching
// MAJOR.MINOR.PATCH with an optional "-" or "." separated suffix) or
// invalid. Invalid values have all numeric fields set to zero and compare
// like "0.0.0"; use [Version.Valid] to tell them apart.
//
// The zero value is an invalid version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string // empty when no prerelease tag is present

	valid bool
	raw   string
}

// Parse converts text into a Version. A single leading "v" or "V" and
// surrounding whitespace are ignored.
//
// Parse never fails: text that does not match the expected shape yields an
// invalid Version that remembers the original input. A numeric field too
// large for an int also yields an invalid Version, so it fails every
// minimum check.
func Parse(text string) Version {
	cleaned := strings.TrimSpace(text)
	if len(cleaned) > 0 && (cleaned[0] == 'v' || cleaned[0] == 'V') {
		cleaned = cleaned[1:]
	}

	m := versionRe.FindStringSubmatch(cleaned)
	if m == nil {
		return Version{raw: text}
	}

	major, errMajor := strconv.Atoi(m[1])
	minor, errMinor := strconv.Atoi(m[2])
	patch, errPatch := strconv.Atoi(m[3])
	if errMajor != nil || errMinor != nil || errPatch != nil {
		// Digits that overflow int.
		return Version{raw: text}
	}

	return Version{
		Major:      major,
		Minor:      minor,
		Patch:      patch,
		Prerelease: m[4],
		valid:      true,
		raw:        text,
	}
}

// MustParse is like [Parse] but panics if text is not a valid version.
// It is intended for tests and package-level constants.
func MustParse(text string) Version {
	v := Parse(text)
	if !v.valid {
		panic(fmt.Sprintf("version: invalid version %q", text))
	}
	return v
}

// Valid reports whether the version was parsed successfully.
func (v Version) Valid() bool { return v.valid }

// Original returns the text the version was parsed from.
func (v Version) Original() string { return v.raw }

// HasPrerelease reports whether the version carries a prerelease tag.
func (v Version) HasPrerelease() bool { return v.Prerelease != "" }

// String returns the canonical MAJOR.MINOR.PATCH[-PRERELEASE] form for valid
// versions and the original input for invalid ones.
func (v Version) String() string {
	if !v.valid {
		return v.raw
	}
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	return s
}

// Compare returns -1, 0 or +1 depending on whether v sorts before, equal
// to, or after o.
//
// Numeric fields are compared first. When they are equal a version without
// a prerelease tag is greater than one with a tag, and two tags are compared
// as plain strings.
func (v Version) Compare(o Version) int {
	if c := compareInt(v.Major, o.Major); c != 0 {
		return c
	}
	if c := compareInt(v.Minor, o.Minor); c != 0 {
		return c
	}
	if c := compareInt(v.Patch, o.Patch); c != 0 {
		return c
	}

	switch {
	case v.Prerelease == o.Prerelease:
		return 0
	case v.Prerelease == "":
		return 1
	case o.Prerelease == "":
		return -1
	}
	return strings.Compare(v.Prerelease, o.Prerelease)
}

// Equal reports whether v and o compare equal.
func (v Version) Equal(o Version) bool { return v.Compare(o) == 0 }

// LessThan reports whether v sorts before o.
func (v Version) LessThan(o Version) bool { return v.Compare(o) < 0 }

// Compare is the function form of [Version.Compare], suitable for
// slices.SortFunc.
func Compare(a, b Version) int { return a.Compare(b) }

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Format returns the canonical "v"-prefixed form of text. Unparsable input
// formats as the default version.
func Format(text string) string {
	v := Parse(text)
	if !v.valid {
		return "v" + DefaultMinVersion
	}
	return "v" + v.String()
}
