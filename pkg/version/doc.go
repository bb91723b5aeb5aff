// Package version parses and compares semantic versions.
//
// Parsing is forgiving by construction: [Parse] never returns an error.
// Input that is not of the form MAJOR.MINOR.PATCH (optionally followed by a
// "-" or "." separated tag) produces an invalid [Version] whose numeric
// fields are zero. Callers that must reject bad input check
// [Version.Valid], or use [ValidateStrict] for full SemVer 2.0.0 conformance.
//
// # Ordering
//
// Versions order by (major, minor, patch). With equal numbers a release is
// greater than any prerelease, and prerelease tags compare as plain strings:
//
//	1.0.0-alpha < 1.0.0-beta < 1.0.0 < 1.0.1
//
// Note that "1.0.0-rc10" sorts before "1.0.0-rc9"; tags are not split into
// numeric identifiers.
//
// # Deltas and compatibility
//
// [CalculateDelta] reports signed field differences plus an
// upgrade/downgrade/same classification. [IsCompatible] answers "is this
// version at least that minimum" and fails closed on any parse failure.
package version
