// Package compat records which versions of which components are known to
// work together.
//
// A [Matrix] stores compatibility pairs between named components. Every
// pair is mirrored at write time: registering core 1.0.0 with api 2.0.0
// also records api 2.0.0 with core 1.0.0, so lookups never depend on which
// side a fact was declared from.
//
// Queries fail closed. [Matrix.Verify] answers true only when a registered
// pair covers the question, either exactly or because the registered
// counterpart version is a floor the asked version satisfies. Missing data
// is reported as incompatible.
//
// The matrix round-trips through JSON ([Matrix.ToJSON], [FromJSON]) and can
// be persisted through a [cache.Cache] with [Store]. Importing bad data
// never fails: the result is an empty matrix and the problem is logged.
//
// [cache.Cache]: github.com/matzehuels/versionforge/pkg/cache#Cache
package compat
