// Package pkg provides the core libraries of versionforge.
//
// # Overview
//
// Versionforge answers three questions about an ecosystem of independently
// versioned components: does every dependency meet the minimum version its
// dependents require, which version pairs are known to work together, and
// what does moving a component from one version to another involve. The
// pkg directory is organized into three areas:
//
//  1. Engine - [version], [component], [validator], [compat], [migration]
//  2. Graphs - [dag], [dag/transform], [render/nodelink]
//  3. Infrastructure - [cache], [config], [io], [errors], [observability],
//     [httputil], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	Manifest (JSON / YAML / TOML)
//	         ↓
//	    [io] package (decode + validate names)
//	         ↓
//	    [validator], [compat], [migration] (registrations)
//	         ↓
//	    issues, upgrade plans, compatibility answers, guides
//	         ↓
//	    CLI output, HTTP responses, DOT/SVG/PNG diagrams
//
// # Quick Start
//
// Validate a small ecosystem and order an upgrade:
//
//	import (
//	    "github.com/matzehuels/versionforge/pkg/component"
//	    "github.com/matzehuels/versionforge/pkg/validator"
//	)
//
//	v := validator.New()
//	v.RegisterComponent("core", component.New("1.2.0"))
//	v.RegisterComponent("api", component.Info{CurrentVersion: "2.0.0", MinimumVersion: "1.5.0"})
//	v.RegisterDependency("api", "core")
//
//	res := v.Validate()       // res.Valid == false, one incompatible_version issue
//	plan, err := v.UpgradePlan(map[string]string{"api": "2.1.0", "core": "1.5.0"})
//	// plan: core@1.5.0 -> api@2.1.0
//
// # Engine
//
// [version] - Lenient MAJOR.MINOR.PATCH[-pre] parsing that never fails:
// unparsable input compares as zero and fails every minimum check. Deltas
// between two version strings and strict SemVer validation.
//
// [component] - The capability a registered component exposes: a current
// version and an optional declared minimum, with metadata fallback.
//
// [validator] - Dependency validation and upgrade ordering. Issues are
// reported in registration order; cycles fail planning with a
// CIRCULAR_DEPENDENCY error.
//
// [compat] - The symmetric compatibility matrix with its report, JSON
// document form, ASCII grid and cache-backed store.
//
// [migration] - Migration guides from a version delta and optional curated
// breaking changes, features and deprecations.
//
// # Graphs
//
// [dag] - Insertion-ordered directed graph with deterministic topological
// sorting and cycle reporting.
//
// [dag/transform] - Transitive reduction, cycle breaking and dependency
// waves.
//
// [render/nodelink] - Graphviz DOT for dependency graphs and matrices, with
// SVG and PNG output.
//
// # Infrastructure
//
// [cache] - Byte cache with file, Redis and null backends.
//
// [config] - TOML configuration with defaults and validation.
//
// [io] - Manifest encoding in JSON, YAML and TOML.
//
// [errors] - Coded errors and input validation.
//
// [observability] - Engine, cache and HTTP hooks with no-op defaults.
//
// [httputil] - JSON request decoding and error responses.
//
// [buildinfo] - Build metadata set through ldflags.
//
// [version]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/version
// [component]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/component
// [validator]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/validator
// [compat]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/compat
// [migration]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/migration
// [dag]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/dag
// [dag/transform]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/dag/transform
// [render/nodelink]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/render/nodelink
// [cache]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/config
// [io]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/io
// [errors]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/observability
// [httputil]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/httputil
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/versionforge/pkg/buildinfo
package pkg
