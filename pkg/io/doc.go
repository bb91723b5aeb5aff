// Package io reads and writes component manifests.
//
// # Overview
//
// A manifest declares an ecosystem in one file: the components with their
// versions and requirements, the dependency edges between them, known
// compatibility pairs, and curated migration facts. The CLI and the HTTP
// service load a manifest and [Manifest.Apply] it to a validator, a
// compatibility matrix and a migration generator.
//
// # Formats
//
// JSON, YAML and TOML are supported; the format of a file is taken from its
// extension (see [FormatFromPath]):
//
//	components:
//	  - name: api
//	    version: 2.1.0
//	    min_version: 1.4.0
//	    depends_on: [core]
//	  - name: core
//	    version: 1.4.2
//	    metadata:
//	      owner: platform
//	compatibility:
//	  - {component: api, version: 2.1.0, with: core, with_version: 1.4.0}
//	migrations:
//	  - component: api
//	    from: 1.0.0
//	    to: 2.0.0
//	    breaking_changes: ["Removed /v0 routes"]
//
// # Component Fields
//
// Required:
//   - name: Unique component name (validated, see errors.ValidateComponentName)
//   - version: Current version
//
// Optional:
//   - min_version: Minimum version every dependency must satisfy
//   - metadata: Free-form string map; a "min_version" key is honored when
//     min_version is absent
//   - depends_on: Names of components this one depends on
//
// # Import
//
// Use [Import] to read a manifest from a file path, or [Read] to read from
// any io.Reader:
//
//	m, err := io.Import("deps.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Errors carry the codes FILE_NOT_FOUND, INVALID_FORMAT, INVALID_MANIFEST
// or INVALID_NAME from the errors package.
//
// # Export
//
// Use [Export] to write a manifest to a file, or [Write] to write to any
// io.Writer. Converting between formats is a Read followed by a Write.
package io
