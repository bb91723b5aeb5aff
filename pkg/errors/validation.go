package errors

import (
	"strings"
	"unicode"
)

const maxNameLength = 256

// ValidateComponentName validates a component name before it enters the
// dependency graph or the compatibility matrix.
//
// The rules are conservative because names end up in file paths (exports),
// cache keys and DOT identifiers:
//   - No empty or whitespace-only names
//   - No control characters or null bytes
//   - No path traversal sequences or backslashes
//   - Maximum length of 256 characters
func ValidateComponentName(name string) error {
	if strings.TrimSpace(name) == "" {
		return New(ErrCodeInvalidName, "component name cannot be empty")
	}

	if len(name) > maxNameLength {
		return New(ErrCodeInvalidName, "component name too long (max %d characters)", maxNameLength)
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "component name contains invalid control characters")
		}
	}

	for _, pattern := range []string{"..", "//", "\\"} {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidName, "component name contains invalid characters: %q", pattern)
		}
	}

	return nil
}

// ValidateManifestPath validates a manifest file path supplied on the
// command line or in configuration.
func ValidateManifestPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "manifest path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "manifest path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "manifest path contains invalid characters")
		}
	}

	return nil
}
