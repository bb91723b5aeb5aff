package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// digestKey builds "<kind>:<sha256 of parts>". Parts are joined with a NUL
// byte so ("ab", "c") and ("a", "bc") map to different keys.
func digestKey(kind string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return kind + ":" + hex.EncodeToString(sum[:])
}

// Hash returns the hex SHA-256 of a manifest's raw bytes. The CLI feeds it
// to [Keyer.ManifestKey] so an edited manifest never hits a stale entry.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
