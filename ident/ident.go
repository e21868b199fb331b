// Package ident generates entity identifiers. Deterministic ids are part of
// the observable contract: the same logical inputs must always produce the
// same id, so that repeated mutations stay reproducible across runs.
package ident

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/google/uuid"
)

// Deterministic derives a stable id from the given parts: the parts are
// joined with '|', hashed with SHA-256, and the first 12 hex characters are
// appended to the prefix. Identical parts always yield the identical id.
func Deterministic(prefix string, parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "|")))
	return prefix + "_" + hex.EncodeToString(sum[:])[:12]
}

// Random returns a prefixed UUID-based id for stores that do not require
// reproducible identifiers.
func Random(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
