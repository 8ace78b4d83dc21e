// Package cryptox holds the client-side hashing helpers.
package cryptox

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-256 digest of password. The
// gateway only ever receives this digest, never the plain password.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Wipe zeroes b. It is used on password buffers once they are no longer
// needed.
func Wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
