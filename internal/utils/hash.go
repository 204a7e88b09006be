package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashRefreshToken returns the SHA-256 digest of a raw refresh token value
// as a hex string. Only this digest is ever persisted, so a database
// compromise does not yield usable refresh tokens.
func HashRefreshToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
