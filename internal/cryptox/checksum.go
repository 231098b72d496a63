// Package cryptox computes content digests for uploaded media.
package cryptox

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Checksum returns the hex-encoded BLAKE2b-256 digest of data.
// Identical content always yields the same checksum, so storage backends can
// record it next to the object and detect re-uploads of the same file.
func Checksum(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// VerifyChecksum reports whether data matches the expected checksum.
func VerifyChecksum(data []byte, expected string) bool {
	return Checksum(data) == expected
}
