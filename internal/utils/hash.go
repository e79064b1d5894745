package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// CalculateFileHash computes the SHA-256 hex digest of file content.
// The digest doubles as the content address of the file in blob storage
// and as the payload submitted to the notarization ledger.
func CalculateFileHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}
