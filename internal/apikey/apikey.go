// Package apikey implements API key issuance and verification. Only SHA-256
// hashes of keys are ever stored; verification is a single set-membership
// lookup against the allowed hash set.
package apikey

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// KeyPrefix identifies keys issued by this service.
const KeyPrefix = "addr_vk_"

// HashKey returns the hex SHA-256 digest of a raw key.
func HashKey(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}

// GenerateKey creates a new random API key and its hash. The raw key is shown
// to the operator exactly once; only the hash is persisted.
func GenerateKey() (raw, hash string, err error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", "", fmt.Errorf("generate key material: %w", err)
	}

	raw = KeyPrefix + base64.RawURLEncoding.EncodeToString(buf)
	return raw, HashKey(raw), nil
}
