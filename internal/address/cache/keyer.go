package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
)

// DeriveKey produces the cache key for an address string: lowercase, strip
// everything outside [a-z0-9\s], split into tokens, sort them, concatenate,
// and hash. Token sorting makes the key invariant to word order and spacing,
// so "130 Jackson St 07055" and "07055 130 Jackson St" collide on purpose.
func DeriveKey(addressText string) string {
	lowered := strings.ToLower(addressText)

	var b strings.Builder
	b.Grow(len(lowered))
	for _, r := range lowered {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\v' || r == '\f':
			b.WriteRune(' ')
		}
	}

	tokens := strings.Fields(b.String())
	sort.Strings(tokens)

	sum := sha256.Sum256([]byte(strings.Join(tokens, "")))
	return hex.EncodeToString(sum[:])
}
