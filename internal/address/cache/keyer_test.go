package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveKey(t *testing.T) {
	t.Run("invariant to word order", func(t *testing.T) {
		a := DeriveKey("130 Jackson St 07055")
		b := DeriveKey("07055 130 Jackson St")
		assert.Equal(t, a, b)
	})

	t.Run("invariant to spacing and case", func(t *testing.T) {
		a := DeriveKey("130 Jackson St 07055")
		b := DeriveKey("  130   JACKSON   st  07055 ")
		assert.Equal(t, a, b)
	})

	t.Run("invariant to punctuation", func(t *testing.T) {
		a := DeriveKey("130 Jackson St, #07055")
		b := DeriveKey("130 Jackson St 07055")
		assert.Equal(t, a, b)
	})

	t.Run("distinct addresses produce distinct keys", func(t *testing.T) {
		a := DeriveKey("130 Jackson St 07055")
		b := DeriveKey("131 Jackson St 07055")
		assert.NotEqual(t, a, b)
	})

	t.Run("is a hex sha256 digest", func(t *testing.T) {
		key := DeriveKey("130 Jackson St 07055")
		assert.Len(t, key, 64)
		assert.Regexp(t, "^[0-9a-f]+$", key)
	})
}
