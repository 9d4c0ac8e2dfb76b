package normalizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type NormalizerSuite struct {
	suite.Suite
}

func TestNormalizerSuite(t *testing.T) {
	suite.Run(t, new(NormalizerSuite))
}

// =============================================================================
// Sanitization
// =============================================================================

func (s *NormalizerSuite) TestSanitize() {
	s.Run("trims surrounding whitespace", func() {
		res := Process("  123 Main St  ")
		s.Equal("123 Main St", res.SanitizedInput)
	})

	s.Run("folds full-width characters to ASCII", func() {
		res := Process("１２３ Ｍａｉｎ Ｓｔ")
		s.Equal("123 Main St", res.SanitizedInput)
	})

	s.Run("strips control characters", func() {
		res := Process("123\tMain\nSt\x00")
		s.NotContains(res.SanitizedInput, "\t")
		s.NotContains(res.SanitizedInput, "\n")
		s.NotContains(res.SanitizedInput, "\x00")
		s.Contains(res.SanitizedInput, "123")
	})

	s.Run("preserves internal whitespace", func() {
		res := Process("123   Main   St")
		s.Equal("123   Main   St", res.SanitizedInput)
	})
}

// =============================================================================
// Validation gate
// =============================================================================

func (s *NormalizerSuite) TestValidate() {
	s.Run("rejects below minimum length", func() {
		res := Process("123")
		s.False(res.Valid)
		s.Contains(strings.ToLower(res.ErrorMessage), "minimum length")
		s.Empty(res.CanonicalKey)
	})

	s.Run("rejects above maximum length", func() {
		res := Process(strings.Repeat("1", 201))
		s.False(res.Valid)
		s.Contains(strings.ToLower(res.ErrorMessage), "maximum length")
	})

	s.Run("accepts exactly 200 characters", func() {
		res := Process("1" + strings.Repeat("a", 199))
		s.True(res.Valid)
	})

	s.Run("rejects disallowed characters", func() {
		res := Process("123 Main St <script>")
		s.False(res.Valid)
		s.Contains(strings.ToLower(res.ErrorMessage), "invalid characters")
	})

	s.Run("rejects input without digits", func() {
		res := Process("Main Street")
		s.False(res.Valid)
		s.Contains(strings.ToLower(res.ErrorMessage), "at least one digit")
	})

	s.Run("accepts a plain valid address", func() {
		res := Process("123 Main St.")
		s.True(res.Valid)
		s.Empty(res.ErrorMessage)
	})
}

// =============================================================================
// Canonicalization
// =============================================================================

func (s *NormalizerSuite) TestCanonicalize() {
	s.Run("lowercases and expands abbreviations", func() {
		res := Process("123 MAIN ST")
		s.Equal("123 main street", res.CanonicalKey)
	})

	s.Run("strips punctuation", func() {
		res := Process("123 Main St., #4")
		s.Equal("123 main street 4", res.CanonicalKey)
	})

	s.Run("collapses whitespace", func() {
		res := Process("123   Main    St")
		s.Equal("123 main street", res.CanonicalKey)
	})

	s.Run("expands several abbreviations", func() {
		res := Process("123 Main St Ave Apt 1")
		s.Equal("123 main street avenue apartment 1", res.CanonicalKey)
	})

	s.Run("expands directionals", func() {
		res := Process("456 N Main St NW")
		s.Equal("456 north main street northwest", res.CanonicalKey)
	})

	s.Run("matches whole tokens only", func() {
		res := Process("123 Starburst Lane")
		s.Equal("123 starburst lane", res.CanonicalKey)
		s.NotContains(res.CanonicalKey, "streetburst")
	})
}

// =============================================================================
// Determinism and full-pipeline behavior
// =============================================================================

func (s *NormalizerSuite) TestProcess() {
	s.Run("is deterministic", func() {
		a := Process("  123   Main   St.,   #4B  ")
		b := Process("  123   Main   St.,   #4B  ")
		s.Equal(a, b)
	})

	s.Run("full pipeline", func() {
		res := Process("  123   Ｍａｉｎ   St.,   #4B  ")
		s.True(res.Valid)
		s.Equal("123   Main   St.,   #4B", res.SanitizedInput)
		s.Equal("123 main street 4b", res.CanonicalKey)
	})

	s.Run("canonical key absent on rejection", func() {
		res := Process("abc")
		s.False(res.Valid)
		s.Empty(res.CanonicalKey)
		s.NotEmpty(res.ErrorMessage)
	})
}
