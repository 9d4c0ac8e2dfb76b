package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Components
	}{
		{
			name:  "street city state zip with commas",
			input: "130 Jackson St, Passaic, NJ 07055",
			want:  Components{Street: "130 Jackson St", City: "Passaic", State: "NJ", Zip: "07055"},
		},
		{
			name:  "zip plus four",
			input: "130 Jackson St, Passaic, NJ 07055-1234",
			want:  Components{Street: "130 Jackson St", City: "Passaic", State: "NJ", Zip: "07055-1234"},
		},
		{
			name:  "no commas keeps everything as street",
			input: "130 Jackson St 07055",
			want:  Components{Street: "130 Jackson St", Zip: "07055"},
		},
		{
			name:  "street only keeps its street type token",
			input: "130 Jackson St",
			want:  Components{Street: "130 Jackson St"},
		},
		{
			name:  "state without zip",
			input: "130 Jackson St, Passaic, NJ",
			want:  Components{Street: "130 Jackson St", City: "Passaic", State: "NJ"},
		},
		{
			name:  "empty input falls back to street",
			input: "",
			want:  Components{Street: ""},
		},
		{
			name:  "whitespace preserved fallback",
			input: "   ",
			want:  Components{Street: "   "},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.input))
		})
	}
}

func TestParseNeverEmptyStreetForNonEmptyInput(t *testing.T) {
	inputs := []string{
		"NJ 07055",
		", , ,",
		"07055",
	}
	for _, in := range inputs {
		got := Parse(in)
		assert.NotEmpty(t, got.Street, "input %q must keep a street fallback", in)
	}
}
