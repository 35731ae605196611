package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"card suffix and punctuation", "NETFLIX.COM *12345", "NETFLIX COM"},
		{"corporate suffixes", "Spotify USA Inc.", "SPOTIFY"},
		{"country tokens", "ADOBE SYSTEMS CANADA", "ADOBE SYSTEMS"},
		{"short digit runs kept", "7-ELEVEN 123", "7 ELEVEN 123"},
		{"long digit runs dropped", "AMZN MKTP 99887766", "AMZN MKTP"},
		{"whitespace collapsed", "  GOOGLE   SERVICES  ", "GOOGLE SERVICES"},
		{"unicode letters kept", "CAFÉ MÜLLER", "CAFÉ MÜLLER"},
		{"empty", "", ""},
		{"punctuation only", "***", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeMerchant(tt.in))
		})
	}
}

func TestNormalizeMerchantStable(t *testing.T) {
	variants := []string{
		"NETFLIX.COM *91001",
		"Netflix.com 40412",
		"NETFLIX COM",
	}
	for _, v := range variants {
		assert.Equal(t, "NETFLIX COM", NormalizeMerchant(v), "variant %q", v)
	}
}
