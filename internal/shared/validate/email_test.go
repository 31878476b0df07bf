package validate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmail(t *testing.T) {
	cases := map[string]bool{
		"jane@example.com":      true,
		"j.doe+tag@mail.co.uk":  true,
		"no-at-sign.example":    false,
		"missing@tld":           false,
		"spaces in@example.com": false,
		"":                      false,
	}
	for input, want := range cases {
		require.Equal(t, want, Email(input), input)
	}
}

func TestNormalizeEmail(t *testing.T) {
	require.Equal(t, "jane@example.com", NormalizeEmail("  Jane@Example.COM "))
}
