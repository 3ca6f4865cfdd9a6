package sku_test

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"

	"github.com/storeops/possync/internal/sku"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "ABC-123", "ABC-123"},
		{"empty", "", ""},
		{"trailing newline", "ABC-123\n", "ABC-123"},
		{"embedded tab and carriage return", "AB\tC\r-123", "ABC-123"},
		{"null bytes", "ABC\x00123", "ABC123"},
		{"bom prefix", "\uFEFFABC", "ABC"},
		{"spaces are printable", "AB 12", "AB 12"},
		{"unicode letters survive", "SKÜ-12", "SKÜ-12"},
		{"only control characters", "\x00\x01\x02", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sku.Normalize(tt.raw))
		})
	}
}

func TestNormalizeOutputAlwaysPrintable(t *testing.T) {
	inputs := []string{
		"ABC-123",
		"\x00\x1f\x7fXYZ",
		"line1\nline2",
		"​ mixed",
	}
	for _, in := range inputs {
		for _, r := range sku.Normalize(in) {
			assert.True(t, unicode.IsPrint(r), "non-printable rune %U survived in %q", r, in)
		}
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	raw := "AB\tC-1\n23"
	once := sku.Normalize(raw)
	assert.Equal(t, once, sku.Normalize(once))
}
