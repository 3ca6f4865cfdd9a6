// Package sku normalizes stock keeping unit identifiers.
//
// SKUs arrive from both catalogs as free text and occasionally carry
// non-printable bytes (copy-paste artifacts, BOMs, stray control characters).
// Both sides of the reconciliation join must go through the same
// normalization or matches silently fail.
package sku

import (
	"strings"
	"unicode"
)

// Normalize removes every non-printable rune from a raw SKU. The empty or
// absent value normalizes to "". It never fails.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, raw)
}
