// Package text provides the text normalization applied to all
// human-readable strings in LPF records.
package text

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFC normalization and collapses all interior
// whitespace runs to single spaces, trimming leading and trailing space.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	return strings.Join(strings.Fields(s), " ")
}
