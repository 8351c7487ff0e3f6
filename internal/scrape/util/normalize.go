package util

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// CleanText collapses runs of whitespace (including nbsp) and returns the
// NFC form so composed and decomposed accents compare equal.
func CleanText(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	s = strings.Join(strings.Fields(s), " ")
	return norm.NFC.String(strings.TrimSpace(s))
}

// FirstNonEmpty returns the first argument that is not blank after cleaning.
func FirstNonEmpty(xs ...string) string {
	for _, x := range xs {
		if t := CleanText(x); t != "" {
			return t
		}
	}
	return ""
}

// ContainsAnyFold reports whether text contains any of the needles,
// ignoring case. Blank needles never match.
func ContainsAnyFold(text string, needles []string) bool {
	low := strings.ToLower(text)
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		if strings.Contains(low, n) {
			return true
		}
	}
	return false
}
