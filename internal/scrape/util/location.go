package util

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ListText returns the cleaned text of every element in sel, skipping blanks
// and repeats, joined with ", ". Locations are often split across several
// <li> items ("Toronto", "Remote").
func ListText(sel *goquery.Selection) string {
	seen := map[string]bool{}
	var out []string
	sel.Each(func(_ int, s *goquery.Selection) {
		t := CleanText(s.Text())
		if t == "" {
			return
		}
		k := strings.ToLower(t)
		if seen[k] {
			return
		}
		seen[k] = true
		out = append(out, t)
	})
	return strings.Join(out, ", ")
}

// NormalizeLocation strips a leading "Location:" label and drops duplicate
// comma-separated parts.
func NormalizeLocation(loc string) string {
	loc = CleanText(loc)
	if loc == "" {
		return ""
	}

	for _, p := range []string{"Location:", "Locations:", "LOCATION:", "LOCATIONS:"} {
		loc = strings.TrimPrefix(loc, p)
	}
	loc = strings.TrimSpace(loc)

	parts := strings.Split(loc, ",")
	seen := map[string]bool{}
	var out []string
	for _, p := range parts {
		p = CleanText(p)
		if p == "" {
			continue
		}
		k := strings.ToLower(p)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, p)
	}
	return strings.Join(out, ", ")
}
