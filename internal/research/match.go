// Package research turns discovery candidates into enriched profiles. Per
// company it fans out to the source adapters, merges their fragments into an
// evidence bundle, and runs the enrichment engine over it.
package research

import "strings"

// NamesMatch reports whether a record returned by a source plausibly belongs
// to the queried company. Both names are reduced to lowercase alphanumerics;
// they match if one contains the other or their lengths differ by at most 3.
//
// This is an approximation and can false-positive on short names ("Abel"
// matches "Label").
func NamesMatch(search, found string) bool {
	a := alphanumeric(search)
	b := alphanumeric(found)
	if a == "" || b == "" {
		return false
	}
	if strings.Contains(a, b) || strings.Contains(b, a) {
		return true
	}
	diff := len(a) - len(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= 3
}

func alphanumeric(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
