package model

import (
	"regexp"
	"strings"
	"unicode"
)

var multiSpaceRe = regexp.MustCompile(`\s{2,}`)

// NormalizeName standardizes a company name for duplicate detection by:
//  1. Lowercasing
//  2. Converting separators (dashes, underscores, slashes) to spaces
//  3. Stripping remaining punctuation
//  4. Collapsing whitespace runs into single spaces
//
// The result is the candidate identity key. Normalization is idempotent:
// NormalizeName(NormalizeName(x)) == NormalizeName(x).
func NormalizeName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	name = strings.NewReplacer(
		"-", " ",
		"_", " ",
		"/", " ",
	).Replace(name)

	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		if r == ' ' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}

	name = multiSpaceRe.ReplaceAllString(b.String(), " ")
	return strings.TrimSpace(name)
}
