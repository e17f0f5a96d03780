package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

var labelFolder = cases.Fold()

// NormalizeLabel canonicalizes an extracted page label for comparison. The
// text is case-folded, punctuation other than hyphens is removed, and
// whitespace is collapsed to single spaces with the ends trimmed. Page
// fragments and catalog aliases go through the same path so string equality
// of the results means label equality.
//
// Punctuation is stripped before whitespace collapses, so "Horn (in F)"
// and "Horn in F" normalize identically.
func NormalizeLabel(text string) string {
	folded := labelFolder.String(text)
	var b strings.Builder
	b.Grow(len(folded))
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ContainsWords reports whether needle's words appear as a contiguous word
// sequence inside haystack. Both inputs must already be normalized.
func ContainsWords(haystack, needle string) bool {
	hw := strings.Fields(haystack)
	nw := strings.Fields(needle)
	if len(nw) == 0 || len(nw) > len(hw) {
		return false
	}
	for start := 0; start+len(nw) <= len(hw); start++ {
		match := true
		for i, w := range nw {
			if hw[start+i] != w {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}
