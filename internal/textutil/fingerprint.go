package textutil

import (
	"math"
	"strings"
)

// Fingerprint represents a character-bigram frequency vector for short-label
// similarity comparison. Word-level term frequencies are useless for labels
// like "2nd Cornet" where most comparisons share every word or none, so the
// vector is built from adjacent character pairs within each word.
type Fingerprint struct {
	grams map[string]float64
	norm  float64
}

// NewFingerprint creates a fingerprint from a normalized label.
// Returns nil if the label produces no bigrams.
func NewFingerprint(label string) *Fingerprint {
	grams := Bigrams(label)
	if len(grams) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(grams))
	for _, gram := range grams {
		counts[gram]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		grams: counts,
		norm:  math.Sqrt(norm),
	}
}

// Bigrams splits a normalized label into per-word character bigrams.
// Single-character words contribute themselves so numbered parts like
// "horn 2" still carry their digit.
func Bigrams(label string) []string {
	words := strings.Fields(label)
	grams := make([]string, 0, len(label))
	for _, word := range words {
		runes := []rune(word)
		if len(runes) == 1 {
			grams = append(grams, string(runes))
			continue
		}
		for i := 0; i+1 < len(runes); i++ {
			grams = append(grams, string(runes[i:i+2]))
		}
	}
	return grams
}

// GramCount returns the number of unique bigrams in the fingerprint.
func (f *Fingerprint) GramCount() int {
	if f == nil {
		return 0
	}
	return len(f.grams)
}
