package textutil

import (
	"math"
	"testing"
)

func TestNormalizeLabel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"trims and collapses", "  Solo   Cornet ", "solo cornet"},
		{"case folds", "CORNET", "cornet"},
		{"strips punctuation", "1st Horn (Eb)!", "1st horn eb"},
		{"keeps hyphens", "Bass-Trombone", "bass-trombone"},
		{"keeps digits", "Trombone 2", "trombone 2"},
		{"punctuation only", "&%$!", ""},
		{"empty", "", ""},
		{"tabs and newlines", "Solo\tCornet\n", "solo cornet"},
		{"unicode fold", "Straße", "strasse"},
		{"punctuation between words", "Horn (in F)", "horn in f"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeLabel(tt.input); got != tt.want {
				t.Errorf("NormalizeLabel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLabelIdempotent(t *testing.T) {
	inputs := []string{"  Solo   Cornet ", "1st Horn (Eb)!", "bass-trombone", "Straße"}
	for _, input := range inputs {
		once := NormalizeLabel(input)
		if twice := NormalizeLabel(once); twice != once {
			t.Errorf("NormalizeLabel not idempotent for %q: %q then %q", input, once, twice)
		}
	}
}

func TestBigrams(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"single word", "solo", []string{"so", "ol", "lo"}},
		{"two words", "1st horn", []string{"1s", "st", "ho", "or", "rn"}},
		{"single char word kept", "horn 2", []string{"ho", "or", "rn", "2"}},
		{"empty", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bigrams(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Bigrams(%q) = %v, want %v", tt.input, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("gram[%d] = %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestCosineSimilarityNil(t *testing.T) {
	tests := []struct {
		name string
		a    *Fingerprint
		b    *Fingerprint
		want float64
	}{
		{"both nil", nil, nil, 0},
		{"a nil", nil, NewFingerprint("solo cornet"), 0},
		{"b nil", NewFingerprint("solo cornet"), nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCosineSimilarityIdentical(t *testing.T) {
	a := NewFingerprint("solo cornet")
	b := NewFingerprint("solo cornet")

	got := CosineSimilarity(a, b)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("CosineSimilarity(identical) = %v, want 1.0", got)
	}
}

func TestCosineSimilarityDisjoint(t *testing.T) {
	a := NewFingerprint("flute")
	b := NewFingerprint("drums")

	got := CosineSimilarity(a, b)
	if got != 0 {
		t.Errorf("CosineSimilarity(disjoint) = %v, want 0", got)
	}
}

func TestCosineSimilaritySingleSubstitution(t *testing.T) {
	// One corrupted character in a six-letter word shares four of five bigrams.
	a := NewFingerprint("cornet")
	b := NewFingerprint("kornet")

	got := CosineSimilarity(a, b)
	if got < 0.75 || got > 0.85 {
		t.Errorf("CosineSimilarity(cornet, kornet) = %v, want ~0.8", got)
	}
}

func TestCosineSimilarityNumberedPartsStayApart(t *testing.T) {
	a := NewFingerprint("1st horn")
	b := NewFingerprint("2nd horn")

	got := CosineSimilarity(a, b)
	if got >= 0.75 {
		t.Errorf("CosineSimilarity(1st horn, 2nd horn) = %v, want below threshold", got)
	}
}

func TestCosineSimilaritySymmetric(t *testing.T) {
	a := NewFingerprint("bass trombone")
	b := NewFingerprint("tenor trombone")

	ab := CosineSimilarity(a, b)
	ba := CosineSimilarity(b, a)

	if ab != ba {
		t.Errorf("CosineSimilarity not symmetric: (%v, %v)", ab, ba)
	}
}

func TestNewFingerprintEmpty(t *testing.T) {
	if fp := NewFingerprint(""); fp != nil {
		t.Error("expected nil for empty label")
	}
}

func TestNewFingerprintNormCalculation(t *testing.T) {
	// "aa a" -> bigram "aa" once, single-char word "a" once
	// norm = sqrt(1^2 + 1^2) = sqrt(2)
	fp := NewFingerprint("aa a")
	if fp == nil {
		t.Fatal("expected fingerprint")
	}

	expectedNorm := math.Sqrt(2)
	if math.Abs(fp.norm-expectedNorm) > 0.0001 {
		t.Errorf("norm = %v, want %v", fp.norm, expectedNorm)
	}
}

func TestFingerprintGramCount(t *testing.T) {
	tests := []struct {
		name string
		fp   *Fingerprint
		want int
	}{
		{"nil fingerprint", nil, 0},
		{"unique grams", NewFingerprint("solo"), 3},
		{"repeated grams", NewFingerprint("papa"), 2}, // pa ap pa -> unique pa, ap
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fp.GramCount(); got != tt.want {
				t.Errorf("GramCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestContainsWords(t *testing.T) {
	tests := []struct {
		name     string
		haystack string
		needle   string
		want     bool
	}{
		{"exact", "solo cornet", "solo cornet", true},
		{"prefix run", "solo cornet in bb", "solo cornet", true},
		{"suffix run", "2nd cornet", "cornet", true},
		{"needle longer", "cornet", "solo cornet", false},
		{"interleaved words", "solo bb cornet", "solo cornet", false},
		{"partial word", "cornetto march", "cornet", false},
		{"empty needle", "solo cornet", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsWords(tt.haystack, tt.needle); got != tt.want {
				t.Errorf("ContainsWords(%q, %q) = %v, want %v", tt.haystack, tt.needle, got, tt.want)
			}
		})
	}
}

func TestTernary(t *testing.T) {
	if got := Ternary(true, "matched", "unmatched"); got != "matched" {
		t.Errorf("Ternary(true) = %q", got)
	}
	if got := Ternary(false, 1, 2); got != 2 {
		t.Errorf("Ternary(false) = %d", got)
	}
}
