package naming

import (
	"path/filepath"
	"strings"
	"unicode"
)

// DeriveFilename maps a session base name and an instrument name to the
// output filename for that split. Every rune that is not a letter, digit,
// whitespace, or hyphen is dropped; whitespace runs become single hyphens;
// hyphen runs collapse. The base is used verbatim: the caller has already
// chosen and validated it. Total over all inputs; an empty instrument yields
// "base-.pdf".
func DeriveFilename(base, instrument string) string {
	return base + "-" + sanitizeInstrument(instrument) + ".pdf"
}

func sanitizeInstrument(instrument string) string {
	var b strings.Builder
	b.Grow(len(instrument))
	for _, r := range instrument {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}

	var out strings.Builder
	out.Grow(b.Len())
	lastHyphen := false
	for _, r := range b.String() {
		if r == '-' {
			if lastHyphen {
				continue
			}
			lastHyphen = true
		} else {
			lastHyphen = false
		}
		out.WriteRune(r)
	}
	return out.String()
}

// BaseFromPath derives a session base name from a source document path:
// the filename with its extension removed and surrounding whitespace
// trimmed. Paths that leave nothing usable fall back to "untitled".
func BaseFromPath(path string) string {
	base := strings.TrimSpace(filepath.Base(path))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "untitled"
	}
	// Keep dotfiles whole: Ext(".hidden") is the entire name.
	if ext := filepath.Ext(base); ext != base {
		base = strings.TrimSuffix(base, ext)
	}
	if base = strings.TrimSpace(base); base == "" {
		return "untitled"
	}
	return base
}
