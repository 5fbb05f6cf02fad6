package relocate

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Normalizer canonicalizes excerpt and document text into a comparable
// form. The same normalizer must be used on both sides of a match.
//
// StripFootnotes controls the footnote-digit heuristic: a digit run
// immediately following sentence-final punctuation with no intervening
// space is treated as a footnote marker left over from the e-reader
// export and dropped. A numeral that legitimately follows a period (as in
// "3.14") is indistinguishable from such a marker; since both the excerpt
// and the document pass through the same transform, matching still works,
// but the heuristic can be disabled entirely.
type Normalizer struct {
	StripFootnotes bool
}

// charMap is the canonical form of a string together with a per-byte
// translation back to the source. For canonical byte i, the source bytes
// it was derived from are raw[starts[i]:ends[i]]. Substitutions are 1:1
// or N:1 and never reorder, so both slices are monotonically increasing.
type charMap struct {
	canon  string
	starts []int
	ends   []int
}

// Normalize returns the canonical form of s: whitespace runs collapsed to
// a single space, curly quotes and dashes unified, text lowercased,
// footnote digits stripped (when enabled), and the result trimmed.
// Pure and deterministic; never errors.
func (n Normalizer) Normalize(s string) string {
	return strings.TrimSpace(n.mapString(s).canon)
}

// mapString runs the canonicalization while building the offset
// translation table. The canonical text is not trimmed here: trimming
// would shift every offset, and document text is matched untrimmed.
func (n Normalizer) mapString(s string) charMap {
	var b strings.Builder
	b.Grow(len(s))
	starts := make([]int, 0, len(s))
	ends := make([]int, 0, len(s))

	emit := func(r rune, srcStart, srcEnd int) {
		var buf [utf8.UTFMax]byte
		size := utf8.EncodeRune(buf[:], r)
		b.Write(buf[:size])
		for i := 0; i < size; i++ {
			starts = append(starts, srcStart)
			ends = append(ends, srcEnd)
		}
	}

	lastEmitted := func() byte {
		if len(ends) == 0 {
			return 0
		}
		return b.String()[b.Len()-1]
	}

	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])

		switch {
		case unicode.IsSpace(r):
			if lastEmitted() == ' ' {
				// Extend the collapsed run instead of emitting again.
				ends[len(ends)-1] = i + size
			} else {
				emit(' ', i, i+size)
			}

		case n.StripFootnotes && r >= '0' && r <= '9' && isSentenceFinal(lastEmitted()):
			// Footnote artifact: digit glued onto terminal punctuation.
			// Dropped entirely; the punctuation keeps its mapping.

		default:
			emit(canonicalRune(r), i, i+size)
		}

		i += size
	}

	return charMap{canon: b.String(), starts: starts, ends: ends}
}

// rawSpan translates a canonical byte range back into a source byte range.
func (m charMap) rawSpan(start, end int) (int, int) {
	return m.starts[start], m.ends[end-1]
}

func isSentenceFinal(b byte) bool {
	return b == '.' || b == '!' || b == '?'
}

// canonicalRune unifies curly quotes, apostrophes and dashes with their
// straight ASCII forms and folds case. 1:1 in rune space.
func canonicalRune(r rune) rune {
	switch r {
	case '‘', '’', '‚', '′': // curly/single quotes, prime
		return '\''
	case '“', '”', '„', '″': // curly double quotes
		return '"'
	case '–', '—', '―', '−': // en/em/horizontal-bar dash, minus
		return '-'
	}
	return unicode.ToLower(r)
}
