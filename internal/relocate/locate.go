package relocate

import "strings"

// MatchKind distinguishes exact matches from fuzzy-fallback matches.
type MatchKind string

const (
	MatchExact MatchKind = "exact"
	MatchFuzzy MatchKind = "fuzzy"
)

// Span is a located [Start,End) range in the flattened text stream.
type Span struct {
	Start      int
	End        int
	Kind       MatchKind
	Confidence float64
}

// Locator finds the span of flattened document text a normalized excerpt
// refers to. The canonical form of the document text is computed once per
// index and cached; matching happens in canonical space and results are
// translated back through the normalizer's offset table.
type Locator struct {
	idx       *Index
	norm      Normalizer
	canon     charMap
	threshold float64 // fuzzy acceptance similarity
	budget    int     // max fuzzy windows scored per excerpt
}

// NewLocator prepares a locator for one index. Never mutates the index.
func NewLocator(idx *Index, norm Normalizer, threshold float64, budget int) *Locator {
	return &Locator{
		idx:       idx,
		norm:      norm,
		canon:     norm.mapString(idx.Flat()),
		threshold: threshold,
		budget:    budget,
	}
}

// Locate finds the best span for excerpt, skipping anything claimed in
// consumed. hintFrac is the clipping's ordinal fraction within its
// session (reading order), used to break ties between repeated
// occurrences. Returns the span, the number of exact candidates that were
// considered (>1 means the ambiguity was resolved by the hint), and
// whether any acceptable match was found. Deterministic for identical
// inputs.
func (l *Locator) Locate(excerpt string, consumed *Ranges, hintFrac float64) (Span, int, bool) {
	target := l.norm.Normalize(excerpt)
	if target == "" {
		return Span{}, 0, false
	}

	candidates := l.exactCandidates(target, consumed)

	switch len(candidates) {
	case 0:
		span, ok := l.fuzzyScan(target, consumed)
		return span, 0, ok
	case 1:
		return candidates[0], 1, true
	}

	// Repeated text: prefer the occurrence whose position fraction in the
	// document is closest to the clipping's ordinal fraction. Candidates
	// are in document order, so ties keep the first occurrence.
	best := 0
	bestDist := l.fractionDistance(candidates[0], hintFrac)
	for i := 1; i < len(candidates); i++ {
		if d := l.fractionDistance(candidates[i], hintFrac); d < bestDist {
			best, bestDist = i, d
		}
	}
	return candidates[best], len(candidates), true
}

// exactCandidates collects the non-overlapping occurrences of target in
// the canonical document text, translated to raw offsets, excluding any
// that touch consumed ranges.
func (l *Locator) exactCandidates(target string, consumed *Ranges) []Span {
	var out []Span
	doc := l.canon.canon
	for from := 0; ; {
		i := strings.Index(doc[from:], target)
		if i < 0 {
			break
		}
		cs := from + i
		rawStart, rawEnd := l.canon.rawSpan(cs, cs+len(target))
		if !consumed.Overlaps(rawStart, rawEnd) {
			out = append(out, Span{Start: rawStart, End: rawEnd, Kind: MatchExact, Confidence: 1})
		}
		from = cs + len(target)
	}
	return out
}

func (l *Locator) fractionDistance(s Span, hintFrac float64) float64 {
	if len(l.idx.Flat()) == 0 {
		return 0
	}
	frac := float64(s.Start) / float64(len(l.idx.Flat()))
	d := frac - hintFrac
	if d < 0 {
		d = -d
	}
	return d
}

// fuzzyScan slides windows of length len(target)±tolerance across the
// unconsumed canonical text, scoring each by normalized edit distance.
// The best window is accepted only above the similarity threshold. The
// scan is bounded: if it would score more windows than the budget allows,
// it degrades to not-found rather than running unbounded.
func (l *Locator) fuzzyScan(target string, consumed *Ranges) (Span, bool) {
	doc := l.canon.canon
	tol := max(3, len(target)/10)
	minLen := max(1, len(target)-tol)
	maxLen := len(target) + tol

	if len(doc) < minLen {
		return Span{}, false
	}

	starts := len(doc) - minLen + 1
	if l.budget > 0 && starts*(maxLen-minLen+1) > l.budget {
		return Span{}, false
	}

	bestSim := 0.0
	var bestSpan Span
	for cs := 0; cs < starts; cs++ {
		for wl := minLen; wl <= maxLen && cs+wl <= len(doc); wl++ {
			rawStart, rawEnd := l.canon.rawSpan(cs, cs+wl)
			if consumed.Overlaps(rawStart, rawEnd) {
				continue
			}
			sim := Similarity(doc[cs:cs+wl], target)
			if sim > bestSim {
				bestSim = sim
				bestSpan = Span{Start: rawStart, End: rawEnd, Kind: MatchFuzzy, Confidence: sim}
			}
		}
	}

	if bestSim < l.threshold {
		return Span{}, false
	}
	return bestSpan, true
}
