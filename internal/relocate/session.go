package relocate

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"

	"github.com/gallego-posada/re-kindle/internal/config"
	"github.com/gallego-posada/re-kindle/internal/entities"
)

// Options tunes the relocation engine. Zero values fall back to the
// documented defaults.
type Options struct {
	Normalizer        Normalizer
	FuzzyThreshold    float64
	FuzzyWindowBudget int
	MaxParallelDocs   int
}

func (o Options) withDefaults() Options {
	if o.FuzzyThreshold == 0 {
		o.FuzzyThreshold = config.DefaultFuzzyThreshold
	}
	if o.FuzzyWindowBudget == 0 {
		o.FuzzyWindowBudget = config.DefaultFuzzyWindowBudget
	}
	return o
}

// Session relocates a sequence of clippings into one document. Strictly
// sequential: every injected span is claimed before the next clipping is
// located, so a later clipping can never match text an earlier one
// already owns. A session owns its document tree exclusively and is
// single-use.
type Session struct {
	name     string
	root     *html.Node
	opts     Options
	idx      *Index
	loc      *Locator
	consumed Ranges
	closed   bool
}

// NewSession builds the text index for root and prepares a session.
func NewSession(name string, root *html.Node, opts Options) *Session {
	opts = opts.withDefaults()
	idx := BuildIndex(root)
	return &Session{
		name: name,
		root: root,
		opts: opts,
		idx:  idx,
		loc:  NewLocator(idx, opts.Normalizer, opts.FuzzyThreshold, opts.FuzzyWindowBudget),
	}
}

// Apply processes the clippings in order and returns one result per
// clipping, in the same order. Per-clipping misses never abort the
// session; an offset-map invariant violation does, returning
// ErrMalformedOffset, and the caller must then discard the (possibly
// half-mutated) tree. The session is closed afterwards either way.
func (s *Session) Apply(clips []entities.Clipping, style entities.StyleDirective) ([]entities.Result, error) {
	if s.closed {
		return nil, errors.New("session already closed")
	}
	s.closed = true

	results := make([]entities.Result, 0, len(clips))
	for i, clip := range clips {
		hint := float64(i+1) / float64(len(clips))

		span, alternatives, ok := s.loc.Locate(clip.Text, &s.consumed, hint)
		if !ok {
			results = append(results, entities.Result{Clipping: clip, Outcome: entities.OutcomeNotFound})
			continue
		}

		if err := Inject(s.idx, span, style, clip.Note); err != nil {
			return results, err
		}
		s.consumed.Add(span.Start, span.End)

		if err := s.rebuild(); err != nil {
			return results, err
		}

		outcome := entities.OutcomeInserted
		if alternatives > 1 {
			outcome = entities.OutcomeAmbiguousResolved
		}
		results = append(results, entities.Result{
			Clipping:     clip,
			Outcome:      outcome,
			Document:     s.name,
			Alternatives: alternatives,
			Fuzzy:        span.Kind == MatchFuzzy,
		})
	}

	return results, nil
}

// rebuild refreshes the index after a mutation. Splitting text nodes
// invalidates the old segment table but must not change the flattened
// stream; a differing stream means the injector broke the round-trip
// invariant, which is fatal for the document.
func (s *Session) rebuild() error {
	idx := BuildIndex(s.root)
	if idx.Flat() != s.idx.Flat() {
		return fmt.Errorf("flattened text changed after injection: %w", ErrMalformedOffset)
	}
	s.idx = idx
	s.loc = NewLocator(idx, s.opts.Normalizer, s.opts.FuzzyThreshold, s.opts.FuzzyWindowBudget)
	return nil
}
