package entities

// Outcome classifies what happened to a single clipping during relocation.
type Outcome string

const (
	OutcomeInserted          Outcome = "inserted"
	OutcomeNotFound          Outcome = "not_found"
	OutcomeAmbiguousResolved Outcome = "ambiguous_resolved"
)

// Result pairs a clipping with its relocation outcome. Results are reported
// in the order the clippings were processed.
type Result struct {
	Clipping     Clipping
	Outcome      Outcome
	Document     string // spine document the span was found in, if any
	Alternatives int    // number of exact candidates when ambiguity was resolved
	Fuzzy        bool   // matched via the fuzzy fallback rather than exactly
}

// DocumentReport aggregates per-document counts for the final summary.
type DocumentReport struct {
	Document          string
	Inserted          int
	NotFound          int
	AmbiguousResolved int
	Failed            bool // document-level invariant failure, tree discarded
}

// StyleDirective carries the styling applied to every injected wrapper.
// Color is a validated hex string; notes always render with a fixed
// secondary style regardless of the highlight color.
type StyleDirective struct {
	Color string
	Kind  ClippingKind
}
