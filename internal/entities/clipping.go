package entities

import "time"

// ClippingKind distinguishes the two record types a Kindle export contains.
type ClippingKind string

const (
	ClippingKindHighlight ClippingKind = "highlight"
	ClippingKindNote      ClippingKind = "note"
)

// Location is the ordering token attached to every clipping, e.g. the
// "Location 64-64" part of a metadata line. Notes carry a single position,
// so Start == End for them.
type Location struct {
	Start int
	End   int
}

// Before reports whether l precedes other in reading order.
func (l Location) Before(other Location) bool {
	if l.Start != other.Start {
		return l.Start < other.Start
	}
	return l.End < other.End
}

// Clipping is one highlight or note parsed from a Kindle export.
// Immutable once parsed: the relocation engine only reads it.
type Clipping struct {
	Title    string
	Kind     ClippingKind
	Text     string // excerpt for highlights, body for notes
	Note     string // note body attached to a highlight, if any
	Color    string // color name from the export metadata, if present
	Location Location
	AddedAt  time.Time
}

// IsHighlight reports whether the clipping is a highlight record.
func (c Clipping) IsHighlight() bool {
	return c.Kind == ClippingKindHighlight
}
