package relocate

import (
	"errors"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// ErrMalformedOffset signals an invariant violation in the offset map or
// a span that falls outside it. It is fatal for the current document only.
var ErrMalformedOffset = errors.New("malformed offset mapping")

// noteClass marks injected note spans. Their text is presentation only and
// must never become part of the flattened stream, otherwise a rebuild of
// the index after injection would shift every consumed range.
const noteClass = "rk-note"

// highlightClass marks injected highlight wrappers.
const highlightClass = "rk-highlight"

// blockLevel lists elements whose boundary separates words in the
// flattened stream.
var blockLevel = map[string]bool{
	"address": true, "article": true, "aside": true, "blockquote": true,
	"br": true, "caption": true, "dd": true, "div": true, "dl": true,
	"dt": true, "figcaption": true, "figure": true, "footer": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"header": true, "hr": true, "li": true, "nav": true, "ol": true,
	"p": true, "pre": true, "section": true, "table": true, "td": true,
	"th": true, "tr": true, "ul": true,
}

// skipped lists subtrees that contribute no matchable text.
var skipped = map[string]bool{
	"head": true, "script": true, "style": true,
}

// segment maps a contiguous run of the flattened stream back to the text
// node it came from. A synthetic block-boundary space has node == nil.
type segment struct {
	flatStart int
	length    int
	node      *html.Node
}

// Index flattens a markup tree into a single addressable text stream plus
// an offset map back to the tree's text nodes. Build once, read only.
type Index struct {
	flat string
	segs []segment
}

// BuildIndex walks root's text-bearing nodes in document order and
// records, for every character, the text node it came from. Crossing a
// block-level element boundary inserts exactly one synthetic space so
// flattening never fuses words across paragraphs. Deterministic: the same
// tree always yields byte-identical output.
func BuildIndex(root *html.Node) *Index {
	idx := &Index{}
	var b strings.Builder
	pendingBoundary := false

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if n.Data == "" {
				return
			}
			if pendingBoundary && b.Len() > 0 {
				idx.segs = append(idx.segs, segment{flatStart: b.Len(), length: 1})
				b.WriteByte(' ')
			}
			pendingBoundary = false
			idx.segs = append(idx.segs, segment{flatStart: b.Len(), length: len(n.Data), node: n})
			b.WriteString(n.Data)
			return

		case html.ElementNode:
			if skipped[n.Data] || hasClass(n, noteClass) {
				return
			}
			if blockLevel[n.Data] {
				pendingBoundary = true
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
			if blockLevel[n.Data] {
				pendingBoundary = true
			}
			return

		case html.DocumentNode:
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				walk(c)
			}
		}
	}

	walk(root)
	idx.flat = b.String()
	return idx
}

// Flat returns the flattened text stream.
func (idx *Index) Flat() string {
	return idx.flat
}

// nodeRange addresses a byte range inside one text node.
type nodeRange struct {
	node  *html.Node
	start int
	end   int
}

// nodeRanges translates a flat [start,end) span into per-text-node byte
// ranges, skipping synthetic boundary spaces. Returns ErrMalformedOffset
// if the span falls outside the stream or touches no text node.
func (idx *Index) nodeRanges(start, end int) ([]nodeRange, error) {
	if start < 0 || end > len(idx.flat) || start >= end {
		return nil, ErrMalformedOffset
	}

	first := sort.Search(len(idx.segs), func(i int) bool {
		return idx.segs[i].flatStart+idx.segs[i].length > start
	})

	var ranges []nodeRange
	for i := first; i < len(idx.segs) && idx.segs[i].flatStart < end; i++ {
		seg := idx.segs[i]
		if seg.node == nil {
			continue
		}
		lo := max(start, seg.flatStart) - seg.flatStart
		hi := min(end, seg.flatStart+seg.length) - seg.flatStart
		if lo < hi {
			ranges = append(ranges, nodeRange{node: seg.node, start: lo, end: hi})
		}
	}

	if len(ranges) == 0 {
		return nil, ErrMalformedOffset
	}
	return ranges, nil
}

func hasClass(n *html.Node, class string) bool {
	for _, attr := range n.Attr {
		if attr.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(attr.Val) {
			if c == class {
				return true
			}
		}
	}
	return false
}
