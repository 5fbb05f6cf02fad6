package relocate

import (
	"fmt"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

const noteStyle = "color: gray; font-style: italic; font-size: 90%;"

// Inject wraps the located span with styling markup. The span is
// translated through the index's offset map into per-text-node byte
// ranges; boundary text nodes are split at the exact offsets and each
// affected text run gets its own wrapper, so a highlight crossing a
// paragraph break produces one wrapper per paragraph and never a wrapper
// around block elements. Character content of the tree is unchanged:
// only wrappers and text-node splits are added.
//
// For a note clipping the wrappers carry the note body as a title
// attribute, and a visible note span is appended after the last wrapper.
// The note span is excluded from index rebuilds (see noteClass).
//
// A span the offset map cannot address is an internal invariant
// violation, returned as ErrMalformedOffset; the session treats it as
// fatal for the document.
func Inject(idx *Index, span Span, style entities.StyleDirective, note string) error {
	ranges, err := idx.nodeRanges(span.Start, span.End)
	if err != nil {
		return fmt.Errorf("injecting span [%d,%d): %w", span.Start, span.End, err)
	}

	var lastMark *html.Node
	for _, r := range ranges {
		mark, err := wrapTextRange(r, style.Color, note)
		if err != nil {
			return err
		}
		lastMark = mark
	}

	if note != "" {
		insertAfter(lastMark, noteSpan(note))
	}
	return nil
}

// wrapTextRange splits r.node at the range boundaries and wraps the
// middle piece in a highlight mark, preserving every original character.
func wrapTextRange(r nodeRange, color, note string) (*html.Node, error) {
	n := r.node
	parent := n.Parent
	if parent == nil {
		return nil, fmt.Errorf("text node without parent: %w", ErrMalformedOffset)
	}

	pre, mid, post := n.Data[:r.start], n.Data[r.start:r.end], n.Data[r.end:]

	mark := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Mark,
		Data:     "mark",
		Attr: []html.Attribute{
			{Key: "class", Val: highlightClass},
			{Key: "style", Val: "background-color: " + color + ";"},
		},
	}
	if note != "" {
		mark.Attr = append(mark.Attr, html.Attribute{Key: "title", Val: note})
	}
	mark.AppendChild(&html.Node{Type: html.TextNode, Data: mid})

	if pre != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: pre}, n)
	}
	parent.InsertBefore(mark, n)
	if post != "" {
		parent.InsertBefore(&html.Node{Type: html.TextNode, Data: post}, n)
	}
	parent.RemoveChild(n)

	return mark, nil
}

func noteSpan(note string) *html.Node {
	span := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Span,
		Data:     "span",
		Attr: []html.Attribute{
			{Key: "class", Val: noteClass},
			{Key: "style", Val: noteStyle},
		},
	}
	span.AppendChild(&html.Node{Type: html.TextNode, Data: " [R.N.: " + note + "] "})
	return span
}

func insertAfter(after, n *html.Node) {
	if after.NextSibling != nil {
		after.Parent.InsertBefore(n, after.NextSibling)
	} else {
		after.Parent.AppendChild(n)
	}
}

// StripInjected removes every wrapper and note span Inject added,
// hoisting wrapped text back into place. Re-flattening after a strip
// reproduces the pre-injection stream byte-for-byte.
func StripInjected(root *html.Node) {
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		c := n.FirstChild
		for c != nil {
			next := c.NextSibling
			if c.Type == html.ElementNode {
				switch {
				case hasClass(c, noteClass):
					n.RemoveChild(c)
				case hasClass(c, highlightClass):
					unwrap(n, c)
				default:
					walk(c)
				}
			} else {
				walk(c)
			}
			c = next
		}
	}
	walk(root)
}

// unwrap replaces wrapper with its children.
func unwrap(parent, wrapper *html.Node) {
	for wrapper.FirstChild != nil {
		child := wrapper.FirstChild
		wrapper.RemoveChild(child)
		parent.InsertBefore(child, wrapper)
	}
	parent.RemoveChild(wrapper)
}
