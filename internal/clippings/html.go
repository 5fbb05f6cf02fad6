package clippings

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

// ParseHTML parses a Kindle HTML notebook export. Records are consecutive
// noteHeading/noteText div pairs below a single bookTitle; a note record
// annotates the highlight immediately preceding it.
func ParseHTML(r io.Reader) (clips, unmatched []entities.Clipping, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing clippings html: %w", err)
	}

	title := strings.TrimSpace(doc.Find("div.bookTitle").First().Text())

	var all []entities.Clipping
	var pendingMeta *entities.Clipping

	doc.Find("div.noteHeading, div.noteText").Each(func(_ int, s *goquery.Selection) {
		if s.HasClass("noteHeading") {
			if meta, ok := parseMetadata(strings.TrimSpace(s.Text())); ok {
				meta.Title = title
				pendingMeta = &meta
			} else {
				pendingMeta = nil
			}
			return
		}
		if pendingMeta == nil {
			return
		}
		clip := *pendingMeta
		clip.Text = strings.TrimSpace(s.Text())
		pendingMeta = nil
		if clip.Text != "" {
			all = append(all, clip)
		}
	})

	// The notebook export lists records in location order; a note follows
	// the highlight it was attached to.
	for i := 1; i < len(all); i++ {
		if all[i].Location.Before(all[i-1].Location) {
			return nil, nil, fmt.Errorf("clippings not ordered by location at record %d; note pairing would be unreliable", i)
		}
	}

	var highlights []entities.Clipping
	for i, c := range all {
		if c.IsHighlight() {
			highlights = append(highlights, c)
			continue
		}
		if i > 0 && all[i-1].IsHighlight() {
			highlights[len(highlights)-1].Note = c.Text
		} else {
			unmatched = append(unmatched, c)
		}
	}

	return highlights, unmatched, nil
}
