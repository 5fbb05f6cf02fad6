// Package clippings parses Kindle highlight exports, in both the
// plain-text "My Clippings.txt" format and the HTML notebook export.
package clippings

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

const entrySeparator = "=========="

// Regex patterns for parsing metadata lines
var (
	// Matches both export dialects:
	// "- Your Highlight on page 8 | Location 64-64 | Added on Tuesday, April 15, 2025 10:16:21 PM"
	// "Highlight (yellow) - Page 8 · Location 64"
	// "- Your Note on page 31 | Location 307 | Added on Tuesday, April 15, 2025 11:33:26 PM"
	metadataPattern = regexp.MustCompile(`(?i)^(?:- Your )?(Highlight|Note)\s*(?:\(([^)]+)\))?.*?Location (\d+)(?:-(\d+))?(?:.*?Added on (.+))?$`)

	// Date layouts observed in the wild, tried in order
	dateLayouts = []string{
		"Monday, January 2, 2006 3:04:05 PM",
		"Monday, January 2, 2006 15:04:05",
		"Monday, 2 January 2006 3:04:05 PM",
		"Monday, 2 January 2006 15:04:05",
	}
)

// Parser parses the plain-text My Clippings format.
type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse reads a clippings export and returns the highlights in reading
// order (ascending location), with note records folded into the highlight
// they annotate. Notes that match no highlight are returned separately so
// the caller can log them.
func (p *Parser) Parse(r io.Reader) (clips, unmatched []entities.Clipping, err error) {
	all, err := p.parseRecords(r)
	if err != nil {
		return nil, nil, err
	}
	return pairNotes(all)
}

// parseRecords splits the export on the record separator and parses each
// block, skipping malformed ones.
func (p *Parser) parseRecords(r io.Reader) ([]entities.Clipping, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var records []entities.Clipping
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		if clip, ok := parseRecord(current); ok {
			records = append(records, clip)
		}
		current = nil
	}

	for scanner.Scan() {
		line := strings.TrimPrefix(scanner.Text(), "\uFEFF")
		if strings.TrimSpace(line) == entrySeparator {
			flush()
			continue
		}
		current = append(current, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading clippings: %w", err)
	}
	flush()

	return records, nil
}

// parseRecord handles one block: title line, metadata line, then content.
func parseRecord(lines []string) (entities.Clipping, bool) {
	var nonEmpty []string
	for _, l := range lines {
		if s := strings.TrimSpace(l); s != "" {
			nonEmpty = append(nonEmpty, s)
		}
	}
	if len(nonEmpty) < 3 {
		return entities.Clipping{}, false
	}

	title := nonEmpty[0]
	meta, ok := parseMetadata(nonEmpty[1])
	if !ok {
		return entities.Clipping{}, false
	}
	content := strings.TrimSpace(strings.Join(nonEmpty[2:], "\n"))
	if content == "" {
		return entities.Clipping{}, false
	}

	clip := meta
	clip.Title = title
	clip.Text = content
	return clip, true
}

func parseMetadata(line string) (entities.Clipping, bool) {
	m := metadataPattern.FindStringSubmatch(line)
	if m == nil {
		return entities.Clipping{}, false
	}

	kind := entities.ClippingKindHighlight
	if strings.EqualFold(m[1], "note") {
		kind = entities.ClippingKindNote
	}

	start, _ := strconv.Atoi(m[3])
	end := start
	if m[4] != "" {
		end, _ = strconv.Atoi(m[4])
	}

	return entities.Clipping{
		Kind:     kind,
		Color:    strings.ToLower(m[2]),
		Location: entities.Location{Start: start, End: end},
		AddedAt:  parseDate(m[5]),
	}, true
}

func parseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

// pairNotes attaches each note to the latest highlight whose location end
// equals the note's position, then returns highlights sorted by location
// so downstream processing sees reading order.
func pairNotes(all []entities.Clipping) (clips, unmatched []entities.Clipping, err error) {
	var highlights, notes []entities.Clipping
	for _, c := range all {
		if c.IsHighlight() {
			highlights = append(highlights, c)
		} else {
			notes = append(notes, c)
		}
	}

	for _, note := range notes {
		matched := false
		for i := len(highlights) - 1; i >= 0; i-- {
			if highlights[i].Title == note.Title && highlights[i].Location.End == note.Location.Start {
				highlights[i].Note = note.Text
				matched = true
				break
			}
		}
		if !matched {
			unmatched = append(unmatched, note)
		}
	}

	sort.SliceStable(highlights, func(i, j int) bool {
		return highlights[i].Location.Before(highlights[j].Location)
	})

	return highlights, unmatched, nil
}
