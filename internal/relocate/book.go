package relocate

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

// Document is one content document of a book, in spine order.
type Document struct {
	Name string
	Root *html.Node
}

// ApplyToBook relocates clippings across a book's spine. Each clipping is
// assigned to the first document whose text contains its excerpt
// (space-insensitively), then every document runs its own session on its
// own goroutine: documents share no state, so the only synchronization is
// the final ordered merge. Results come back in the original clipping
// order; reports in spine order. A document-level failure marks that
// document's report Failed and its clippings not-found; the caller must
// discard that document's tree.
func ApplyToBook(docs []Document, clips []entities.Clipping, style entities.StyleDirective, opts Options) ([]entities.Result, []entities.DocumentReport) {
	opts = opts.withDefaults()

	sessions := make([]*Session, len(docs))
	nospace := make([]string, len(docs))
	for i, doc := range docs {
		sessions[i] = NewSession(doc.Name, doc.Root, opts)
		nospace[i] = stripSpaces(opts.Normalizer.Normalize(sessions[i].idx.Flat()))
	}

	results := make([]entities.Result, len(clips))
	perDoc := make([][]int, len(docs)) // clipping indices per document
	for ci, clip := range clips {
		target := stripSpaces(opts.Normalizer.Normalize(clip.Text))
		assigned := false
		for di := range docs {
			if target != "" && strings.Contains(nospace[di], target) {
				perDoc[di] = append(perDoc[di], ci)
				assigned = true
				break
			}
		}
		if !assigned {
			results[ci] = entities.Result{Clipping: clip, Outcome: entities.OutcomeNotFound}
		}
	}

	reports := make([]entities.DocumentReport, len(docs))
	var g errgroup.Group
	if opts.MaxParallelDocs > 0 {
		g.SetLimit(opts.MaxParallelDocs)
	}

	for di := range docs {
		di := di
		g.Go(func() error {
			report := entities.DocumentReport{Document: docs[di].Name}
			docClips := make([]entities.Clipping, len(perDoc[di]))
			for i, ci := range perDoc[di] {
				docClips[i] = clips[ci]
			}

			docResults, err := sessions[di].Apply(docClips, style)
			if err != nil {
				// Invariant violation: no partial document may survive.
				report.Failed = true
				for _, ci := range perDoc[di] {
					results[ci] = entities.Result{Clipping: clips[ci], Outcome: entities.OutcomeNotFound}
				}
				reports[di] = report
				return nil
			}

			for i, res := range docResults {
				results[perDoc[di][i]] = res
				switch res.Outcome {
				case entities.OutcomeInserted:
					report.Inserted++
				case entities.OutcomeNotFound:
					report.NotFound++
				case entities.OutcomeAmbiguousResolved:
					report.AmbiguousResolved++
				}
			}
			reports[di] = report
			return nil
		})
	}
	g.Wait() //nolint:errcheck // per-document failures are captured in reports

	return results, reports
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}
