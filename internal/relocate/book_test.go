package relocate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

func TestApplyToBook_AssignsClippingsToSpineDocuments(t *testing.T) {
	docs := []Document{
		{Name: "ch1.xhtml", Root: parseHTML(t, "<html><body><p>The first chapter speaks of ships.</p></body></html>")},
		{Name: "ch2.xhtml", Root: parseHTML(t, "<html><body><p>The second chapter speaks of storms.</p></body></html>")},
	}
	clips := []entities.Clipping{
		highlight("speaks of storms."),
		highlight("speaks of ships."),
		highlight("appears in neither chapter"),
	}

	results, reports := ApplyToBook(docs, clips, yellowStyle(), testOptions())
	require.Len(t, results, 3)
	require.Len(t, reports, 2)

	assert.Equal(t, entities.OutcomeInserted, results[0].Outcome)
	assert.Equal(t, "ch2.xhtml", results[0].Document)
	assert.Equal(t, entities.OutcomeInserted, results[1].Outcome)
	assert.Equal(t, "ch1.xhtml", results[1].Document)
	assert.Equal(t, entities.OutcomeNotFound, results[2].Outcome)

	assert.Equal(t, 1, reports[0].Inserted)
	assert.Equal(t, 1, reports[1].Inserted)
	assert.False(t, reports[0].Failed)
}

func TestApplyToBook_ResultsKeepClippingOrder(t *testing.T) {
	docs := []Document{
		{Name: "a.xhtml", Root: parseHTML(t, "<html><body><p>alpha text lives here.</p></body></html>")},
		{Name: "b.xhtml", Root: parseHTML(t, "<html><body><p>beta text lives here.</p></body></html>")},
	}
	clips := []entities.Clipping{
		highlight("beta text"),
		highlight("alpha text"),
	}

	results, _ := ApplyToBook(docs, clips, yellowStyle(), testOptions())
	require.Len(t, results, 2)
	assert.Equal(t, "beta text", results[0].Clipping.Text)
	assert.Equal(t, "alpha text", results[1].Clipping.Text)
}

func TestApplyToBook_WrongBookAllNotFound(t *testing.T) {
	docs := []Document{
		{Name: "ch1.xhtml", Root: parseHTML(t, "<html><body><p>Unrelated novel entirely.</p></body></html>")},
	}
	clips := []entities.Clipping{
		highlight("a passage from some other book"),
		highlight("and another one from it too"),
	}

	results, reports := ApplyToBook(docs, clips, yellowStyle(), testOptions())
	for _, res := range results {
		assert.Equal(t, entities.OutcomeNotFound, res.Outcome)
	}
	assert.Equal(t, 0, reports[0].Inserted)
}

func TestApplyToBook_WhitespaceReflowAcrossAssignment(t *testing.T) {
	// The export reflowed the line break into a space; space-insensitive
	// assignment must still map the clipping to the right document.
	docs := []Document{
		{Name: "ch1.xhtml", Root: parseHTML(t, "<html><body><p>A sentence broken\nacross lines.</p></body></html>")},
	}
	clips := []entities.Clipping{highlight("sentence broken across lines.")}

	results, _ := ApplyToBook(docs, clips, yellowStyle(), testOptions())
	require.Len(t, results, 1)
	assert.Equal(t, entities.OutcomeInserted, results[0].Outcome)
}

func TestApplyToBook_ParallelLimitRespected(t *testing.T) {
	opts := testOptions()
	opts.MaxParallelDocs = 1

	docs := []Document{
		{Name: "ch1.xhtml", Root: parseHTML(t, "<html><body><p>one fish.</p></body></html>")},
		{Name: "ch2.xhtml", Root: parseHTML(t, "<html><body><p>two fish.</p></body></html>")},
		{Name: "ch3.xhtml", Root: parseHTML(t, "<html><body><p>red fish.</p></body></html>")},
	}
	clips := []entities.Clipping{highlight("one fish."), highlight("two fish."), highlight("red fish.")}

	results, reports := ApplyToBook(docs, clips, yellowStyle(), opts)
	require.Len(t, reports, 3)
	for _, res := range results {
		assert.Equal(t, entities.OutcomeInserted, res.Outcome)
	}
}
