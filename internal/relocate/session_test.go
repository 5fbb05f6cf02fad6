package relocate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

func testOptions() Options {
	return Options{Normalizer: Normalizer{StripFootnotes: true}}
}

func highlight(text string) entities.Clipping {
	return entities.Clipping{Kind: entities.ClippingKindHighlight, Text: text}
}

func TestSession_ZeroClippingsRoundTrip(t *testing.T) {
	src := "<html><body><p>Untouched content.</p></body></html>"
	root := parseHTML(t, src)
	before := BuildIndex(root).Flat()

	sess := NewSession("ch1.xhtml", root, testOptions())
	results, err := sess.Apply(nil, yellowStyle())
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.Equal(t, before, BuildIndex(root).Flat())
}

func TestSession_InsertsAndReports(t *testing.T) {
	root := parseHTML(t, "<html><body><p>Before. This is a test sentence. After.</p></body></html>")
	sess := NewSession("ch1.xhtml", root, testOptions())

	results, err := sess.Apply([]entities.Clipping{highlight("this is a test sentence.")}, yellowStyle())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, entities.OutcomeInserted, results[0].Outcome)
	assert.Equal(t, "ch1.xhtml", results[0].Document)

	assert.Contains(t, renderHTML(t, root), ">This is a test sentence.</mark>")
}

func TestSession_NoOverlapAcrossClippings(t *testing.T) {
	root := parseHTML(t, "<html><body><p>repeat me</p><p>repeat me</p><p>repeat me</p></body></html>")
	sess := NewSession("ch1.xhtml", root, testOptions())

	clips := []entities.Clipping{highlight("repeat me"), highlight("repeat me"), highlight("repeat me")}
	results, err := sess.Apply(clips, yellowStyle())
	require.NoError(t, err)

	spans := sess.consumed.All()
	require.Len(t, spans, 3)
	for i := 1; i < len(spans); i++ {
		assert.GreaterOrEqual(t, spans[i][0], spans[i-1][1], "injected spans overlap")
	}
	for _, res := range results {
		assert.NotEqual(t, entities.OutcomeNotFound, res.Outcome)
	}
	assert.Equal(t, 3, strings.Count(renderHTML(t, root), "<mark"))
}

func TestSession_AmbiguityFlagged(t *testing.T) {
	root := parseHTML(t, "<html><body><p>twice over</p><p>some middle prose sits here</p><p>twice over</p></body></html>")
	sess := NewSession("ch1.xhtml", root, testOptions())

	results, err := sess.Apply([]entities.Clipping{highlight("twice over")}, yellowStyle())
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, entities.OutcomeAmbiguousResolved, results[0].Outcome)
	assert.Equal(t, 2, results[0].Alternatives)
}

func TestSession_NotFoundDoesNotAbort(t *testing.T) {
	root := parseHTML(t, "<html><body><p>Only this text exists.</p></body></html>")
	sess := NewSession("ch1.xhtml", root, testOptions())

	clips := []entities.Clipping{
		highlight("nothing like the document at all, truly"),
		highlight("only this text exists."),
	}
	results, err := sess.Apply(clips, yellowStyle())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, entities.OutcomeNotFound, results[0].Outcome)
	assert.Equal(t, entities.OutcomeInserted, results[1].Outcome)
}

func TestSession_Deterministic(t *testing.T) {
	src := "<html><body><p>alpha beta</p><p>alpha beta</p><p>gamma delta epsilon.</p></body></html>"
	clips := []entities.Clipping{
		highlight("alpha beta"),
		highlight("gamma delta epsilon."),
		highlight("alpha beta"),
	}

	run := func() ([]entities.Result, string) {
		root := parseHTML(t, src)
		sess := NewSession("ch1.xhtml", root, testOptions())
		results, err := sess.Apply(clips, yellowStyle())
		require.NoError(t, err)
		return results, renderHTML(t, root)
	}

	res1, tree1 := run()
	res2, tree2 := run()
	assert.Equal(t, res1, res2)
	assert.Equal(t, tree1, tree2)
}

func TestSession_SingleUse(t *testing.T) {
	sess := NewSession("ch1.xhtml", parseHTML(t, "<html><body><p>x</p></body></html>"), testOptions())
	_, err := sess.Apply(nil, yellowStyle())
	require.NoError(t, err)
	_, err = sess.Apply(nil, yellowStyle())
	assert.Error(t, err)
}

func TestSession_NotePassedThrough(t *testing.T) {
	root := parseHTML(t, "<html><body><p>A line worth remembering forever.</p></body></html>")
	sess := NewSession("ch1.xhtml", root, testOptions())

	clip := highlight("worth remembering")
	clip.Note = "check the sequel"
	_, err := sess.Apply([]entities.Clipping{clip}, yellowStyle())
	require.NoError(t, err)

	out := renderHTML(t, root)
	assert.Contains(t, out, `title="check the sequel"`)
	assert.Contains(t, out, "[R.N.: check the sequel]")
}
