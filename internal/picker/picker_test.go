package picker

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestModel_NavigationAndSelection(t *testing.T) {
	m := model{title: "Pick", items: []string{"a", "b", "c"}}

	next, _ := m.Update(keyMsg("j"))
	next, _ = next.Update(keyMsg("j"))
	next, _ = next.Update(keyMsg("k"))
	next, _ = next.Update(keyMsg("enter"))

	got := next.(model)
	assert.True(t, got.chosen)
	assert.Equal(t, 1, got.selected)
}

func TestModel_ClampsAtEdges(t *testing.T) {
	m := model{items: []string{"a", "b"}}

	next, _ := m.Update(keyMsg("k"))
	assert.Equal(t, 0, next.(model).selected)

	next, _ = next.Update(keyMsg("j"))
	next, _ = next.Update(keyMsg("j"))
	assert.Equal(t, 1, next.(model).selected)
}

func TestModel_Cancel(t *testing.T) {
	m := model{items: []string{"a", "b"}}
	next, _ := m.Update(keyMsg("q"))
	assert.True(t, next.(model).cancelled)
}

func TestModel_ViewListsNumberedItems(t *testing.T) {
	m := model{title: "Pick one", items: []string{"first.epub", "second.epub"}}
	view := m.View()
	assert.Contains(t, view, "[0] first.epub")
	assert.Contains(t, view, "[1] second.epub")
}

func TestChoose_SingleCandidateShortCircuits(t *testing.T) {
	i, err := Choose("Pick", []string{"only"})
	require.NoError(t, err)
	assert.Equal(t, 0, i)
}

func TestChoose_EmptyErrors(t *testing.T) {
	_, err := Choose("Pick", nil)
	assert.Error(t, err)
}
