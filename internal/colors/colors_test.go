package colors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_PresetName(t *testing.T) {
	hex, err := Resolve("yellow")
	require.NoError(t, err)
	assert.Equal(t, "#fff7aeea", hex)
}

func TestResolve_PresetNameCaseInsensitive(t *testing.T) {
	hex, err := Resolve("Dark-Gray")
	require.NoError(t, err)
	assert.Equal(t, "#777777C9", hex)
}

func TestResolve_EmptyUsesDefault(t *testing.T) {
	hex, err := Resolve("")
	require.NoError(t, err)
	assert.Equal(t, Known[DefaultName], hex)
}

func TestResolve_LiteralHex(t *testing.T) {
	for _, input := range []string{"#abc", "#aabbcc", "#aabbccdd"} {
		hex, err := Resolve(input)
		require.NoError(t, err, input)
		assert.Equal(t, input, hex)
	}
}

func TestResolve_Invalid(t *testing.T) {
	for _, input := range []string{"chartreuse", "#zzz", "fff7ae", "#12345"} {
		_, err := Resolve(input)
		assert.Error(t, err, input)
	}
}

func TestNames_StableOrder(t *testing.T) {
	first := Names()
	second := Names()
	assert.Equal(t, first, second)
	assert.Contains(t, first, "yellow")
	assert.Len(t, first, len(Known))
}
