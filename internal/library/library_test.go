package library

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestFindEpubs_RecursiveSortedSkipsHidden(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "zeta.epub"))
	touch(t, filepath.Join(dir, "sub", "Alpha.epub"))
	touch(t, filepath.Join(dir, ".hidden", "ghost.epub"))
	touch(t, filepath.Join(dir, ".dot.epub"))
	touch(t, filepath.Join(dir, "notes.txt"))

	epubs, err := FindEpubs(dir)
	require.NoError(t, err)
	require.Len(t, epubs, 2)
	assert.Equal(t, "Alpha.epub", epubs[0].Name)
	assert.Equal(t, "zeta.epub", epubs[1].Name)
}

func TestFindEpubs_EmptyDirErrors(t *testing.T) {
	_, err := FindEpubs(t.TempDir())
	assert.Error(t, err)
}

const clippingsFixture = `Moby Dick
- Your Highlight on page 1 | Location 10-12 | Added on Tuesday, April 15, 2025 10:16:21 PM

call me ishmael
==========
`

func TestFindClippings_SmartMatchKeepsSimilarNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Moby Dick.txt"), []byte(clippingsFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Unrelated Cookbook.txt"), []byte(clippingsFixture), 0o644))

	files, err := FindClippings(dir, "Moby Dick", true, false)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "Moby Dick.txt", files[0].Name)
}

func TestFindClippings_PrefetchSortsByCount(t *testing.T) {
	dir := t.TempDir()
	double := clippingsFixture + `Moby Dick
- Your Highlight on page 2 | Location 20-22 | Added on Tuesday, April 15, 2025 10:18:21 PM

the whale surfaced
==========
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "small.txt"), []byte(clippingsFixture), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "big.txt"), []byte(double), 0o644))

	files, err := FindClippings(dir, "", false, true)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "big.txt", files[0].Name)
	assert.Equal(t, 2, files[0].Count)
	assert.Equal(t, 1, files[1].Count)
}

func TestFindClippings_NoCandidatesErrors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "image.png"), []byte("x"), 0o644))

	_, err := FindClippings(dir, "Anything", false, false)
	assert.Error(t, err)
}
