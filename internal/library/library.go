// Package library locates candidate EPUB and clippings files on disk.
package library

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gallego-posada/re-kindle/internal/clippings"
	"github.com/gallego-posada/re-kindle/internal/relocate"
)

// titleMatchCutoff is the minimum similarity between a book title and a
// clippings filename for smart matching to keep the candidate.
const titleMatchCutoff = 0.5

// maxTitleMatches caps how many smart-matched candidates are offered.
const maxTitleMatches = 3

// Epub is one discovered EPUB file.
type Epub struct {
	Name string // filename without directory
	Path string
}

// FindEpubs lists every .epub under dir recursively, skipping hidden
// files and directories, sorted case-insensitively by name.
func FindEpubs(dir string) ([]Epub, error) {
	var out []Epub
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(d.Name()), ".epub") {
			out = append(out, Epub{Name: d.Name(), Path: p})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no EPUB files found in %s", dir)
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Name) < strings.ToLower(out[j].Name)
	})
	return out, nil
}

// ClippingsFile is one discovered clippings export, optionally with a
// pre-fetched highlight count.
type ClippingsFile struct {
	Name  string
	Path  string
	Count int // -1 when not pre-fetched or unparsable
}

// FindClippings lists clippings exports in dir. With smartMatch, only
// files whose names resemble bookTitle are kept (best three). With
// prefetch, each candidate's highlight count is parsed up front and the
// list is sorted by descending count, so the most relevant file comes
// first.
func FindClippings(dir, bookTitle string, smartMatch, prefetch bool) ([]ClippingsFile, error) {
	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	var out []ClippingsFile
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext != ".txt" && ext != ".html" && ext != ".htm" {
			continue
		}
		out = append(out, ClippingsFile{Name: e.Name(), Path: filepath.Join(dir, e.Name()), Count: -1})
	}

	if smartMatch {
		out = closestByTitle(out, bookTitle)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no matching clippings files found in %s for %q", dir, bookTitle)
	}

	if prefetch {
		for i := range out {
			if n, err := clippings.Count(out[i].Path); err == nil {
				out[i].Count = n
			}
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].Count > out[j].Count
		})
	}

	return out, nil
}

// closestByTitle keeps the candidates most similar to the book title,
// best first.
func closestByTitle(files []ClippingsFile, title string) []ClippingsFile {
	type scored struct {
		file ClippingsFile
		sim  float64
	}

	var kept []scored
	for _, f := range files {
		base := strings.TrimSuffix(f.Name, filepath.Ext(f.Name))
		sim := relocate.Similarity(strings.ToLower(base), strings.ToLower(title))
		if sim >= titleMatchCutoff {
			kept = append(kept, scored{file: f, sim: sim})
		}
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].sim > kept[j].sim
	})
	if len(kept) > maxTitleMatches {
		kept = kept[:maxTitleMatches]
	}

	out := make([]ClippingsFile, len(kept))
	for i, s := range kept {
		out[i] = s.file
	}
	return out
}
