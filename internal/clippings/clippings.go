package clippings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

// ParseFile dispatches on the file extension (.txt or .html) and returns
// the highlights in reading order plus any notes that could not be paired.
func ParseFile(path string) (clips, unmatched []entities.Clipping, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening clippings file: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt":
		return NewParser().Parse(f)
	case ".html", ".htm":
		return ParseHTML(f)
	default:
		return nil, nil, fmt.Errorf("unsupported clippings format %q (want .txt or .html)", filepath.Ext(path))
	}
}

// Count is the parse-only preview: the number of highlights a clippings
// file holds, with no side effects.
func Count(path string) (int, error) {
	clips, _, err := ParseFile(path)
	if err != nil {
		return 0, err
	}
	return len(clips), nil
}
