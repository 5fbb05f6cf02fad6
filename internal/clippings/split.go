package clippings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gallego-posada/re-kindle/internal/utils"
)

// Split breaks a combined My Clippings.txt export into one file per book
// title inside destDir, preserving record order. Returns the number of
// records written per output file.
func Split(path, destDir string) (map[string]int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading clippings file: %w", err)
	}

	text := strings.TrimPrefix(string(raw), "\uFEFF")

	byTitle := make(map[string][]string)
	var titleOrder []string

	for _, block := range strings.Split(text, entrySeparator) {
		var lines []string
		for _, l := range strings.Split(block, "\n") {
			if s := strings.TrimSpace(l); s != "" {
				lines = append(lines, s)
			}
		}
		if len(lines) < 3 {
			continue
		}

		title := utils.SanitizeFilename(lines[0])
		if _, seen := byTitle[title]; !seen {
			titleOrder = append(titleOrder, title)
		}
		byTitle[title] = append(byTitle[title], strings.Join(lines, "\n"))
	}

	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating clippings dir: %w", err)
	}

	counts := make(map[string]int, len(byTitle))
	for _, title := range titleOrder {
		records := byTitle[title]
		var b strings.Builder
		for _, rec := range records {
			b.WriteString(rec)
			b.WriteString("\n" + entrySeparator + "\n")
		}

		name := filepath.Join(destDir, title+".txt")
		if err := os.WriteFile(name, []byte(b.String()), 0o644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
		counts[name] = len(records)
	}

	return counts, nil
}
