package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gallego-posada/re-kindle/internal/entities"
)

// WriteLog writes the per-book plain-text relocation log: one ✔/✘ line
// per clipping so missed highlights can be located by hand.
func WriteLog(logsDir, bookName string, results []entities.Result) (string, error) {
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		return "", fmt.Errorf("creating logs dir: %w", err)
	}

	var b strings.Builder
	for _, res := range results {
		switch res.Outcome {
		case entities.OutcomeNotFound:
			fmt.Fprintf(&b, "✘ Not found: '%s'\n", res.Clipping.Text)
		case entities.OutcomeAmbiguousResolved:
			fmt.Fprintf(&b, "✔ Found (of %d candidates): '%s' in %s\n", res.Alternatives, res.Clipping.Text, res.Document)
		default:
			fmt.Fprintf(&b, "✔ Found: '%s' in %s\n", res.Clipping.Text, res.Document)
		}
	}

	path := filepath.Join(logsDir, bookName+"_log.txt")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("writing log: %w", err)
	}
	return path, nil
}
