package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gallego-posada/re-kindle/internal/clippings"
	"github.com/gallego-posada/re-kindle/internal/colors"
	"github.com/gallego-posada/re-kindle/internal/config"
	"github.com/gallego-posada/re-kindle/internal/entities"
	"github.com/gallego-posada/re-kindle/internal/epub"
	"github.com/gallego-posada/re-kindle/internal/history"
	"github.com/gallego-posada/re-kindle/internal/library"
	"github.com/gallego-posada/re-kindle/internal/picker"
	"github.com/gallego-posada/re-kindle/internal/relocate"
)

// ProcessCommand re-inserts the highlights of a clippings export into the
// source EPUB and writes the highlighted copy.
type ProcessCommand struct {
	EpubPath      string
	EpubDir       string
	ClippingsPath string
	ClippingsDir  string
	Color         string
	SmartMatch    bool
	NoPrefetch    bool
	DatabasePath  string
	DryRun        bool
	Verbose       bool

	cfg *config.Config
}

func NewProcessCommand() *ProcessCommand {
	return &ProcessCommand{cfg: config.NewConfig()}
}

func (cmd *ProcessCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("process", flag.ExitOnError)

	fs.StringVar(&cmd.EpubPath, "epub", "", "Path to a specific EPUB file")
	fs.StringVar(&cmd.EpubDir, "epub-dir", "", "Directory to scan for EPUB files (interactive selection)")
	fs.StringVar(&cmd.ClippingsPath, "clippings", "", "Path to a specific clippings file (.txt or .html)")
	fs.StringVar(&cmd.ClippingsDir, "clippings-dir", cmd.cfg.ClippingsDir, "Directory of per-book clippings files")
	fs.StringVar(&cmd.Color, "color", cmd.cfg.Highlight.Color, "Highlight color: preset name or hex code")
	fs.BoolVar(&cmd.SmartMatch, "smart-match", false, "Only list clippings files whose names resemble the EPUB title")
	fs.BoolVar(&cmd.NoPrefetch, "no-prefetch", false, "Skip pre-fetching clipping counts during selection")
	fs.StringVar(&cmd.DatabasePath, "db", cmd.cfg.Database.Path, "Path to the run-history database")
	fs.BoolVar(&cmd.DryRun, "dry-run", false, "Relocate highlights but write nothing to disk")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Print every clipping outcome, not just the summary")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s process [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Re-insert Kindle highlights and notes into the source EPUB.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  # Pin both files explicitly:\n")
		fmt.Fprintf(os.Stderr, "  %s process -epub book.epub -clippings \"My Clippings.txt\"\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  # Browse a library and pick interactively, green highlights:\n")
		fmt.Fprintf(os.Stderr, "  %s process -epub-dir ~/Books -smart-match -color green\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.EpubPath == "" && cmd.EpubDir == "" {
		return fmt.Errorf("either -epub or -epub-dir must be provided")
	}
	return nil
}

func (cmd *ProcessCommand) Run() error {
	hex, err := colors.Resolve(cmd.Color)
	if err != nil {
		return err
	}

	epubPath, err := cmd.resolveEpub()
	if err != nil {
		return err
	}
	bookName := strings.TrimSuffix(filepath.Base(epubPath), filepath.Ext(epubPath))
	fmt.Printf("📖 Processing book '%s'\n", bookName)

	clipsPath, err := cmd.resolveClippings(bookName)
	if err != nil {
		return err
	}

	clips, unmatchedNotes, err := clippings.ParseFile(clipsPath)
	if err != nil {
		return fmt.Errorf("failed to parse clippings: %w", err)
	}
	if len(clips) == 0 {
		fmt.Println("No highlights found in clippings file")
		return nil
	}
	fmt.Printf("Found %d highlights in '%s'\n", len(clips), filepath.Base(clipsPath))
	for _, note := range unmatchedNotes {
		fmt.Printf("⚠️  Note at location %d could not be paired: '%s'\n", note.Location.Start, note.Text)
	}

	book, err := epub.Open(epubPath)
	if err != nil {
		return err
	}

	startedAt := time.Now().UTC()
	results, reports := cmd.relocateAll(book, clips, hex)

	// A document that tripped an internal invariant must come back
	// pristine: partial mutations never reach the output container.
	failedDocs := 0
	for _, report := range reports {
		if !report.Failed {
			continue
		}
		failedDocs++
		fmt.Printf("⚠️  Document %s failed and was left unmodified\n", report.Document)
		if doc := findDocument(book, report.Document); doc != nil {
			if err := doc.Revert(); err != nil {
				return err
			}
		}
	}

	cmd.printSummary(results, reports)

	if cmd.DryRun {
		fmt.Println("\nDRY RUN - nothing written")
		return nil
	}

	outPath := filepath.Join(cmd.cfg.ProcessedDir, bookName+".epub")
	if err := book.Write(outPath); err != nil {
		return err
	}
	fmt.Printf("\n💾 Highlighted EPUB saved to '%s'\n", outPath)

	logPath, err := history.WriteLog(cmd.cfg.LogsDir, bookName, results)
	if err != nil {
		return err
	}
	fmt.Printf("📄 Log saved to '%s'\n", logPath)

	return cmd.recordRun(bookName, epubPath, clipsPath, hex, startedAt, results, failedDocs)
}

func (cmd *ProcessCommand) resolveEpub() (string, error) {
	if cmd.EpubPath != "" {
		if _, err := os.Stat(cmd.EpubPath); err != nil {
			return "", fmt.Errorf("EPUB file not found: %s", cmd.EpubPath)
		}
		return cmd.EpubPath, nil
	}

	epubs, err := library.FindEpubs(cmd.EpubDir)
	if err != nil {
		return "", err
	}
	names := make([]string, len(epubs))
	for i, e := range epubs {
		names[i] = e.Name
	}
	choice, err := picker.Choose("Select your source EPUB", names)
	if err != nil {
		return "", err
	}
	return epubs[choice].Path, nil
}

func (cmd *ProcessCommand) resolveClippings(bookName string) (string, error) {
	if cmd.ClippingsPath != "" {
		if _, err := os.Stat(cmd.ClippingsPath); err != nil {
			return "", fmt.Errorf("clippings file not found: %s", cmd.ClippingsPath)
		}
		return cmd.ClippingsPath, nil
	}

	files, err := library.FindClippings(cmd.ClippingsDir, bookName, cmd.SmartMatch, !cmd.NoPrefetch)
	if err != nil {
		return "", err
	}
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
		if f.Count >= 0 {
			names[i] = fmt.Sprintf("%s [%d highlights]", f.Name, f.Count)
		}
	}
	choice, err := picker.Choose("Select your clippings file", names)
	if err != nil {
		return "", err
	}
	return files[choice].Path, nil
}

func (cmd *ProcessCommand) relocateAll(book *epub.Book, clips []entities.Clipping, hex string) ([]entities.Result, []entities.DocumentReport) {
	parsable := book.Parsable()
	docs := make([]relocate.Document, len(parsable))
	for i, d := range parsable {
		docs[i] = relocate.Document{Name: d.Name, Root: d.Root}
	}

	style := entities.StyleDirective{Color: hex, Kind: entities.ClippingKindHighlight}
	opts := relocate.Options{
		Normalizer:        relocate.Normalizer{StripFootnotes: cmd.cfg.Matching.StripFootnotes},
		FuzzyThreshold:    cmd.cfg.Matching.FuzzyThreshold,
		FuzzyWindowBudget: cmd.cfg.Matching.FuzzyWindowBudget,
		MaxParallelDocs:   cmd.cfg.Matching.MaxParallelDocs,
	}
	return relocate.ApplyToBook(docs, clips, style, opts)
}

func (cmd *ProcessCommand) printSummary(results []entities.Result, reports []entities.DocumentReport) {
	inserted, notFound, ambiguous := 0, 0, 0
	for _, res := range results {
		switch res.Outcome {
		case entities.OutcomeInserted:
			inserted++
		case entities.OutcomeAmbiguousResolved:
			ambiguous++
		case entities.OutcomeNotFound:
			notFound++
		}
	}

	fmt.Printf("\n✅ Done - %d/%d highlights applied", inserted+ambiguous, len(results))
	if ambiguous > 0 {
		fmt.Printf(" (%d resolved among repeated text - verify manually)", ambiguous)
	}
	fmt.Println()

	if cmd.Verbose {
		for _, report := range reports {
			fmt.Printf("  %s: %d inserted, %d ambiguous, %d not found\n",
				report.Document, report.Inserted, report.AmbiguousResolved, report.NotFound)
		}
	}

	if notFound > 0 {
		fmt.Printf("\n⚠️  Did not locate %d highlights:\n", notFound)
		for _, res := range results {
			if res.Outcome == entities.OutcomeNotFound {
				fmt.Printf("  ✘ '%s'\n", res.Clipping.Text)
			}
		}
	}
}

func (cmd *ProcessCommand) recordRun(bookName, epubPath, clipsPath, hex string, startedAt time.Time, results []entities.Result, failedDocs int) error {
	store, err := history.New(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	run := &entities.Run{
		BookTitle:     bookName,
		EpubPath:      epubPath,
		ClippingsPath: clipsPath,
		Color:         hex,
		FailedDocs:    failedDocs,
		StartedAt:     startedAt,
	}
	for _, res := range results {
		switch res.Outcome {
		case entities.OutcomeInserted:
			run.Inserted++
		case entities.OutcomeAmbiguousResolved:
			run.Ambiguous++
		case entities.OutcomeNotFound:
			run.NotFound++
		}
		run.Results = append(run.Results, entities.RunResult{
			Excerpt:  res.Clipping.Text,
			Note:     res.Clipping.Note,
			Outcome:  res.Outcome,
			Document: res.Document,
		})
	}
	return store.Record(run)
}

func findDocument(book *epub.Book, name string) *epub.Document {
	for _, d := range book.Documents {
		if d.Name == name {
			return d
		}
	}
	return nil
}
