package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/gallego-posada/re-kindle/internal/config"
	"github.com/gallego-posada/re-kindle/internal/entities"
	"github.com/gallego-posada/re-kindle/internal/history"
)

// HistoryCommand lists past relocation runs from the local database.
type HistoryCommand struct {
	DatabasePath string
	Limit        int
	Verbose      bool
}

func NewHistoryCommand() *HistoryCommand {
	return &HistoryCommand{}
}

func (cmd *HistoryCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)

	cfg := config.NewConfig()
	fs.StringVar(&cmd.DatabasePath, "db", cfg.Database.Path, "Path to the run-history database")
	fs.IntVar(&cmd.Limit, "limit", 10, "Maximum number of runs to list")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Also list per-clipping outcomes")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s history [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List past relocation runs, newest first.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *HistoryCommand) Run() error {
	store, err := history.New(cmd.DatabasePath)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet")
		return nil
	}

	for _, run := range runs {
		fmt.Printf("%s  %s  %d inserted / %d ambiguous / %d not found\n",
			run.StartedAt.Format("2006-01-02 15:04"), run.BookTitle,
			run.Inserted, run.Ambiguous, run.NotFound)
		if run.FailedDocs > 0 {
			fmt.Printf("    ⚠️  %d documents failed\n", run.FailedDocs)
		}
		if cmd.Verbose {
			for _, res := range run.Results {
				if res.Outcome == entities.OutcomeNotFound {
					fmt.Printf("    ✘ '%s'\n", res.Excerpt)
				}
			}
		}
	}
	return nil
}
