package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/gallego-posada/re-kindle/internal/clippings"
	"github.com/gallego-posada/re-kindle/internal/config"
)

// SplitCommand breaks a combined My Clippings.txt export into per-book
// files inside the clippings library.
type SplitCommand struct {
	ClippingsPath string
	DestDir       string

	cfg *config.Config
}

func NewSplitCommand() *SplitCommand {
	return &SplitCommand{cfg: config.NewConfig()}
}

func (cmd *SplitCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("split", flag.ExitOnError)

	fs.StringVar(&cmd.ClippingsPath, "file", "", "Path to the combined 'My Clippings.txt' export (required)")
	fs.StringVar(&cmd.DestDir, "dest", cmd.cfg.ClippingsDir, "Directory to write per-book clippings files to")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s split -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Split a combined clippings export into one file per book title.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.ClippingsPath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *SplitCommand) Run() error {
	counts, err := clippings.Split(cmd.ClippingsPath, cmd.DestDir)
	if err != nil {
		return err
	}

	for name, n := range counts {
		fmt.Printf("Wrote %d clips to %s\n", n, name)
	}
	fmt.Printf("\n✅ Split into %d files under '%s'\n", len(counts), cmd.DestDir)
	return nil
}
