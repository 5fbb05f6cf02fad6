package cli

import (
	"flag"
	"fmt"
	"os"

	"github.com/gallego-posada/re-kindle/internal/clippings"
)

// CountCommand previews how many highlights a clippings file holds
// without touching any EPUB.
type CountCommand struct {
	ClippingsPath string
}

func NewCountCommand() *CountCommand {
	return &CountCommand{}
}

func (cmd *CountCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("count", flag.ExitOnError)

	fs.StringVar(&cmd.ClippingsPath, "file", "", "Path to a clippings file (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s count -file <path>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Print the number of highlights in a clippings file.\n\n")
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

func (cmd *CountCommand) Run() error {
	n, err := clippings.Count(cmd.ClippingsPath)
	if err != nil {
		return err
	}
	fmt.Printf("%d highlights in %s\n", n, cmd.ClippingsPath)
	return nil
}
