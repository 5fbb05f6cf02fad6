package main

import (
	"fmt"
	"os"

	"github.com/gallego-posada/re-kindle/internal/cli"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	var cmd command
	switch os.Args[1] {
	case "process":
		cmd = cli.NewProcessCommand()
	case "split":
		cmd = cli.NewSplitCommand()
	case "count":
		cmd = cli.NewCountCommand()
	case "colors":
		cmd = cli.NewColorsCommand()
	case "history":
		cmd = cli.NewHistoryCommand()

	case "version":
		fmt.Printf("re-kindle %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(os.Args[2:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  process   Re-insert Kindle highlights into the source EPUB\n")
	fmt.Fprintf(os.Stderr, "  split     Split a combined 'My Clippings.txt' into per-book files\n")
	fmt.Fprintf(os.Stderr, "  count     Preview how many highlights a clippings file holds\n")
	fmt.Fprintf(os.Stderr, "  colors    List the named highlight color presets\n")
	fmt.Fprintf(os.Stderr, "  history   List past relocation runs\n")
	fmt.Fprintf(os.Stderr, "  version   Print version information\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
