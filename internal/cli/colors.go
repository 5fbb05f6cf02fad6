package cli

import (
	"fmt"

	"github.com/gallego-posada/re-kindle/internal/colors"
)

// ColorsCommand lists the named highlight presets.
type ColorsCommand struct{}

func NewColorsCommand() *ColorsCommand {
	return &ColorsCommand{}
}

func (cmd *ColorsCommand) ParseFlags(args []string) error {
	return nil
}

func (cmd *ColorsCommand) Run() error {
	fmt.Println("Available highlight colors:")
	for _, name := range colors.Names() {
		marker := " "
		if name == colors.DefaultName {
			marker = "*"
		}
		fmt.Printf("%s %-10s %s\n", marker, name, colors.Known[name])
	}
	fmt.Println("\n* default")
	return nil
}
