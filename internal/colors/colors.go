// Package colors resolves highlight color names and hex codes against the
// table of known Kindle-style presets.
package colors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

// DefaultName is the preset applied when the user gives no color.
const DefaultName = "yellow"

// NoteColor styles the appended note span; fixed, not user-configurable.
const NoteColor = "gray"

// Known maps preset names to RGBA hex codes (alpha keeps the text legible
// through the highlight).
var Known = map[string]string{
	"yellow":    "#fff7aeea",
	"green":     "#b6e4c7eb",
	"blue":      "#aecbfac5",
	"red":       "#f28b82ca",
	"purple":    "#d7aefbd0",
	"gray":      "#dbd6d6c8",
	"dark-gray": "#777777C9",
}

var validate = validator.New()

// Resolve turns a preset name or a literal hex code into a hex color.
// An empty input resolves to the default preset.
func Resolve(nameOrHex string) (string, error) {
	if nameOrHex == "" {
		return Known[DefaultName], nil
	}

	if hex, ok := Known[strings.ToLower(nameOrHex)]; ok {
		return hex, nil
	}

	if err := validate.Var(nameOrHex, "hexcolor"); err != nil {
		return "", fmt.Errorf("invalid highlight color %q: must be one of %s or a hex color code", nameOrHex, strings.Join(Names(), ", "))
	}
	return nameOrHex, nil
}

// Names returns the preset names in stable order.
func Names() []string {
	names := make([]string, 0, len(Known))
	for name := range Known {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
