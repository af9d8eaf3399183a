package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mattn/go-isatty"

	"alfredoptarigan/product-sheet-extractor/internal/models"
)

type palette struct {
	label string
	value string
	reset string
}

var palettes = map[models.Theme]palette{
	models.ThemeLight: {label: "\033[1;34m", value: "\033[30m", reset: "\033[0m"},
	models.ThemeDark:  {label: "\033[1;36m", value: "\033[97m", reset: "\033[0m"},
}

// useColor resolves the --color mode. Auto colours only a terminal.
func useColor(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid color mode %q, expected auto, always or never", mode)
	}
}

func renderTable(w io.Writer, rows []models.Attribute, theme models.Theme, color bool) error {
	var p palette
	if color {
		var ok bool
		if p, ok = palettes[theme]; !ok {
			p = palettes[models.ThemeLight]
		}
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "%sAttribute%s\t%sValue%s\n", p.label, p.reset, p.label, p.reset)
	for _, row := range rows {
		fmt.Fprintf(tw, "%s%s%s\t%s%s%s\n", p.label, row.Label, p.reset, p.value, row.Value, p.reset)
	}
	return tw.Flush()
}
