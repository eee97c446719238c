package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the AbsherAi banner to w.
func PrintBanner(w io.Writer) {
	out := termenv.NewOutput(w)
	// Green gradient after the national palette.
	lines := []struct{ text, color string }{
		{"     _    _         _               _    _ ", "#166534"},
		{"    / \\  | |__  ___| |__   ___ _ __/ \\  (_)", "#15803d"},
		{"   / _ \\ | '_ \\/ __| '_ \\ / _ \\ '__/ _ \\ | |", "#16a34a"},
		{"  / ___ \\| |_) \\__ \\ | | |  __/ | / ___ \\| |", "#22c55e"},
		{" /_/   \\_\\_.__/|___/_| |_|\\___|_|/_/   \\_\\_|", "#4ade80"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, out.String(l.text).Foreground(out.Color(l.color)))
	}
	fmt.Fprintln(w)
}
