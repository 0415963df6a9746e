package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// renderInputLine draws a text input as exactly one visual line of width w.
func renderInputLine(w int, prompt, inputView string) string {
	if w < 10 {
		w = 10
	}

	inputView = strings.NewReplacer("\n", " ", "\r", " ").Replace(inputView)

	line := lipgloss.PlaceHorizontal(
		w,
		lipgloss.Left,
		" "+prompt+inputView+" ",
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceBackground(colorInputBg),
	)
	if xansi.StringWidth(line) > w {
		// Terminate styling so a cut sequence cannot bleed into the next line.
		line = xansi.Cut(line, 0, w) + "\x1b[0m"
	}
	return line
}
