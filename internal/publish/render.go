package publish

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
)

// TerminalStyle maps a color preference to a glamour standard style. Without
// color the output carries no escape sequences.
func TerminalStyle(color string) string {
	switch strings.ToLower(strings.TrimSpace(color)) {
	case "never":
		return styles.NoTTYStyle
	case "light":
		return styles.LightStyle
	case "ascii":
		return styles.AsciiStyle
	default:
		return styles.DarkStyle
	}
}

// RenderTerminal renders markdown for a terminal of the given width.
func RenderTerminal(md string, width int, style string) (string, error) {
	if width < 20 {
		width = 20
	}
	r, err := glamour.NewTermRenderer(
		// WithAutoStyle can block on terminal queries; use a fixed style.
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	out, err := r.Render(md)
	if err != nil {
		return "", err
	}
	return strings.TrimRight(out, "\n") + "\n", nil
}
