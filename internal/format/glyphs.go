package format

import "strings"

// GlyphSet picks between Unicode and ASCII symbols for text output, for
// terminals and fonts that do not render some glyphs cleanly.
type GlyphSet int

const (
	GlyphsUnicode GlyphSet = iota
	GlyphsASCII
)

// ParseGlyphs maps a config value to a glyph set. Unknown values mean Unicode.
func ParseGlyphs(s string) GlyphSet {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ascii":
		return GlyphsASCII
	default:
		return GlyphsUnicode
	}
}

func (g GlyphSet) String() string {
	if g == GlyphsASCII {
		return "ascii"
	}
	return "unicode"
}

func (g GlyphSet) Checked() string {
	if g == GlyphsASCII {
		return "[x]"
	}
	return "☑"
}

func (g GlyphSet) Unchecked() string {
	if g == GlyphsASCII {
		return "[ ]"
	}
	return "☐"
}

func (g GlyphSet) Selected() string {
	if g == GlyphsASCII {
		return ">"
	}
	return "▸"
}

func (g GlyphSet) Bell() string {
	if g == GlyphsASCII {
		return "(!)"
	}
	return "⏰"
}

func (g GlyphSet) Arrow() string {
	if g == GlyphsASCII {
		return "->"
	}
	return "→"
}

func (g GlyphSet) Ellipsis() string {
	if g == GlyphsASCII {
		return "..."
	}
	return "…"
}
