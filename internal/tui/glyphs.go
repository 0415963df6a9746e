package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminal fonts render symbols poorly, so every decorative glyph has an
// ASCII fallback.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference applies the configured set; QUICKCOMM_TUI_GLYPHS wins.
func applyGlyphPreference(configured string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("QUICKCOMM_TUI_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(configured))
	}
	switch v {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphStar() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "★"
}

func glyphArrow() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "→"
}

func glyphPencil() string {
	if glyphs() == glyphSetASCII {
		return "~"
	}
	return "✎"
}

func glyphBolt() string {
	if glyphs() == glyphSetASCII {
		return "!"
	}
	return "⚡"
}

func glyphSep() string {
	if glyphs() == glyphSetASCII {
		return ">"
	}
	return "›"
}

func glyphDown() string {
	if glyphs() == glyphSetASCII {
		return "v"
	}
	return "↓"
}
