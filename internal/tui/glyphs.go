package tui

import (
	"os"
	"strings"
	"sync"
)

// Some terminal fonts render box-drawing and symbol glyphs poorly, so the
// board can fall back to plain ASCII affordances.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference reads PLANNER_TUI_GLYPHS, falling back to the config
// value. Unknown values keep the current set.
func applyGlyphPreference(fallback string) {
	v := strings.ToLower(strings.TrimSpace(os.Getenv("PLANNER_TUI_GLYPHS")))
	if v == "" {
		v = strings.ToLower(strings.TrimSpace(fallback))
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

func pick(unicode, ascii string) string {
	if glyphs() == glyphSetASCII {
		return ascii
	}
	return unicode
}

func glyphCardEdge() string  { return pick("▌", "|") }
func glyphDelete() string    { return pick("×", "x") }
func glyphHandle() string    { return pick("≡", "=") }
func glyphBullet() string    { return pick("•", "*") }
func glyphFixed() string     { return pick("◆", "#") }
func glyphHRule() string     { return pick("─", "-") }
func glyphIndicator() string { return pick("━", "=") }
func glyphEnDash() string    { return pick("–", "-") }
func glyphTrash() string     { return pick("✕", "x") }
