package tui

import "testing"

func TestGlyphs_FromEnvAndConfig(t *testing.T) {
	t.Setenv("PLANNER_TUI_GLYPHS", "")
	setGlyphs(glyphSetASCII)
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected unicode glyphs by default; got %v", got)
	}

	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected config to select ascii; got %v", got)
	}

	t.Setenv("PLANNER_TUI_GLYPHS", "unicode")
	applyGlyphPreference("ascii")
	if got := glyphs(); got != glyphSetUnicode {
		t.Fatalf("expected env to win over config; got %v", got)
	}

	// Unknown values keep the current set.
	setGlyphs(glyphSetASCII)
	t.Setenv("PLANNER_TUI_GLYPHS", "bogus")
	applyGlyphPreference("")
	if got := glyphs(); got != glyphSetASCII {
		t.Fatalf("expected unknown to be ignored; got %v", got)
	}
	if glyphDelete() != "x" || glyphHandle() != "=" {
		t.Fatalf("expected ascii affordances")
	}
	setGlyphs(glyphSetUnicode)
}
