package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"workshop-planner/internal/model"
)

// Palette helpers. The board has to stay readable on light and dark
// terminals, so colors are adaptive and "faint" is only used on dark
// backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted       = ac("240", "243")
	colorChromeFg    = ac("240", "245")
	colorSelectedBg  = ac("#e9e9e9", "#262626")
	colorSelectedFg  = ac("235", "255")
	colorSurfaceBg   = ac("255", "235")
	colorSurfaceFg   = ac("235", "252")
	colorControlBg   = ac("252", "235")
	colorAccent      = ac("27", "62")
	colorAccentFg    = ac("255", "235")
	colorDanger      = ac("160", "203")
	colorDangerBg    = ac("224", "52")
	colorCardMetaFg  = ac("238", "250")
	colorModalHeader = ac("252", "237")
)

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleChrome() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorChromeFg)
}

func styleSelected() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true)
}

func styleAccent() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
}

// categoryStyle colors the card edge and library bullets by category.
func categoryStyle(c model.Category) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color()))
}

// applyColorProfilePreference sets Lip Gloss's color profile for the editor.
//
// termenv.EnvColorProfile also honors CLICOLOR, which is meant for piped CLI
// output; here only NO_COLOR turns colors off.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	switch {
	case strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit"):
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	case strings.Contains(term, "256color"):
		if profile == termenv.Ascii || profile == termenv.ANSI {
			profile = termenv.ANSI256
		}
	}
	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures background detection.
//
// Priority:
// 1) PLANNER_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg")
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PLANNER_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
