package tui

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"

	"workshop-planner/internal/daycol"
	"workshop-planner/internal/model"
)

var (
	mdRendererMu sync.Mutex
	// Keyed by style and wrap width. WithAutoStyle is avoided since it can
	// block on terminal background queries.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	style := markdownStyle()
	key := style + ":" + strconv.Itoa(width)

	mdRendererMu.Lock()
	r := mdRenderers[key]
	mdRendererMu.Unlock()

	if r == nil {
		cfg := markdownStyleConfig(style)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRendererMu.Lock()
		if existing := mdRenderers[key]; existing != nil {
			r = existing
		} else {
			mdRenderers[key] = rr
			r = rr
		}
		mdRendererMu.Unlock()
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PLANNER_TUI_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("PLANNER_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	// COLORFGBG is "fg;bg"; xterm palette 0-6 are dark, 7-15 light.
	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			if bg >= 7 {
				return "light"
			}
			return "dark"
		}
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	if styleName == "light" {
		cfg := styles.LightStyleConfig
		applyMarkdownPalette(&cfg, styleName)
		return cfg
	}
	cfg := styles.DarkStyleConfig
	applyMarkdownPalette(&cfg, "dark")
	return cfg
}

// applyMarkdownPalette keeps headings and body text on the surface
// foreground so rendered notes match the rest of the board.
func applyMarkdownPalette(cfg *ansi.StyleConfig, styleName string) {
	fg := mdColor(colorSurfaceFg, styleName)
	cfg.Heading.Color = fg
	cfg.H1.Color = fg
	cfg.H2.Color = fg
	cfg.H3.Color = fg
	cfg.Text.Color = fg
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil

	link := mdColor(colorAccent, styleName)
	cfg.Link.Color = link
	cfg.LinkText.Color = link
}

func mdColor(c lipgloss.AdaptiveColor, styleName string) *string {
	if styleName == "light" {
		return &c.Light
	}
	return &c.Dark
}

// itemMarkdown renders the descriptive fields of an activity as markdown.
func itemMarkdown(it model.AgendaItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## %s\n\n", it.Title)
	fmt.Fprintf(&b, "*%s · %s*\n\n", it.Category.Label(), daycol.FormatDuration(it.DurationMinutes))
	if d := it.Description; d != nil {
		if s := strings.TrimSpace(d.Short); s != "" {
			b.WriteString(s + "\n\n")
		}
		writeList(&b, "Objectives", d.Objectives)
		writeList(&b, "Outcomes", d.Outcomes)
	}
	if it.Instructions != nil && strings.TrimSpace(*it.Instructions) != "" {
		b.WriteString("### Instructions\n\n" + strings.TrimSpace(*it.Instructions) + "\n\n")
	}
	writeList(&b, "Tools", it.Tools)
	writeList(&b, "Links", it.Links)
	return b.String()
}

func writeList(b *strings.Builder, heading string, xs []string) {
	if len(xs) == 0 {
		return
	}
	fmt.Fprintf(b, "### %s\n\n", heading)
	for _, x := range xs {
		fmt.Fprintf(b, "- %s\n", x)
	}
	b.WriteString("\n")
}
