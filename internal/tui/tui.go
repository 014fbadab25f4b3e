// Package tui is the interactive agenda editor: a library panel and one
// column per day, edited with mouse drag and drop.
package tui

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"

	"workshop-planner/internal/agenda"
	"workshop-planner/internal/library"
)

type Options struct {
	Catalog *library.Catalog
	Logger  *slog.Logger
	// RowsPerHour scales the day columns; 0 uses the default.
	RowsPerHour int
	// Glyphs is the configured glyph set; PLANNER_TUI_GLYPHS wins over it.
	Glyphs string
}

// Run blocks until the user quits. ed must have a workshop loaded.
func Run(ed *agenda.Editor, opts Options) error {
	if !ed.Loaded() {
		return agenda.ErrNoWorkshop
	}
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(ed, opts)
	defer m.close()
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
