package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	xansi "github.com/charmbracelet/x/ansi"

	"workshop-planner/internal/daycol"
	"workshop-planner/internal/dnd"
	"workshop-planner/internal/library"
)

// libraryItem is one row of the library panel: either a group heading or a
// draggable activity.
type libraryItem struct {
	heading string
	ref     dnd.LibraryRef
}

func (it libraryItem) FilterValue() string { return it.ref.Template.Title }

func (it libraryItem) isHeading() bool { return it.heading != "" }

// buildLibraryItems lists the quick-add entries first, then search hits
// grouped by category. Quick-add refs carry negative indexes.
func buildLibraryItems(cat *library.Catalog, query string) []list.Item {
	var out []list.Item
	out = append(out, libraryItem{heading: "Quick add"})
	for i, t := range library.QuickAdd() {
		out = append(out, libraryItem{ref: dnd.LibraryRef{Index: -(i + 1), Template: t}})
	}
	if cat == nil {
		return out
	}
	for _, g := range library.Grouped(cat.Search(query, "")) {
		out = append(out, libraryItem{heading: g.Category.Label()})
		for _, e := range g.Entries {
			out = append(out, libraryItem{ref: dnd.LibraryRef{Index: e.Index, Template: e.Template}})
		}
	}
	return out
}

type libraryDelegate struct{}

func (libraryDelegate) Height() int                         { return 1 }
func (libraryDelegate) Spacing() int                        { return 0 }
func (libraryDelegate) Update(tea.Msg, *list.Model) tea.Cmd { return nil }

func (libraryDelegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(libraryItem)
	if !ok {
		return
	}
	width := m.Width()
	if it.isHeading() {
		fmt.Fprint(w, styleChrome().Bold(true).Render(xansi.Truncate(it.heading, width, "…")))
		return
	}
	t := it.ref.Template
	dur := daycol.FormatDuration(t.DefaultDuration)
	titleW := width - 3 - xansi.StringWidth(dur)
	if titleW < 1 {
		titleW = 1
	}
	title := fitWidth(xansi.Truncate(t.Title, titleW, "…"), titleW)
	line := title + " " + dur
	if index == m.Index() {
		line = styleSelected().Render(line)
	}
	fmt.Fprint(w, categoryStyle(t.Category).Render(glyphBullet())+" "+line)
}

func newLibraryList(cat *library.Catalog) list.Model {
	l := list.New(buildLibraryItems(cat, ""), libraryDelegate{}, libraryWidth, 10)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	skipHeading(&l, 1)
	return l
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search activities"
	ti.CharLimit = 64
	ti.Width = libraryWidth - 4
	return ti
}

// skipHeading moves the cursor off a heading row, preferring direction dir.
func skipHeading(l *list.Model, dir int) {
	items := l.Items()
	for _, d := range []int{dir, -dir} {
		for i := l.Index(); i >= 0 && i < len(items); i += d {
			if it, ok := items[i].(libraryItem); ok && !it.isHeading() {
				l.Select(i)
				return
			}
		}
	}
}

func selectedLibraryRef(l list.Model) (dnd.LibraryRef, bool) {
	it, ok := l.SelectedItem().(libraryItem)
	if !ok || it.isHeading() {
		return dnd.LibraryRef{}, false
	}
	return it.ref, true
}

// libraryRowAt maps a panel-relative row to a list index.
func libraryRowAt(l list.Model, row int) (int, bool) {
	items := l.VisibleItems()
	start, end := l.Paginator.GetSliceBounds(len(items))
	idx := start + row
	if row < 0 || idx >= end {
		return 0, false
	}
	return idx, true
}
