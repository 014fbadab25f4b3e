package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"

	"workshop-planner/internal/daycol"
	"workshop-planner/internal/dnd"
	"workshop-planner/internal/model"
)

// Screen geometry, in cells. Row 0 is the title bar; the two bottom rows are
// the trash zone and the footer.
const (
	libraryWidth  = 32
	columnWidth   = 30
	columnGap     = 1
	gutterWidth   = 6
	cardWidth     = columnWidth - gutterWidth
	boardTop      = 1
	dayHeaderRows = 3
	listTop       = boardTop + dayHeaderRows
	libSearchY    = boardTop + 1
	libListTop    = boardTop + 2
)

func (m *appModel) bodyHeight() int { return max(0, m.height-3) }
func (m *appModel) trashY() int     { return m.height - 2 }
func (m *appModel) listHeight() int { return max(0, m.trashY()-listTop) }

func (m *appModel) columnX(day int) int {
	return libraryWidth + columnGap + (day-m.firstCol)*(columnWidth+columnGap)
}

func (m *appModel) visibleColumns() int {
	n := (m.width - libraryWidth - columnGap) / (columnWidth + columnGap)
	return max(1, n)
}

// columnView is one planned day column placed on screen.
type columnView struct {
	day   int
	x     int
	plan  daycol.Column
	box   dnd.DayBox
	items []dnd.ItemBox
}

// columns plans every day, including ones scrolled off either side. Those
// are neither drawn nor drop targets (see layout).
func (m *appModel) columns() []columnView {
	marker, showMarker := m.drag.Marker()
	n := len(m.doc.Days)
	out := make([]columnView, 0, n)
	for i, d := range m.doc.Days {
		var mk *int
		if showMarker && marker.DayID == d.ID {
			idx := marker.Index
			mk = &idx
		}
		plan := daycol.Plan(d, i, n, mk, m.metrics)
		x := m.columnX(i)
		box, items := plan.DropBoxes(dnd.Point{X: float64(x + gutterWidth), Y: listTop}, cardWidth, float64(m.scrollY))
		top, bottom := float64(listTop), float64(m.trashY())
		box.Rect = clipRows(widen(box.Rect, x), top, bottom)
		box.Add = clipRows(widen(box.Add, x), top, bottom)
		for k := range items {
			items[k].Rect = clipRows(items[k].Rect, top, bottom)
		}
		out = append(out, columnView{day: i, x: x, plan: plan, box: box, items: items})
	}
	return out
}

// widen extends a day target over the ruler gutter.
func widen(r dnd.Rect, x int) dnd.Rect {
	r.X = float64(x)
	r.W = columnWidth
	return r
}

func clipRows(r dnd.Rect, top, bottom float64) dnd.Rect {
	if r.Y < top {
		r.H -= top - r.Y
		r.Y = top
	}
	if r.Y+r.H > bottom {
		r.H = bottom - r.Y
	}
	if r.H < 0 {
		r.H = 0
	}
	return r
}

func (m *appModel) onScreen(c columnView) bool {
	return c.day >= m.firstCol && c.x < m.width
}

// layout is the drop-target snapshot for the current frame.
func (m *appModel) layout(cols []columnView) dnd.Layout {
	var l dnd.Layout
	for _, c := range cols {
		if m.onScreen(c) {
			l.Days = append(l.Days, c.box)
			l.Items = append(l.Items, c.items...)
			continue
		}
		// Off-screen items stay resolvable as a drag source but are never
		// a target.
		for _, ib := range c.items {
			ib.Rect = dnd.Rect{}
			l.Items = append(l.Items, ib)
		}
	}
	if m.drag.State() == dnd.Dragging {
		l.Trash = dnd.Rect{X: 0, Y: float64(m.trashY()), W: float64(m.width), H: 1}
	}
	return l
}

func (m *appModel) maxScroll(cols []columnView) int {
	most := 0
	for _, c := range cols {
		most = max(most, int(math.Ceil(c.plan.AddTop+c.plan.AddHeight)))
	}
	return max(0, most-m.listHeight())
}

func (m *appModel) ensureFocusVisible() {
	if m.focusDay >= len(m.doc.Days) {
		m.focusDay = max(0, len(m.doc.Days)-1)
	}
	if m.focusDay < m.firstCol {
		m.firstCol = m.focusDay
	}
	if vis := m.visibleColumns(); m.focusDay >= m.firstCol+vis {
		m.firstCol = m.focusDay - vis + 1
	}
	if m.firstCol < 0 {
		m.firstCol = 0
	}
}

func (m *appModel) renderColumn(c columnView) string {
	h := c.plan.Header
	lines := make([]string, 0, dayHeaderRows+m.listHeight())

	del := ""
	if h.CanDelete {
		del = " " + glyphDelete()
	}
	title := fitWidth(h.Title, columnWidth-2) + fitWidth(del, 2)
	over := m.drag.State() == dnd.Dragging && m.drag.Over().DayID == c.plan.DayID
	switch {
	case c.day == m.focusDay:
		title = styleSelected().Render(title)
	case over:
		title = styleAccent().Render(title)
	}
	lines = append(lines, title)
	lines = append(lines, styleMuted().Render(fmt.Sprintf("%s%s%s  %s", h.StartTime, glyphEnDash(), h.EndTime, daycol.FormatDuration(h.TotalMinutes))))
	lines = append(lines, styleChrome().Render(strings.Repeat(glyphHRule(), columnWidth)))

	listH := m.listHeight()
	gutter := make([]string, listH)
	body := make([]string, listH)
	set := func(row int, s string) {
		if row >= 0 && row < listH {
			body[row] = s
		}
	}
	for _, t := range c.plan.Ticks {
		row := int(math.Round(t.Px)) - m.scrollY
		if row >= 0 && row < listH {
			gutter[row] = styleChrome().Render(t.Label)
		}
	}
	for _, r := range c.plan.Rows {
		top := int(math.Round(r.Top)) - m.scrollY
		switch r.Kind {
		case daycol.RowItem:
			for k, ln := range m.renderCard(c.plan.DayID, r) {
				set(top+k, ln)
			}
		case daycol.RowAdd:
			set(top, styleMuted().Render("+ Add activity"))
		}
	}
	// Indicators go last so one at index 0 shows over the first card.
	for _, r := range c.plan.Rows {
		if r.Kind == daycol.RowIndicator {
			set(int(math.Round(r.Top))-m.scrollY, styleAccent().Render(strings.Repeat(glyphIndicator(), cardWidth)))
		}
	}
	for i := 0; i < listH; i++ {
		lines = append(lines, fitWidth(gutter[i], gutterWidth)+fitWidth(body[i], cardWidth))
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) renderCard(dayID string, r daycol.Row) []string {
	it := r.Item
	h := max(1, int(math.Round(r.Height)))
	dur := it.DurationMinutes
	if m.card != nil && m.card.Resizing() && m.card.Item.ID == it.ID {
		dur = m.card.Duration()
	}

	edge := categoryStyle(it.Category).Render(glyphCardEdge())
	text := lipgloss.NewStyle()
	if it.Placeholder() {
		text = styleMuted().Italic(true)
	}
	if p, ok := m.drag.Active().(dnd.PlacedRef); ok && p.ItemID == it.ID {
		text = styleMuted()
	}
	inner := cardWidth - 1

	title := it.Title
	if it.Fixed() {
		title = glyphFixed() + " " + title
	}
	meta := fmt.Sprintf("%s%s%s  %s", r.Start, glyphEnDash(), model.AddMinutes(r.Start, dur), daycol.FormatDuration(dur))

	lines := make([]string, h)
	for i := range lines {
		lines[i] = edge
	}
	lines[0] = edge + text.Render(fitWidth(xansi.Truncate(title, inner-2, "…"), inner-2)) + " " + styleMuted().Render(glyphDelete())
	if h >= 3 {
		if s := it.ShortDescription(); s != "" {
			lines[1] = edge + styleMuted().Render(xansi.Truncate(s, inner, "…"))
		}
	}
	if h >= 2 {
		lines[h-1] = edge + lipgloss.NewStyle().Foreground(colorCardMetaFg).Render(fitWidth(meta, inner-2)) + " " + styleMuted().Render(glyphHandle())
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], cardWidth)
	}
	return lines
}

func (m *appModel) renderLibrary() string {
	title := styleAccent().Render("Library")
	return strings.Join([]string{title, m.search.View(), m.lib.View()}, "\n")
}

func (m *appModel) renderTrash() string {
	if m.drag.State() != dnd.Dragging {
		return fitWidth("", m.width)
	}
	st := lipgloss.NewStyle().Foreground(colorDanger)
	if m.drag.Over().Kind == dnd.TargetTrash {
		st = st.Background(colorDangerBg).Bold(true)
	}
	return st.Render(fitWidth("  "+glyphTrash()+" Drop here to remove from the agenda", m.width))
}

// dragLabel is the overlay that follows the pointer.
func (m *appModel) dragLabel() string {
	switch e := m.drag.Active().(type) {
	case dnd.LibraryRef:
		return fmt.Sprintf(" %s · %s ", e.Template.Title, daycol.FormatDuration(e.Template.DefaultDuration))
	case dnd.PlacedRef:
		if it, ok := m.ed.FindItem(e.ItemID); ok {
			return fmt.Sprintf(" %s · %s ", it.Title, daycol.FormatDuration(it.DurationMinutes))
		}
	}
	return ""
}
