package tui

import (
	"math"

	tea "github.com/charmbracelet/bubbletea"

	"workshop-planner/internal/dnd"
	"workshop-planner/internal/itemcard"
	"workshop-planner/internal/library"
	"workshop-planner/internal/model"
)

type hitKind int

const (
	hitNone hitKind = iota
	hitSearch
	hitLibrary
	hitDayHeader
	hitDayDelete
	hitDayStart
	hitItem
	hitAdd
)

type hit struct {
	kind   hitKind
	day    int
	dayID  string
	item   model.AgendaItem
	rect   dnd.Rect
	libIdx int
}

func (m *appModel) hitTest(p dnd.Point, cols []columnView) hit {
	x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
	if x < libraryWidth {
		switch {
		case y == libSearchY:
			return hit{kind: hitSearch}
		case y >= libListTop && y < m.trashY():
			if idx, ok := libraryRowAt(m.lib, y-libListTop); ok {
				return hit{kind: hitLibrary, libIdx: idx, rect: dnd.Rect{X: 0, Y: float64(y), W: libraryWidth, H: 1}}
			}
		}
		return hit{}
	}
	for _, c := range cols {
		if !m.onScreen(c) || x < c.x || x >= c.x+columnWidth {
			continue
		}
		dayID := c.plan.DayID
		if y >= boardTop && y < listTop {
			if y == boardTop && c.plan.Header.CanDelete && x >= c.x+columnWidth-2 {
				return hit{kind: hitDayDelete, day: c.day, dayID: dayID}
			}
			if y == boardTop+1 {
				return hit{kind: hitDayStart, day: c.day, dayID: dayID}
			}
			return hit{kind: hitDayHeader, day: c.day, dayID: dayID}
		}
		if y < listTop || y >= m.trashY() {
			return hit{}
		}
		for _, ib := range c.items {
			if ib.Rect.Contains(p) {
				return hit{kind: hitItem, day: c.day, dayID: dayID, item: m.doc.Days[c.day].Items[ib.Index], rect: ib.Rect}
			}
		}
		if c.box.Add.Contains(p) {
			return hit{kind: hitAdd, day: c.day, dayID: dayID}
		}
		return hit{kind: hitDayHeader, day: c.day, dayID: dayID}
	}
	return hit{}
}

func (m *appModel) handleMouse(msg tea.MouseMsg) {
	if m.modal != modalNone {
		return
	}
	p := dnd.Point{X: float64(msg.X), Y: float64(msg.Y)}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.wheel(p, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.wheel(p, 1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		m.press(p)
	case msg.Action == tea.MouseActionMotion:
		m.motion(p)
	case msg.Action == tea.MouseActionRelease:
		m.release(p)
	}
}

func (m *appModel) wheel(p dnd.Point, dir int) {
	if p.X < libraryWidth {
		if dir < 0 {
			m.lib.CursorUp()
		} else {
			m.lib.CursorDown()
		}
		skipHeading(&m.lib, dir)
		return
	}
	m.scrollBy(dir * 3)
	if m.drag.State() == dnd.Dragging {
		m.drag.Hover(m.frame())
	}
}

func (m *appModel) press(p dnd.Point) {
	m.cancelGesture()
	m.status = ""
	m.pointer = p
	h := m.hitTest(p, m.columns())
	switch h.kind {
	case hitSearch:
		m.searching = true
		m.search.Focus()

	case hitLibrary:
		m.lib.Select(h.libIdx)
		if ref, ok := selectedLibraryRef(m.lib); ok {
			m.pressed = ref
			m.pressBox = h.rect
			m.sensor.Press(p)
		}

	case hitDayHeader:
		m.focusDay = h.day

	case hitDayDelete:
		m.focusDay = h.day
		m.askDeleteDay(h.day)

	case hitDayStart:
		m.focusDay = h.day
		m.openStartTime(h.day)

	case hitAdd:
		m.focusDay = h.day
		m.addBlankActivity(h.dayID)

	case hitItem:
		m.focusDay = h.day
		card := itemcard.New(h.dayID, h.item, m.metrics.PxPerMinute, m.resizeItem)
		lx := int(math.Floor(p.X - h.rect.X))
		ly := int(math.Floor(p.Y - h.rect.Y))
		m.card = card
		m.zone = itemcard.ZoneAt(lx, ly, int(math.Round(h.rect.W)), int(math.Round(h.rect.H)), card.Resizable())
		if m.zone == itemcard.ZoneResize {
			card.BeginResize(p.Y)
			return
		}
		if card.Draggable() {
			m.pressed = dnd.PlacedRef{ItemID: h.item.ID}
		}
		m.pressBox = h.rect
		m.sensor.Press(p)
	}
}

func (m *appModel) motion(p dnd.Point) {
	m.pointer = p
	if m.card != nil && m.card.Resizing() {
		m.card.MoveResize(p.Y)
		return
	}
	if !m.sensor.Pressed() {
		return
	}
	if m.sensor.Move(p) {
		if m.card != nil {
			m.card.NoteDrag()
		}
		if m.pressed != nil {
			m.drag.Start(m.pressed)
		}
	}
	if m.drag.State() == dnd.Dragging {
		m.drag.Hover(m.frame())
	}
}

func (m *appModel) release(p dnd.Point) {
	m.pointer = p
	defer m.clearGesture()

	if m.card != nil && m.card.Resizing() {
		m.card.MoveResize(p.Y)
		_, _, err := m.card.EndResize()
		m.report(err)
		return
	}
	if !m.sensor.Pressed() {
		return
	}
	click := m.sensor.Release()
	if m.drag.State() == dnd.Dragging {
		m.report(dnd.Apply(m.ed, m.drag.Drop(m.frame())))
		return
	}
	if !click || m.card == nil {
		return
	}
	switch m.card.Click(m.zone) {
	case itemcard.ActionEdit:
		m.openEdit(m.card.DayID, m.card.Item)
	case itemcard.ActionDelete:
		m.report(dnd.Apply(m.ed, dnd.RemoveIntent{DayID: m.card.DayID, ItemID: m.card.Item.ID}))
	}
}

// frame samples the pointer against the current layout. The pressed
// element's rect travels with the pointer.
func (m *appModel) frame() dnd.Frame {
	return dnd.Frame{
		Layout:  m.layout(m.columns()),
		Pointer: m.pointer,
		Active:  m.pressBox.Translate(m.sensor.Origin(), m.pointer),
	}
}

func (m *appModel) resizeItem(dayID, itemID string, minutes int) error {
	return m.ed.UpdateItem(dayID, itemID, model.ItemPatch{DurationMinutes: &minutes})
}

// addBlankActivity appends a "New Activity" to the day and opens it for
// editing.
func (m *appModel) addBlankActivity(dayID string) {
	var tpl model.AgendaItemTemplate
	for _, t := range library.QuickAdd() {
		if !t.IsPlaceholder {
			tpl = t
		}
	}
	it := library.InstantiateItem(tpl)
	if err := m.ed.AddItem(dayID, it, nil); err != nil {
		m.report(err)
	}
	if _, ok := m.ed.FindItem(it.ID); ok {
		m.openEdit(dayID, it)
	}
}

// cancelGesture aborts any drag or resize without touching the agenda.
func (m *appModel) cancelGesture() {
	if m.card != nil {
		m.card.CancelResize()
	}
	m.drag.Cancel()
	m.sensor.Release()
	m.clearGesture()
}

func (m *appModel) clearGesture() {
	m.pressed = nil
	m.pressBox = dnd.Rect{}
	m.card = nil
	m.zone = itemcard.ZoneNone
}
