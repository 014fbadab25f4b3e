package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workshop-planner/internal/agenda"
	"workshop-planner/internal/daycol"
	"workshop-planner/internal/dnd"
	"workshop-planner/internal/itemcard"
	"workshop-planner/internal/library"
	"workshop-planner/internal/model"
	"workshop-planner/internal/timegrid"
)

type keyMap struct {
	Quit       key.Binding
	Cancel     key.Binding
	AddDay     key.Binding
	DeleteDay  key.Binding
	StartTime  key.Binding
	PrevDay    key.Binding
	NextDay    key.Binding
	Up         key.Binding
	Down       key.Binding
	Search     key.Binding
	AddToDay   key.Binding
	Info       key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Cancel:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel drag")),
		AddDay:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add day")),
		DeleteDay:  key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete day")),
		StartTime:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start time")),
		PrevDay:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "day")),
		NextDay:    key.NewBinding(key.WithKeys("right", "l")),
		Up:         key.NewBinding(key.WithKeys("up", "k")),
		Down:       key.NewBinding(key.WithKeys("down", "j")),
		Search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		AddToDay:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add to day")),
		Info:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "info")),
		ScrollUp:   key.NewBinding(key.WithKeys("pgup")),
		ScrollDown: key.NewBinding(key.WithKeys("pgdown")),
	}
}

func (k keyMap) help() string {
	var parts []string
	for _, b := range []key.Binding{k.AddToDay, k.Search, k.Info, k.PrevDay, k.StartTime, k.AddDay, k.DeleteDay, k.Cancel, k.Quit} {
		h := b.Help()
		parts = append(parts, h.Key+": "+h.Desc)
	}
	return "drag: move   click: edit   " + strings.Join(parts, "   ")
}

type appModel struct {
	ed      *agenda.Editor
	cat     *library.Catalog
	log     *slog.Logger
	metrics timegrid.Metrics
	keys    keyMap
	unsub   func()

	width, height int

	// doc is the latest snapshot; the editor pushes it through Subscribe,
	// synchronously from inside Update.
	doc model.Workshop

	focusDay int
	firstCol int
	scrollY  int

	lib       list.Model
	search    textinput.Model
	searching bool

	// Pointer gesture state.
	sensor   dnd.Sensor
	drag     *dnd.Controller
	pressed  dnd.Entity
	pressBox dnd.Rect
	pointer  dnd.Point
	card     *itemcard.Card
	zone     itemcard.HitZone

	modal      modalKind
	form       editForm
	confirm    confirmModalFocus
	confirmDay string
	info       string
	start      startForm

	status string
}

func newAppModel(ed *agenda.Editor, opts Options) *appModel {
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}
	cat := opts.Catalog
	if cat == nil {
		cat = library.Default()
	}
	m := &appModel{
		ed:      ed,
		cat:     cat,
		log:     log,
		metrics: daycol.TerminalMetrics(opts.RowsPerHour),
		keys:    defaultKeyMap(),
		lib:     newLibraryList(cat),
		search:  newSearchInput(),
		drag:    dnd.NewController(log),
	}
	m.doc, _ = ed.Snapshot()
	m.unsub = ed.Subscribe(func(w model.Workshop) { m.doc = w })
	return m
}

func (m *appModel) close() {
	if m.unsub != nil {
		m.unsub()
		m.unsub = nil
	}
}

func (m *appModel) Init() tea.Cmd { return nil }

func (m *appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.lib.SetSize(libraryWidth, max(1, m.bodyHeight()-2))
		m.ensureFocusVisible()
		return m, nil
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalEdit:
		return m, m.handleEditKey(msg)
	case modalConfirmDeleteDay:
		m.handleConfirmKey(msg)
		return m, nil
	case modalInfo:
		switch msg.String() {
		case "esc", "enter", "q", "i":
			m.modal = modalNone
		}
		return m, nil
	case modalStartTime:
		return m, m.handleStartKey(msg)
	}

	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m.refilter()
		}
		return m, cmd
	}

	m.status = ""
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.cancelGesture()
	case key.Matches(msg, m.keys.AddDay):
		m.report(m.ed.AddDay())
		m.focusDay = len(m.doc.Days) - 1
		m.ensureFocusVisible()
	case key.Matches(msg, m.keys.DeleteDay):
		m.askDeleteDay(m.focusDay)
	case key.Matches(msg, m.keys.StartTime):
		m.openStartTime(m.focusDay)
	case key.Matches(msg, m.keys.PrevDay):
		if m.focusDay > 0 {
			m.focusDay--
		}
		m.ensureFocusVisible()
	case key.Matches(msg, m.keys.NextDay):
		if m.focusDay < len(m.doc.Days)-1 {
			m.focusDay++
		}
		m.ensureFocusVisible()
	case key.Matches(msg, m.keys.Up):
		m.lib.CursorUp()
		skipHeading(&m.lib, -1)
	case key.Matches(msg, m.keys.Down):
		m.lib.CursorDown()
		skipHeading(&m.lib, 1)
	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()
	case key.Matches(msg, m.keys.AddToDay):
		m.addSelectedToFocusedDay()
	case key.Matches(msg, m.keys.Info):
		if ref, ok := selectedLibraryRef(m.lib); ok {
			m.showInfo(library.InstantiateItem(ref.Template))
		}
	case key.Matches(msg, m.keys.ScrollUp):
		m.scrollBy(-m.listHeight() / 2)
	case key.Matches(msg, m.keys.ScrollDown):
		m.scrollBy(m.listHeight() / 2)
	}
	return m, nil
}

func (m *appModel) handleEditKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return nil
	case "tab", "down":
		m.form.cycle(1)
		return nil
	case "shift+tab", "up":
		m.form.cycle(-1)
		return nil
	case "enter":
		p, err := m.form.patch()
		if err != nil {
			m.form.err = err.Error()
			return nil
		}
		m.modal = modalNone
		if !p.Empty() {
			m.report(m.ed.UpdateItem(m.form.dayID, m.form.item.ID, p))
		}
		return nil
	}
	return m.form.update(msg)
}

func (m *appModel) handleStartKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.modal = modalNone
		return nil
	case "enter":
		v, err := m.start.value()
		if err != nil {
			m.start.err = err.Error()
			return nil
		}
		m.modal = modalNone
		m.report(m.ed.UpdateDay(m.start.dayID, model.DayPatch{StartTime: &v}))
		return nil
	}
	return m.start.update(msg)
}

func (m *appModel) openStartTime(day int) {
	if day < 0 || day >= len(m.doc.Days) {
		return
	}
	m.start = newStartForm(m.doc.Days[day], day+1)
	m.modal = modalStartTime
}

func (m *appModel) handleConfirmKey(msg tea.KeyMsg) {
	switch msg.String() {
	case "esc", "n":
		m.modal = modalNone
	case "tab", "shift+tab", "left", "right":
		if m.confirm == confirmFocusConfirm {
			m.confirm = confirmFocusCancel
		} else {
			m.confirm = confirmFocusConfirm
		}
	case "y":
		m.modal = modalNone
		m.deleteDay(m.confirmDay)
	case "enter":
		m.modal = modalNone
		if m.confirm == confirmFocusConfirm {
			m.deleteDay(m.confirmDay)
		}
	}
}

func (m *appModel) askDeleteDay(day int) {
	if day < 0 || day >= len(m.doc.Days) {
		return
	}
	if !m.ed.CanRemoveDay() {
		m.status = "A workshop needs at least one day."
		return
	}
	m.modal = modalConfirmDeleteDay
	m.confirm = confirmFocusConfirm
	m.confirmDay = m.doc.Days[day].ID
}

func (m *appModel) deleteDay(dayID string) {
	err := m.ed.RemoveDay(dayID)
	if errors.Is(err, agenda.ErrLastDay) {
		m.status = "A workshop needs at least one day."
		return
	}
	m.report(err)
	m.ensureFocusVisible()
}

func (m *appModel) addSelectedToFocusedDay() {
	ref, ok := selectedLibraryRef(m.lib)
	if !ok || len(m.doc.Days) == 0 {
		return
	}
	day := m.doc.Days[min(m.focusDay, len(m.doc.Days)-1)]
	m.report(dnd.Apply(m.ed, dnd.AddIntent{DayID: day.ID, Item: library.InstantiateItem(ref.Template)}))
}

func (m *appModel) openEdit(dayID string, it model.AgendaItem) {
	m.form = newEditForm(dayID, it)
	m.modal = modalEdit
}

func (m *appModel) showInfo(it model.AgendaItem) {
	m.info = itemMarkdown(it)
	m.modal = modalInfo
}

func (m *appModel) refilter() {
	m.lib.SetItems(buildLibraryItems(m.cat, m.search.Value()))
	m.lib.Select(0)
	skipHeading(&m.lib, 1)
}

func (m *appModel) scrollBy(delta int) {
	m.scrollY += delta
	if ms := m.maxScroll(m.columns()); m.scrollY > ms {
		m.scrollY = ms
	}
	if m.scrollY < 0 {
		m.scrollY = 0
	}
}

// report surfaces a write error in the footer. Persist failures keep the
// in-memory change, so editing continues.
func (m *appModel) report(err error) {
	if err != nil {
		m.log.Error("agenda update failed", "err", err)
		m.status = "Not saved: " + err.Error()
	}
}

func (m *appModel) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	switch m.modal {
	case modalEdit:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.form.view(m.width))
	case modalConfirmDeleteDay:
		body := "Delete this day and all of its activities?"
		if i := m.doc.FindDay(m.confirmDay); i >= 0 {
			body = fmt.Sprintf("Delete Day %d and its %d activities?", i+1, len(m.doc.Days[i].Items))
		}
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			renderConfirmModal(m.width, "Delete day", body, "Delete", "Cancel", m.confirm))
	case modalStartTime:
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.start.view(m.width))
	case modalInfo:
		md := renderMarkdown(m.info, modalBodyWidth(m.width)-2)
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			renderModalBox(m.width, "Activity", md+"\n\n"+styleMuted().Render("esc: close")))
	}

	bodyH := m.bodyHeight()
	header := styleAccent().Render(m.doc.Name) +
		styleMuted().Render(fmt.Sprintf("  %d days · %d activities · %s", len(m.doc.Days), m.doc.ItemCount(), daycol.FormatDuration(m.doc.TotalMinutes())))

	cols := m.columns()
	sep := normalizePane("", columnGap, bodyH)
	parts := []string{normalizePane(m.renderLibrary(), libraryWidth, bodyH)}
	for _, c := range cols {
		if !m.onScreen(c) {
			continue
		}
		parts = append(parts, sep, normalizePane(m.renderColumn(c), columnWidth, bodyH))
	}
	body := normalizePane(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width, bodyH)

	footer := m.status
	if footer == "" {
		footer = styleMuted().Render(m.keys.help())
	}
	view := strings.Join([]string{fitWidth(header, m.width), body, m.renderTrash(), fitWidth(footer, m.width)}, "\n")

	if m.drag.State() == dnd.Dragging {
		if label := m.dragLabel(); label != "" {
			view = overlayAt(view, int(m.pointer.X)+1, int(m.pointer.Y), styleSelected().Render(label))
		}
	}
	return view
}
