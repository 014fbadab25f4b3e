// Package daycol plans the rendering of one day column: header figures, the
// time ruler, item placement and where the insertion indicator goes.
package daycol

import (
	"fmt"

	"workshop-planner/internal/dnd"
	"workshop-planner/internal/model"
	"workshop-planner/internal/timegrid"
)

type RowKind int

const (
	RowItem RowKind = iota
	RowIndicator
	RowAdd
)

// Row is one entry of the column in display order. Top and Height are in
// the metrics' unit, measured from the top of the item list.
type Row struct {
	Kind   RowKind
	Index  int
	Item   model.AgendaItem
	Start  string
	End    string
	Top    float64
	Height float64
}

type Header struct {
	Ordinal      int
	Title        string
	StartTime    string
	EndTime      string
	TotalMinutes int
	CanDelete    bool
}

type Column struct {
	DayID  string
	Header Header
	Ticks  []timegrid.Tick
	Rows   []Row
	// ListHeight is the extent of the droppable item list.
	ListHeight float64
	// AddTop/AddHeight place the trailing "add activity" row.
	AddTop    float64
	AddHeight float64
}

// Plan lays out day (at position index of totalDays). marker, when set, is
// the insertion index to show in this day.
func Plan(day model.WorkshopDay, index, totalDays int, marker *int, m timegrid.Metrics) Column {
	durations := make([]int, len(day.Items))
	for i, it := range day.Items {
		durations[i] = it.DurationMinutes
	}
	start, err := model.ParseClock(day.StartTime)
	if err != nil {
		start = 0
	}
	g := timegrid.BuildMinutes(start, durations, m)
	heights, tops := g.Heights(), g.Offsets()

	col := Column{
		DayID: day.ID,
		Header: Header{
			Ordinal:      index + 1,
			Title:        fmt.Sprintf("Day %d", index+1),
			StartTime:    model.FormatClock(start),
			EndTime:      model.FormatClock(start + g.TotalMinutes()),
			TotalMinutes: g.TotalMinutes(),
			CanDelete:    totalDays > 1,
		},
		Ticks: g.Ticks(),
	}

	extent := g.Extent()
	indicatorAt := -1
	if marker != nil {
		indicatorAt = *marker
		if indicatorAt < 0 {
			indicatorAt = 0
		}
		if indicatorAt > len(day.Items) {
			indicatorAt = len(day.Items)
		}
	}

	elapsed := 0
	for i, it := range day.Items {
		if i == indicatorAt {
			col.Rows = append(col.Rows, Row{Kind: RowIndicator, Index: i, Top: indicatorTop(tops[i], m)})
		}
		col.Rows = append(col.Rows, Row{
			Kind:   RowItem,
			Index:  i,
			Item:   it,
			Start:  model.FormatClock(start + elapsed),
			End:    model.FormatClock(start + elapsed + it.DurationMinutes),
			Top:    tops[i],
			Height: heights[i],
		})
		elapsed += it.DurationMinutes
	}
	if indicatorAt == len(day.Items) {
		col.Rows = append(col.Rows, Row{Kind: RowIndicator, Index: indicatorAt, Top: extent})
	}

	col.ListHeight = extent
	if len(day.Items) == 0 {
		col.ListHeight = 2 * m.MinCardHeight
	}
	col.AddTop = col.ListHeight + m.ItemGap
	col.AddHeight = addHeight(m)
	col.Rows = append(col.Rows, Row{Kind: RowAdd, Index: len(day.Items), Top: col.AddTop, Height: col.AddHeight})
	return col
}

func indicatorTop(itemTop float64, m timegrid.Metrics) float64 {
	t := itemTop - m.ItemGap
	if t < 0 {
		return 0
	}
	return t
}

func addHeight(m timegrid.Metrics) float64 {
	if m.MinCardHeight <= 0 {
		return 1
	}
	return m.MinCardHeight
}

// Indicator returns the index at which the indicator row sits, if any.
func (c Column) Indicator() (int, bool) {
	for _, r := range c.Rows {
		if r.Kind == RowIndicator {
			return r.Index, true
		}
	}
	return 0, false
}

// Items returns only the item rows.
func (c Column) Items() []Row {
	var out []Row
	for _, r := range c.Rows {
		if r.Kind == RowItem {
			out = append(out, r)
		}
	}
	return out
}

// DropBoxes converts the plan into drop targets for a column whose list
// starts at origin and is width wide. scroll is subtracted from every top.
func (c Column) DropBoxes(origin dnd.Point, width, scroll float64) (dnd.DayBox, []dnd.ItemBox) {
	y0 := origin.Y - scroll
	items := c.Items()
	boxes := make([]dnd.ItemBox, 0, len(items))
	for _, r := range items {
		boxes = append(boxes, dnd.ItemBox{
			ID:    r.Item.ID,
			DayID: c.DayID,
			Index: r.Index,
			Rect:  dnd.Rect{X: origin.X, Y: y0 + r.Top, W: width, H: r.Height},
		})
	}
	day := dnd.DayBox{
		ID:    c.DayID,
		Rect:  dnd.Rect{X: origin.X, Y: y0, W: width, H: c.AddTop},
		Add:   dnd.Rect{X: origin.X, Y: y0 + c.AddTop, W: width, H: c.AddHeight},
		Count: len(items),
	}
	return day, boxes
}

// FormatDuration renders minutes as "1h 15m", "45m" or "2h".
func FormatDuration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%dm", minutes)
	}
	h, m := minutes/60, minutes%60
	if m == 0 {
		return fmt.Sprintf("%dh", h)
	}
	return fmt.Sprintf("%dh %dm", h, m)
}

// DefaultRowsPerHour gives one terminal row per five minutes.
const DefaultRowsPerHour = 12

// TerminalMetrics scales the grid to terminal rows. Cards are at least two
// rows (title plus resize handle) and separated by one blank row.
func TerminalMetrics(rowsPerHour int) timegrid.Metrics {
	if rowsPerHour <= 0 {
		rowsPerHour = DefaultRowsPerHour
	}
	return timegrid.Metrics{PxPerMinute: float64(rowsPerHour) / 60, MinCardHeight: 2, ItemGap: 1}
}
