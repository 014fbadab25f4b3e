package daycol

import (
	"testing"

	"workshop-planner/internal/dnd"
	"workshop-planner/internal/model"
	"workshop-planner/internal/timegrid"
)

func day(durations ...int) model.WorkshopDay {
	d := model.WorkshopDay{ID: "d1", StartTime: "09:00", Items: []model.AgendaItem{}}
	for i, m := range durations {
		d.Items = append(d.Items, model.AgendaItem{ID: string(rune('a' + i)), Title: "x", DurationMinutes: m})
	}
	return d
}

func kinds(c Column) string {
	var s string
	for _, r := range c.Rows {
		switch r.Kind {
		case RowItem:
			s += "I"
		case RowIndicator:
			s += "|"
		case RowAdd:
			s += "+"
		}
	}
	return s
}

func TestPlan_Header(t *testing.T) {
	c := Plan(day(30, 45), 1, 2, nil, timegrid.DefaultMetrics)
	h := c.Header
	if h.Title != "Day 2" || h.StartTime != "09:00" || h.EndTime != "10:15" || h.TotalMinutes != 75 || !h.CanDelete {
		t.Fatalf("header = %+v", h)
	}
	if Plan(day(), 0, 1, nil, timegrid.DefaultMetrics).Header.CanDelete {
		t.Fatal("single day deletable")
	}
}

func TestPlan_IndicatorPlacement(t *testing.T) {
	cases := []struct {
		name   string
		day    model.WorkshopDay
		marker *int
		want   string
	}{
		{"none", day(30, 45), nil, "II+"},
		{"before first", day(30, 45), model.Ptr(0), "|II+"},
		{"between", day(30, 45), model.Ptr(1), "I|I+"},
		{"after last", day(30, 45), model.Ptr(2), "II|+"},
		{"empty day", day(), model.Ptr(0), "|+"},
		{"empty no marker", day(), nil, "+"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := kinds(Plan(tc.day, 0, 1, tc.marker, timegrid.DefaultMetrics)); got != tc.want {
				t.Fatalf("rows = %s, want %s", got, tc.want)
			}
		})
	}
}

func TestPlan_ItemTimesAndPlacement(t *testing.T) {
	c := Plan(day(30, 45, 10), 0, 1, nil, timegrid.DefaultMetrics)
	items := c.Items()
	wantStart := []string{"09:00", "09:30", "10:15"}
	for i, r := range items {
		if r.Start != wantStart[i] {
			t.Fatalf("item %d start = %s", i, r.Start)
		}
	}
	// 10 minutes at 1.5px is below the 28px minimum.
	if items[2].Height != 28 {
		t.Fatalf("min height not applied: %v", items[2].Height)
	}
	if items[1].Top != 45+4 {
		t.Fatalf("second top = %v", items[1].Top)
	}
	if len(c.Ticks) == 0 || c.Ticks[0].Label != "09:00" {
		t.Fatalf("ticks = %+v", c.Ticks)
	}
}

func TestDropBoxes_EmptyDayIsContainer(t *testing.T) {
	m := timegrid.Metrics{PxPerMinute: 0.2, MinCardHeight: 2, ItemGap: 1}
	c := Plan(day(), 0, 1, nil, m)
	dayBox, items := c.DropBoxes(dnd.Point{X: 10, Y: 5}, 20, 0)
	if len(items) != 0 || dayBox.Rect.Empty() || dayBox.Add.Empty() {
		t.Fatalf("day box = %+v", dayBox)
	}
	got := dnd.Detect(dnd.Layout{Days: []dnd.DayBox{dayBox}}, dnd.Point{X: 15, Y: 6}, dnd.Rect{})
	if got.Kind != dnd.TargetDay || got.Index != 0 {
		t.Fatalf("collision = %+v", got)
	}
}

func TestDropBoxes_ScrollShiftsRects(t *testing.T) {
	m := timegrid.Metrics{PxPerMinute: 0.2, MinCardHeight: 2, ItemGap: 1}
	c := Plan(day(30, 15), 0, 1, nil, m)
	_, items := c.DropBoxes(dnd.Point{X: 0, Y: 4}, 20, 3)
	if items[0].Rect.Y != 1 || items[0].Rect.H != 6 || items[1].Rect.Y != 8 {
		t.Fatalf("items = %+v", items)
	}
}

func TestFormatDuration(t *testing.T) {
	for in, want := range map[int]string{45: "45m", 60: "1h", 75: "1h 15m", 0: "0m"} {
		if got := FormatDuration(in); got != want {
			t.Fatalf("FormatDuration(%d) = %s", in, got)
		}
	}
}
