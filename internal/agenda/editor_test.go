package agenda

import (
	"context"
	"errors"
	"testing"
	"time"

	"workshop-planner/internal/model"
)

type memPersister struct {
	saved []model.Workshop
	err   error
}

func (m *memPersister) SaveOne(_ context.Context, w model.Workshop) (model.Workshop, error) {
	if m.err != nil {
		return w, m.err
	}
	m.saved = append(m.saved, w.Clone())
	return w, nil
}

func item(id string, minutes int) model.AgendaItem {
	return model.AgendaItem{ID: id, Title: "Item " + id, Category: model.CategoryOther, DurationMinutes: minutes}
}

func fixture() model.Workshop {
	return model.Workshop{
		ID:   "w1",
		Name: "Kickoff",
		Days: []model.WorkshopDay{
			{ID: "d1", DateOffset: 0, StartTime: "09:00", Items: []model.AgendaItem{item("a", 30), item("b", 45), item("c", 15)}},
			{ID: "d2", DateOffset: 1, StartTime: "10:00", Items: []model.AgendaItem{}},
		},
	}
}

func newEditor(t *testing.T) (*Editor, *memPersister) {
	t.Helper()
	p := &memPersister{}
	clock := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ed := NewEditor(p, WithClock(func() time.Time { clock = clock.Add(time.Second); return clock }))
	ed.Load(fixture())
	return ed, p
}

func ids(items []model.AgendaItem) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddItem_PlacesAtIndexAndKeepsOrder(t *testing.T) {
	cases := []struct {
		name  string
		index *int
		want  []string
	}{
		{"append", nil, []string{"a", "b", "c", "n"}},
		{"front", model.Ptr(0), []string{"n", "a", "b", "c"}},
		{"middle", model.Ptr(2), []string{"a", "b", "n", "c"}},
		{"end", model.Ptr(3), []string{"a", "b", "c", "n"}},
		{"clamped high", model.Ptr(99), []string{"a", "b", "c", "n"}},
		{"clamped low", model.Ptr(-4), []string{"n", "a", "b", "c"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ed, p := newEditor(t)
			if err := ed.AddItem("d1", item("n", 10), tc.index); err != nil {
				t.Fatalf("AddItem: %v", err)
			}
			w, _ := ed.Snapshot()
			if got := ids(w.Days[0].Items); !equalIDs(got, tc.want) {
				t.Fatalf("items = %v, want %v", got, tc.want)
			}
			if len(p.saved) != 1 {
				t.Fatalf("saves = %d, want 1", len(p.saved))
			}
		})
	}
}

func TestReferentialMissesAreNoOps(t *testing.T) {
	ed, p := newEditor(t)
	before, _ := ed.Snapshot()

	steps := []func() error{
		func() error { return ed.AddItem("nope", item("n", 10), nil) },
		func() error { return ed.RemoveItem("d1", "nope") },
		func() error { return ed.UpdateItem("d1", "nope", model.ItemPatch{Title: model.Ptr("x")}) },
		func() error { return ed.MoveItem("d2", "d1", "a", 0) },
		func() error { return ed.MoveItem("d1", "nope", "a", 0) },
		func() error { return ed.UpdateDay("nope", model.DayPatch{StartTime: model.Ptr("08:00")}) },
		func() error { return ed.RemoveDay("nope") },
	}
	for i, step := range steps {
		if err := step(); err != nil {
			t.Fatalf("step %d: unexpected error %v", i, err)
		}
	}
	after, _ := ed.Snapshot()
	if !after.UpdatedAt.Equal(before.UpdatedAt) || len(p.saved) != 0 {
		t.Fatalf("no-op mutated state: saves=%d", len(p.saved))
	}
}

func TestNothingLoadedIsNoOp(t *testing.T) {
	p := &memPersister{}
	ed := NewEditor(p)
	if err := ed.AddDay(); err != nil {
		t.Fatalf("AddDay: %v", err)
	}
	if len(p.saved) != 0 {
		t.Fatalf("persisted without a workshop")
	}
	if _, err := ed.Current(); !errors.Is(err, ErrNoWorkshop) {
		t.Fatalf("Current err = %v", err)
	}
}

func TestMoveItem_RoundTripPreservesIdentityAndFields(t *testing.T) {
	ed, _ := newEditor(t)
	desc := &model.Description{Short: "why", Objectives: []string{"o1"}}
	if err := ed.UpdateItem("d1", "b", model.ItemPatch{Description: desc, Tools: model.Ptr([]string{})}); err != nil {
		t.Fatal(err)
	}
	orig, _ := ed.FindItem("b")

	if err := ed.MoveItem("d1", "d2", "b", 0); err != nil {
		t.Fatal(err)
	}
	if got := ed.DayOf("b"); got != "d2" {
		t.Fatalf("after first move day = %q", got)
	}
	if err := ed.MoveItem("d2", "d1", "b", 2); err != nil {
		t.Fatal(err)
	}
	w, _ := ed.Snapshot()
	if got := ids(w.Days[0].Items); !equalIDs(got, []string{"a", "c", "b"}) {
		t.Fatalf("items = %v", got)
	}
	moved, _ := ed.FindItem("b")
	if moved.Title != orig.Title || moved.DurationMinutes != orig.DurationMinutes ||
		moved.Description == nil || moved.Description.Short != "why" || moved.Tools == nil || len(moved.Tools) != 0 {
		t.Fatalf("fields changed across move: %+v", moved)
	}
	if len(w.Days[1].Items) != 0 {
		t.Fatalf("source day not emptied")
	}
}

func TestMoveItem_SameDayIndexAppliesAfterRemoval(t *testing.T) {
	ed, _ := newEditor(t)
	if err := ed.MoveItem("d1", "d1", "a", 2); err != nil {
		t.Fatal(err)
	}
	w, _ := ed.Snapshot()
	if got := ids(w.Days[0].Items); !equalIDs(got, []string{"b", "c", "a"}) {
		t.Fatalf("items = %v", got)
	}
}

func TestRemoveDay_RefusesLastDay(t *testing.T) {
	ed, _ := newEditor(t)
	if err := ed.RemoveDay("d2"); err != nil {
		t.Fatal(err)
	}
	if ed.CanRemoveDay() {
		t.Fatalf("CanRemoveDay should be false with one day")
	}
	if err := ed.RemoveDay("d1"); !errors.Is(err, ErrLastDay) {
		t.Fatalf("err = %v, want ErrLastDay", err)
	}
	w, _ := ed.Snapshot()
	if len(w.Days) != 1 {
		t.Fatalf("days = %d, want 1", len(w.Days))
	}
}

func TestDateOffsetsFollowPosition(t *testing.T) {
	ed, _ := newEditor(t)
	steps := []func(w model.Workshop) error{
		func(model.Workshop) error { return ed.AddDay() },
		func(model.Workshop) error { return ed.AddDay() },
		func(w model.Workshop) error { return ed.RemoveDay(w.Days[1].ID) },
		func(w model.Workshop) error { return ed.MoveItem("d1", w.Days[len(w.Days)-1].ID, "a", 0) },
		func(w model.Workshop) error { return ed.RemoveDay(w.Days[0].ID) },
		func(model.Workshop) error { return ed.AddDay() },
	}
	for i, step := range steps {
		w, _ := ed.Snapshot()
		if err := step(w); err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		w, _ = ed.Snapshot()
		for k, d := range w.Days {
			if d.DateOffset != k {
				t.Fatalf("step %d: day %d has offset %d", i, k, d.DateOffset)
			}
		}
	}
}

func TestAddDay_InheritsFirstDayStart(t *testing.T) {
	ed, _ := newEditor(t)
	if err := ed.UpdateDay("d1", model.DayPatch{StartTime: model.Ptr("08:30")}); err != nil {
		t.Fatal(err)
	}
	if err := ed.AddDay(); err != nil {
		t.Fatal(err)
	}
	w, _ := ed.Snapshot()
	last := w.Days[len(w.Days)-1]
	if last.StartTime != "08:30" || last.DateOffset != 2 || last.Items == nil {
		t.Fatalf("new day = %+v", last)
	}
}

func TestMutationsRefreshUpdatedAtAndNotify(t *testing.T) {
	ed, p := newEditor(t)
	var got []model.Workshop
	cancel := ed.Subscribe(func(w model.Workshop) { got = append(got, w) })

	if err := ed.UpdateMeta(model.MetaPatch{Name: model.Ptr("Renamed")}); err != nil {
		t.Fatal(err)
	}
	first, _ := ed.Snapshot()
	if err := ed.RemoveItem("d1", "a"); err != nil {
		t.Fatal(err)
	}
	second, _ := ed.Snapshot()
	if !second.UpdatedAt.After(first.UpdatedAt) {
		t.Fatalf("UpdatedAt not refreshed: %v then %v", first.UpdatedAt, second.UpdatedAt)
	}
	if len(got) != 2 || got[0].Name != "Renamed" || len(got[1].Days[0].Items) != 2 {
		t.Fatalf("notifications = %d", len(got))
	}
	if p.saved[1].Name != "Renamed" {
		t.Fatalf("persisted document lost earlier change")
	}

	cancel()
	_ = ed.AddDay()
	if len(got) != 2 {
		t.Fatalf("notified after cancel")
	}
}

func TestPersistFailureKeepsInMemoryState(t *testing.T) {
	p := &memPersister{err: errors.New("quota exceeded")}
	ed := NewEditor(p)
	ed.Load(fixture())
	if err := ed.RemoveItem("d1", "a"); err == nil {
		t.Fatalf("expected persistence error")
	}
	w, _ := ed.Snapshot()
	if len(w.Days[0].Items) != 2 {
		t.Fatalf("in-memory state not updated")
	}
}

func TestReorderItems_ReplacesSequence(t *testing.T) {
	ed, _ := newEditor(t)
	w, _ := ed.Snapshot()
	items := w.Days[0].Items
	next := []model.AgendaItem{items[2], items[0], items[1]}
	if err := ed.ReorderItems("d1", next); err != nil {
		t.Fatal(err)
	}
	w, _ = ed.Snapshot()
	if got := ids(w.Days[0].Items); !equalIDs(got, []string{"c", "a", "b"}) {
		t.Fatalf("items = %v", got)
	}
}

func TestSnapshotIsIsolated(t *testing.T) {
	ed, _ := newEditor(t)
	w, _ := ed.Snapshot()
	w.Days[0].Items[0].Title = "mutated"
	again, _ := ed.Snapshot()
	if again.Days[0].Items[0].Title == "mutated" {
		t.Fatalf("snapshot aliases editor state")
	}
}
