package dnd

import (
	"fmt"

	"workshop-planner/internal/model"
)

// Intent is an agenda change produced by a drop.
type Intent interface {
	isIntent()
}

// AddIntent places a newly instantiated item. An empty or unknown DayID falls
// back to the end of the first day; a nil Index appends.
type AddIntent struct {
	DayID string
	Item  model.AgendaItem
	Index *int
}

type MoveIntent struct {
	FromDayID string
	ToDayID   string
	ItemID    string
	Index     int
}

// ReorderIntent moves an item within its day; To is the final position.
type ReorderIntent struct {
	DayID  string
	ItemID string
	To     int
}

type RemoveIntent struct {
	DayID  string
	ItemID string
}

func (AddIntent) isIntent()     {}
func (MoveIntent) isIntent()    {}
func (ReorderIntent) isIntent() {}
func (RemoveIntent) isIntent()  {}

func describe(in Intent) string {
	switch v := in.(type) {
	case AddIntent:
		return fmt.Sprintf("add %q to %s", v.Item.Title, v.DayID)
	case MoveIntent:
		return fmt.Sprintf("move %s %s->%s@%d", v.ItemID, v.FromDayID, v.ToDayID, v.Index)
	case ReorderIntent:
		return fmt.Sprintf("reorder %s in %s to %d", v.ItemID, v.DayID, v.To)
	case RemoveIntent:
		return fmt.Sprintf("remove %s from %s", v.ItemID, v.DayID)
	default:
		return "none"
	}
}

// Agenda is the part of the agenda editor a drop writes through.
type Agenda interface {
	Snapshot() (model.Workshop, bool)
	AddItem(dayID string, item model.AgendaItem, index *int) error
	RemoveItem(dayID, itemID string) error
	MoveItem(fromDayID, toDayID, itemID string, toIndex int) error
	ReorderItems(dayID string, items []model.AgendaItem) error
}

// Apply executes in against a. A nil intent does nothing.
func Apply(a Agenda, in Intent) error {
	switch v := in.(type) {
	case nil:
		return nil
	case AddIntent:
		w, ok := a.Snapshot()
		if !ok || len(w.Days) == 0 {
			return nil
		}
		if w.FindDay(v.DayID) < 0 {
			return a.AddItem(w.Days[0].ID, v.Item, nil)
		}
		return a.AddItem(v.DayID, v.Item, v.Index)
	case MoveIntent:
		return a.MoveItem(v.FromDayID, v.ToDayID, v.ItemID, v.Index)
	case ReorderIntent:
		w, ok := a.Snapshot()
		if !ok {
			return nil
		}
		di := w.FindDay(v.DayID)
		if di < 0 {
			return nil
		}
		from := w.Days[di].IndexOf(v.ItemID)
		if from < 0 {
			return nil
		}
		return a.ReorderItems(v.DayID, arrayMove(w.Days[di].Items, from, v.To))
	case RemoveIntent:
		return a.RemoveItem(v.DayID, v.ItemID)
	default:
		return fmt.Errorf("dnd: unknown intent %T", in)
	}
}

func arrayMove(items []model.AgendaItem, from, to int) []model.AgendaItem {
	out := append([]model.AgendaItem(nil), items...)
	if from < 0 || from >= len(out) {
		return out
	}
	if to < 0 {
		to = 0
	}
	if to >= len(out) {
		to = len(out) - 1
	}
	it := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]model.AgendaItem{it}, out[to:]...)...)
	return out
}
