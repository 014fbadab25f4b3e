package agenda

import (
	"workshop-planner/internal/model"
)

func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i > n {
		return n
	}
	return i
}

func insertAt(items []model.AgendaItem, index int, it model.AgendaItem) []model.AgendaItem {
	index = clampIndex(index, len(items))
	out := make([]model.AgendaItem, 0, len(items)+1)
	out = append(out, items[:index]...)
	out = append(out, it)
	out = append(out, items[index:]...)
	return out
}

// AddItem inserts item into the day at index, or appends when index is nil.
func (e *Editor) AddItem(dayID string, item model.AgendaItem, index *int) error {
	return e.mutate("add_item", func(w *model.Workshop) bool {
		di := w.FindDay(dayID)
		if di < 0 {
			return false
		}
		d := &w.Days[di]
		if index == nil {
			d.Items = append(d.Items, item.Clone())
		} else {
			d.Items = insertAt(d.Items, *index, item.Clone())
		}
		return true
	})
}

func (e *Editor) RemoveItem(dayID, itemID string) error {
	return e.mutate("remove_item", func(w *model.Workshop) bool {
		di := w.FindDay(dayID)
		if di < 0 {
			return false
		}
		d := &w.Days[di]
		ii := d.IndexOf(itemID)
		if ii < 0 {
			return false
		}
		d.Items = append(d.Items[:ii:ii], d.Items[ii+1:]...)
		return true
	})
}

// UpdateItem shallow-merges changes into the matching item.
func (e *Editor) UpdateItem(dayID, itemID string, changes model.ItemPatch) error {
	return e.mutate("update_item", func(w *model.Workshop) bool {
		di := w.FindDay(dayID)
		if di < 0 {
			return false
		}
		ii := w.Days[di].IndexOf(itemID)
		if ii < 0 {
			return false
		}
		w.Days[di].Items[ii].Apply(changes)
		return true
	})
}

// ReorderItems replaces a day's item sequence. Callers pass a permutation of
// the current items.
func (e *Editor) ReorderItems(dayID string, items []model.AgendaItem) error {
	return e.mutate("reorder_items", func(w *model.Workshop) bool {
		di := w.FindDay(dayID)
		if di < 0 {
			return false
		}
		next := make([]model.AgendaItem, len(items))
		for i := range items {
			next[i] = items[i].Clone()
		}
		w.Days[di].Items = next
		return true
	})
}

// MoveItem takes the item out of fromDayID and inserts the same item (same id
// and fields) into toDayID at toIndex. The index is applied after removal.
func (e *Editor) MoveItem(fromDayID, toDayID, itemID string, toIndex int) error {
	return e.mutate("move_item", func(w *model.Workshop) bool {
		fi := w.FindDay(fromDayID)
		ti := w.FindDay(toDayID)
		if fi < 0 || ti < 0 {
			return false
		}
		src := &w.Days[fi]
		ii := src.IndexOf(itemID)
		if ii < 0 {
			return false
		}
		it := src.Items[ii]
		src.Items = append(src.Items[:ii:ii], src.Items[ii+1:]...)
		dst := &w.Days[ti]
		dst.Items = insertAt(dst.Items, toIndex, it)
		return true
	})
}

// AddDay appends an empty day starting at the first day's start time.
func (e *Editor) AddDay() error {
	return e.mutate("add_day", func(w *model.Workshop) bool {
		start := model.DefaultStartTime
		if len(w.Days) > 0 && w.Days[0].StartTime != "" {
			start = w.Days[0].StartTime
		}
		w.Days = append(w.Days, model.WorkshopDay{
			ID:         model.NewID(),
			DateOffset: len(w.Days),
			StartTime:  start,
			Items:      []model.AgendaItem{},
		})
		return true
	})
}

// RemoveDay deletes a day and renumbers DateOffset by position. Removing the
// last remaining day is refused with ErrLastDay.
func (e *Editor) RemoveDay(dayID string) error {
	var refused bool
	err := e.mutate("remove_day", func(w *model.Workshop) bool {
		if len(w.Days) <= 1 {
			refused = true
			return false
		}
		di := w.FindDay(dayID)
		if di < 0 {
			return false
		}
		w.Days = append(w.Days[:di:di], w.Days[di+1:]...)
		for i := range w.Days {
			w.Days[i].DateOffset = i
		}
		return true
	})
	if refused {
		e.log.Info("refused to remove last day", "day", dayID)
		return ErrLastDay
	}
	return err
}

func (e *Editor) UpdateMeta(changes model.MetaPatch) error {
	return e.mutate("update_meta", func(w *model.Workshop) bool {
		w.Apply(changes)
		return true
	})
}

func (e *Editor) UpdateDay(dayID string, changes model.DayPatch) error {
	return e.mutate("update_day", func(w *model.Workshop) bool {
		di := w.FindDay(dayID)
		if di < 0 {
			return false
		}
		w.Days[di].Apply(changes)
		return true
	})
}

// CanRemoveDay mirrors the RemoveDay guard so UIs can disable the control.
func (e *Editor) CanRemoveDay() bool {
	w, ok := e.Snapshot()
	return ok && len(w.Days) > 1
}

// Locate returns the day id and index of itemID.
func (e *Editor) Locate(itemID string) (dayID string, index int, ok bool) {
	w, loaded := e.Snapshot()
	if !loaded {
		return "", -1, false
	}
	di := w.DayOf(itemID)
	if di < 0 {
		return "", -1, false
	}
	return w.Days[di].ID, w.Days[di].IndexOf(itemID), true
}

// FindItem returns a copy of the item with itemID.
func (e *Editor) FindItem(itemID string) (model.AgendaItem, bool) {
	w, ok := e.Snapshot()
	if !ok {
		return model.AgendaItem{}, false
	}
	di := w.DayOf(itemID)
	if di < 0 {
		return model.AgendaItem{}, false
	}
	return w.Days[di].Items[w.Days[di].IndexOf(itemID)], true
}

// DayOf returns the id of the day holding itemID, or "".
func (e *Editor) DayOf(itemID string) string {
	dayID, _, _ := e.Locate(itemID)
	return dayID
}
