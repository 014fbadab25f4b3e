// Package dnd runs drag sessions over the agenda board: collision detection
// against a layout snapshot, insertion marker tracking and drop resolution.
package dnd

import "workshop-planner/internal/model"

// Entity is what is being dragged: a LibraryRef or a PlacedRef.
type Entity interface {
	isEntity()
}

// LibraryRef is a library activity that has not been placed yet. Index is
// its position in the library; a negative index marks a quick-add entry.
type LibraryRef struct {
	Index    int
	Template model.AgendaItemTemplate
}

// PlacedRef is an item already on the agenda.
type PlacedRef struct {
	ItemID string
}

func (LibraryRef) isEntity() {}
func (PlacedRef) isEntity()  {}

// Label is a short description of the entity for overlays and logs.
func Label(e Entity) string {
	switch v := e.(type) {
	case LibraryRef:
		return v.Template.Title
	case PlacedRef:
		return v.ItemID
	default:
		return ""
	}
}
