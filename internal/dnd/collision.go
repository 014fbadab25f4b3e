package dnd

type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetTrash
	TargetDay
	TargetItem
)

func (k TargetKind) String() string {
	switch k {
	case TargetTrash:
		return "trash"
	case TargetDay:
		return "day"
	case TargetItem:
		return "item"
	default:
		return "none"
	}
}

// Collision is the droppable under the pointer.
type Collision struct {
	Kind   TargetKind
	DayID  string
	ItemID string
	Index  int
	Rect   Rect
}

// Detect resolves the drop target for a pointer position. An exact hit on an
// item wins. Inside a day container but between items, the item whose center
// is nearest to the dragged rect's center is used, considering only items of
// that day. An empty day (or its add row) resolves to the container itself.
// Outside every container nothing collides.
//
// active is the dragged element's translated rect; when empty the pointer
// stands in for its center.
func Detect(l Layout, p Point, active Rect) Collision {
	if l.Trash.Contains(p) {
		return Collision{Kind: TargetTrash, Rect: l.Trash}
	}
	for _, it := range l.Items {
		if it.Rect.Contains(p) {
			return Collision{Kind: TargetItem, DayID: it.DayID, ItemID: it.ID, Index: it.Index, Rect: it.Rect}
		}
	}

	var day *DayBox
	for i := range l.Days {
		if l.Days[i].Rect.Contains(p) || l.Days[i].Add.Contains(p) {
			day = &l.Days[i]
			break
		}
	}
	if day == nil {
		return Collision{}
	}
	if day.Add.Contains(p) {
		return Collision{Kind: TargetDay, DayID: day.ID, Index: day.Count, Rect: day.Rect}
	}

	ref := p
	if !active.Empty() {
		ref = active.Center()
	}
	best := -1
	bestDist := 0.0
	for i, it := range l.Items {
		if it.DayID != day.ID {
			continue
		}
		d := dist(ref, it.Rect.Center())
		if best < 0 || d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return Collision{Kind: TargetDay, DayID: day.ID, Index: day.Count, Rect: day.Rect}
	}
	it := l.Items[best]
	return Collision{Kind: TargetItem, DayID: it.DayID, ItemID: it.ID, Index: it.Index, Rect: it.Rect}
}
