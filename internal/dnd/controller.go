package dnd

import (
	"log/slog"

	"workshop-planner/internal/library"
)

type State int

const (
	Idle State = iota
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Marker is an insertion position: before the item at Index in day DayID, or
// at the end when Index equals the day's length.
type Marker struct {
	DayID string
	Index int
}

// Frame is one pointer sample together with the layout it was taken against.
type Frame struct {
	Layout  Layout
	Pointer Point
	// Active is the dragged element's rect translated to the pointer. May be
	// empty, in which case the pointer is used.
	Active Rect
}

// Controller is the drag session state machine. Hover only changes marker
// state; the agenda is touched solely through the Intent returned by Drop.
type Controller struct {
	state    State
	entity   Entity
	over     Collision
	resolved *Marker
	visible  bool
	log      *slog.Logger
}

func NewController(log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{log: log}
}

func (c *Controller) State() State { return c.state }

// Active returns the dragged entity, or nil when idle.
func (c *Controller) Active() Entity { return c.entity }

// Marker returns the insertion marker to draw. Same-day reorders track a
// position without showing one.
func (c *Controller) Marker() (Marker, bool) {
	if c.state != Dragging || c.resolved == nil || !c.visible {
		return Marker{}, false
	}
	return *c.resolved, true
}

// Resolved returns the tracked insertion position, shown or not.
func (c *Controller) Resolved() (Marker, bool) {
	if c.resolved == nil {
		return Marker{}, false
	}
	return *c.resolved, true
}

// Over reports the collision from the last hover.
func (c *Controller) Over() Collision { return c.over }

// Start begins a session for e, discarding any stale marker.
func (c *Controller) Start(e Entity) {
	c.reset()
	c.state = Dragging
	c.entity = e
	c.log.Debug("drag start", "entity", Label(e))
}

// Hover re-resolves the target for the frame. It is idempotent for a given
// frame.
func (c *Controller) Hover(f Frame) {
	if c.state != Dragging {
		return
	}
	col := Detect(f.Layout, f.Pointer, f.Active)
	c.over = col
	c.resolved = nil
	c.visible = false

	var m Marker
	switch col.Kind {
	case TargetDay:
		m = Marker{DayID: col.DayID, Index: col.Index}
	case TargetItem:
		m = Marker{DayID: col.DayID, Index: col.Index}
		ref := f.Pointer.Y
		if !f.Active.Empty() {
			ref = f.Active.Center().Y
		}
		if ref >= col.Rect.Center().Y {
			m.Index++
		}
	default:
		return
	}
	c.resolved = &m
	c.visible = true
	if p, ok := c.entity.(PlacedRef); ok {
		if src, ok := f.Layout.item(p.ItemID); ok && src.DayID == m.DayID {
			c.visible = false
		}
	}
}

// Cancel ends the session without any agenda change.
func (c *Controller) Cancel() {
	if c.state == Dragging {
		c.log.Debug("drag cancel", "entity", Label(c.entity))
	}
	c.reset()
}

// Drop resolves the final frame and returns the agenda change to make, or nil
// when the drop has no effect. The controller is idle afterwards.
func (c *Controller) Drop(f Frame) Intent {
	if c.state != Dragging {
		return nil
	}
	c.Hover(f)
	in := c.intent(f.Layout)
	c.log.Debug("drag drop", "entity", Label(c.entity), "over", c.over.Kind.String(), "intent", describe(in))
	c.reset()
	return in
}

func (c *Controller) intent(l Layout) Intent {
	switch e := c.entity.(type) {
	case LibraryRef:
		if c.over.Kind == TargetTrash || c.resolved == nil {
			return nil
		}
		idx := c.resolved.Index
		return AddIntent{DayID: c.resolved.DayID, Item: library.InstantiateItem(e.Template), Index: &idx}

	case PlacedRef:
		src, ok := l.item(e.ItemID)
		if !ok {
			return nil
		}
		if c.over.Kind == TargetTrash {
			return RemoveIntent{DayID: src.DayID, ItemID: e.ItemID}
		}
		if c.resolved == nil {
			return nil
		}
		if c.resolved.DayID != src.DayID {
			return MoveIntent{FromDayID: src.DayID, ToDayID: c.resolved.DayID, ItemID: e.ItemID, Index: c.resolved.Index}
		}
		to := c.resolved.Index
		if to > src.Index {
			to--
		}
		if to == src.Index {
			return nil
		}
		return ReorderIntent{DayID: src.DayID, ItemID: e.ItemID, To: to}
	}
	return nil
}

func (c *Controller) reset() {
	c.state = Idle
	c.entity = nil
	c.over = Collision{}
	c.resolved = nil
	c.visible = false
}
