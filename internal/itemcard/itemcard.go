// Package itemcard holds the interaction state of one agenda item card: the
// bottom-edge resize gesture and click-vs-drag disambiguation.
package itemcard

import (
	"math"

	"workshop-planner/internal/model"
)

// Step is the resize snapping increment in minutes.
const Step = 5

// Snap rounds raw minutes to the nearest multiple of step, never below one
// step, and clamps to max when one is given.
func Snap(raw float64, step int, max *int) int {
	if step <= 0 {
		step = Step
	}
	v := int(math.Round(raw/float64(step))) * step
	if v < step {
		v = step
	}
	if max != nil && v > *max {
		v = *max
	}
	return v
}

type HitZone int

const (
	ZoneNone HitZone = iota
	ZoneBody
	ZoneDelete
	ZoneResize
)

func (z HitZone) String() string {
	switch z {
	case ZoneBody:
		return "body"
	case ZoneDelete:
		return "delete"
	case ZoneResize:
		return "resize"
	default:
		return "none"
	}
}

// ZoneAt maps a cell inside a card of w x h cells. The delete control takes
// the two rightmost cells of the first row; the resize handle is the last row
// of cards at least two rows tall.
func ZoneAt(x, y, w, h int, resizable bool) HitZone {
	if x < 0 || y < 0 || x >= w || y >= h {
		return ZoneNone
	}
	if resizable && h >= 2 && y == h-1 {
		return ZoneResize
	}
	if y == 0 && x >= w-2 {
		return ZoneDelete
	}
	return ZoneBody
}

type Action int

const (
	ActionNone Action = iota
	ActionEdit
	ActionDelete
)

// ResizeFunc commits a new duration for the card's item.
type ResizeFunc func(dayID, itemID string, minutes int) error

// Card is the interaction state for one rendered item.
type Card struct {
	DayID string
	Item  model.AgendaItem
	// PxPerMinute converts pointer travel into minutes.
	PxPerMinute float64
	// MaxDuration bounds resizing when set.
	MaxDuration *int
	// OnResize enables the resize handle when non-nil.
	OnResize ResizeFunc

	resizing bool
	startY   float64
	startDur int
	preview  *int

	suppressClick bool
}

func New(dayID string, it model.AgendaItem, pxPerMinute float64, onResize ResizeFunc) *Card {
	return &Card{DayID: dayID, Item: it, PxPerMinute: pxPerMinute, OnResize: onResize}
}

// Draggable is false for fixed items.
func (c *Card) Draggable() bool { return !c.Item.Fixed() }

// Resizable only depends on a handler being present, so fixed items can
// still be resized.
func (c *Card) Resizable() bool { return c.OnResize != nil }

func (c *Card) Resizing() bool { return c.resizing }

// Duration is the preview while resizing, else the item's duration.
func (c *Card) Duration() int {
	if c.preview != nil {
		return *c.preview
	}
	return c.Item.DurationMinutes
}

// BeginResize captures the gesture at pointer y. It reports false when the
// card cannot resize or a gesture is already running.
func (c *Card) BeginResize(y float64) bool {
	if !c.Resizable() || c.resizing {
		return false
	}
	c.resizing = true
	c.startY = y
	c.startDur = c.Item.DurationMinutes
	c.preview = nil
	c.suppressClick = true
	return true
}

// MoveResize updates the preview for pointer y and returns it.
func (c *Card) MoveResize(y float64) int {
	if !c.resizing {
		return c.Duration()
	}
	ppm := c.PxPerMinute
	if ppm <= 0 {
		ppm = 1
	}
	raw := float64(c.startDur) + (y-c.startY)/ppm
	v := Snap(raw, Step, c.MaxDuration)
	c.preview = &v
	return v
}

// EndResize releases the gesture. The handler runs only when the preview
// differs from the starting duration.
func (c *Card) EndResize() (final int, committed bool, err error) {
	if !c.resizing {
		return c.Item.DurationMinutes, false, nil
	}
	final = c.startDur
	if c.preview != nil {
		final = *c.preview
	}
	c.resizing = false
	c.preview = nil
	if final == c.startDur {
		return final, false, nil
	}
	if err := c.OnResize(c.DayID, c.Item.ID, final); err != nil {
		return final, true, err
	}
	c.Item.DurationMinutes = final
	return final, true, nil
}

// CancelResize drops the preview without committing.
func (c *Card) CancelResize() {
	c.resizing = false
	c.preview = nil
}

// NoteDrag records that the card was dragged, so the click that follows the
// release is swallowed.
func (c *Card) NoteDrag() { c.suppressClick = true }

// Click resolves a click in zone. A body click right after a drag or resize
// is swallowed once.
func (c *Card) Click(zone HitZone) Action {
	switch zone {
	case ZoneDelete:
		return ActionDelete
	case ZoneBody:
		if c.suppressClick {
			c.suppressClick = false
			return ActionNone
		}
		return ActionEdit
	default:
		return ActionNone
	}
}
