package dnd

import "math"

type Point struct {
	X, Y float64
}

// Rect is an axis-aligned box; X/Y is the top-left corner.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains is half-open: the right and bottom edges are outside.
func (r Rect) Contains(p Point) bool {
	return !r.Empty() && p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Center() Point { return Point{X: r.X + r.W/2, Y: r.Y + r.H/2} }

// Translate returns r moved by the pointer delta from->to.
func (r Rect) Translate(from, to Point) Rect {
	r.X += to.X - from.X
	r.Y += to.Y - from.Y
	return r
}

func dist(a, b Point) float64 { return math.Hypot(a.X-b.X, a.Y-b.Y) }

// DayBox is a day column's drop container. Add is the trailing "add activity"
// row, which is a drop target for the day in its own right.
type DayBox struct {
	ID    string
	Rect  Rect
	Add   Rect
	Count int
}

// ItemBox is one placed item as rendered.
type ItemBox struct {
	ID    string
	DayID string
	Index int
	Rect  Rect
}

// Layout is the placement snapshot a hover evaluation reads. It is rebuilt
// for each rendered frame and never mutated by the controller.
type Layout struct {
	Days  []DayBox
	Items []ItemBox
	Trash Rect
}

func (l Layout) day(id string) (DayBox, bool) {
	for _, d := range l.Days {
		if d.ID == id {
			return d, true
		}
	}
	return DayBox{}, false
}

func (l Layout) item(id string) (ItemBox, bool) {
	for _, it := range l.Items {
		if it.ID == id {
			return it, true
		}
	}
	return ItemBox{}, false
}
