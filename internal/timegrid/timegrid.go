// Package timegrid maps a day's variable-duration items onto a vertical axis.
//
// Item extents are never shorter than a minimum card height, so the minute to
// position mapping is piecewise linear rather than a single scale factor.
package timegrid

import (
	"math"

	"workshop-planner/internal/model"
)

// Metrics are expressed in the renderer's vertical unit (pixels in a browser,
// fractional rows in the terminal).
type Metrics struct {
	PxPerMinute   float64
	MinCardHeight float64
	ItemGap       float64
}

var DefaultMetrics = Metrics{PxPerMinute: 1.5, MinCardHeight: 28, ItemGap: 4}

// Breakpoint pairs an elapsed minute with its position.
type Breakpoint struct {
	Minute int
	Px     float64
}

type Tick struct {
	Label string
	Px    float64
	IsEnd bool
}

// Grid is the layout of one day. It is immutable once built.
type Grid struct {
	metrics     Metrics
	start       int
	total       int
	heights     []float64
	tops        []float64
	breakpoints []Breakpoint
}

// Height is the extent of a single item of the given duration.
func (m Metrics) Height(minutes int) float64 {
	return math.Max(float64(minutes)*m.PxPerMinute, m.MinCardHeight)
}

// Build parses startTime ("HH:MM") and lays out durations.
func Build(startTime string, durations []int, m Metrics) (Grid, error) {
	start, err := model.ParseClock(startTime)
	if err != nil {
		return Grid{}, err
	}
	return BuildMinutes(start, durations, m), nil
}

// BuildMinutes lays out durations starting at minute start (minutes since midnight).
func BuildMinutes(start int, durations []int, m Metrics) Grid {
	g := Grid{
		metrics:     m,
		start:       start,
		heights:     make([]float64, len(durations)),
		tops:        make([]float64, len(durations)),
		breakpoints: make([]Breakpoint, 0, len(durations)+1),
	}
	g.breakpoints = append(g.breakpoints, Breakpoint{Minute: 0, Px: 0})

	cumMin := 0
	cumPx := 0.0
	for i, d := range durations {
		h := m.Height(d)
		g.heights[i] = h
		g.tops[i] = cumPx
		cumMin += d
		cumPx += h
		g.breakpoints = append(g.breakpoints, Breakpoint{Minute: cumMin, Px: cumPx})
		if i < len(durations)-1 {
			cumPx += m.ItemGap
		}
	}
	g.total = cumMin
	return g
}

func (g Grid) Heights() []float64 { return append([]float64(nil), g.heights...) }

// Offsets returns the top position of each item.
func (g Grid) Offsets() []float64 { return append([]float64(nil), g.tops...) }

func (g Grid) Breakpoints() []Breakpoint { return append([]Breakpoint(nil), g.breakpoints...) }

// TotalMinutes is the unwrapped elapsed time of the day.
func (g Grid) TotalMinutes() int { return g.total }

// Extent is the position of the end of the last item.
func (g Grid) Extent() float64 { return g.breakpoints[len(g.breakpoints)-1].Px }

// ToPx maps an elapsed minute to a position. Inside the laid out span it
// interpolates between item boundaries; past the end it extrapolates at the
// nominal rate.
func (g Grid) ToPx(minute float64) float64 {
	if minute <= 0 {
		return minute * g.metrics.PxPerMinute
	}
	for i := 0; i < len(g.breakpoints)-1; i++ {
		a, b := g.breakpoints[i], g.breakpoints[i+1]
		if minute >= float64(a.Minute) && minute <= float64(b.Minute) {
			span := float64(b.Minute - a.Minute)
			if span == 0 {
				return a.Px
			}
			return a.Px + (minute-float64(a.Minute))/span*(b.Px-a.Px)
		}
	}
	last := g.breakpoints[len(g.breakpoints)-1]
	return last.Px + (minute-float64(last.Minute))*g.metrics.PxPerMinute
}

// Ticks returns the ruler labels: the start time, each hour boundary strictly
// inside the day, and the end of the day. An end that lands on an existing hour
// tick marks that tick instead of adding a second one.
func (g Grid) Ticks() []Tick {
	if len(g.heights) == 0 {
		return nil
	}
	end := g.start + g.total
	ticks := []Tick{{Label: model.FormatClock(g.start), Px: 0}}

	firstHour := (g.start + 59) / 60 * 60
	for t := firstHour; t < end; t += 60 {
		offset := t - g.start
		if offset <= 0 {
			continue
		}
		ticks = append(ticks, Tick{Label: model.FormatClock(t), Px: g.ToPx(float64(offset))})
	}

	endLabel := model.FormatClock(end)
	for i := 1; i < len(ticks); i++ {
		if ticks[i].Label == endLabel {
			ticks[i].IsEnd = true
			return ticks
		}
	}
	return append(ticks, Tick{Label: endLabel, Px: g.ToPx(float64(g.total)), IsEnd: true})
}
