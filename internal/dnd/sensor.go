package dnd

// DefaultThreshold is the pointer travel (in cells) before a press turns into
// a drag.
const DefaultThreshold = 1.0

// Sensor turns press/motion/release into either a drag activation or a click.
type Sensor struct {
	Threshold float64

	pressed bool
	origin  Point
	active  bool
}

// Press arms the sensor at p.
func (s *Sensor) Press(p Point) {
	s.pressed = true
	s.origin = p
	s.active = false
}

// Move reports true exactly once, on the motion that crosses the threshold.
func (s *Sensor) Move(p Point) bool {
	if !s.pressed || s.active {
		return false
	}
	th := s.Threshold
	if th <= 0 {
		th = DefaultThreshold
	}
	if dist(s.origin, p) >= th {
		s.active = true
		return true
	}
	return false
}

// Release disarms the sensor. click is true when the press never became a drag.
func (s *Sensor) Release() (click bool) {
	click = s.pressed && !s.active
	s.pressed = false
	s.active = false
	return click
}

func (s *Sensor) Pressed() bool  { return s.pressed }
func (s *Sensor) Dragging() bool { return s.active }
func (s *Sensor) Origin() Point  { return s.origin }
