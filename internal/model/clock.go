package model

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinutesPerDay       = 1440
	DefaultStartTime    = "09:00"
	DefaultWorkshopName = "Untitled Workshop"
)

// ParseClock parses a wall-clock "HH:MM" into minutes since midnight.
func ParseClock(s string) (int, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return 0, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return h*60 + m, nil
}

// FormatClock renders minutes since midnight as "HH:MM", wrapping modulo 24h.
func FormatClock(minutes int) string {
	m := minutes % MinutesPerDay
	if m < 0 {
		m += MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// AddMinutes returns the wall-clock label minutes after start.
// An unparsable start is treated as midnight.
func AddMinutes(start string, minutes int) string {
	base, err := ParseClock(start)
	if err != nil {
		base = 0
	}
	return FormatClock(base + minutes)
}

// EndTime is the wall-clock label after all items of the day have run.
func (d WorkshopDay) EndTime() string {
	return AddMinutes(d.StartTime, d.TotalMinutes())
}

// ItemStartTime is day.StartTime plus the durations of items 0..index-1.
func (d WorkshopDay) ItemStartTime(index int) string {
	total := 0
	for i := 0; i < index && i < len(d.Items); i++ {
		total += d.Items[i].DurationMinutes
	}
	return AddMinutes(d.StartTime, total)
}

func equalFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
