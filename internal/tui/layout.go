package tui

import (
	"strings"

	xansi "github.com/charmbracelet/x/ansi"
)

// normalizePane forces s to exactly width columns (ANSI-aware) and height
// lines, so panes can be joined side by side without drifting.
func normalizePane(s string, width, height int) string {
	if width < 0 {
		width = 0
	}
	lines := strings.Split(s, "\n")
	if height > 0 {
		if len(lines) > height {
			lines = lines[:height]
		}
		for len(lines) < height {
			lines = append(lines, "")
		}
	}
	for i := range lines {
		lines[i] = fitWidth(lines[i], width)
	}
	return strings.Join(lines, "\n")
}

// fitWidth truncates or pads a single line to width columns.
func fitWidth(ln string, width int) string {
	if width <= 0 {
		return ""
	}
	w := xansi.StringWidth(ln)
	if w > width {
		if width == 1 {
			ln = xansi.Cut(ln, 0, 1)
		} else {
			ln = xansi.Cut(ln, 0, width-1) + "…"
		}
		w = xansi.StringWidth(ln)
	}
	if w < width {
		ln += strings.Repeat(" ", width-w)
	}
	return ln
}

// overlayAt paints s over line y of view starting at column x. Cells outside
// the view are dropped.
func overlayAt(view string, x, y int, s string) string {
	lines := strings.Split(view, "\n")
	if y < 0 || y >= len(lines) || x < 0 {
		return view
	}
	ln := lines[y]
	lw := xansi.StringWidth(ln)
	if x >= lw {
		return view
	}
	sw := xansi.StringWidth(s)
	if x+sw > lw {
		s = xansi.Truncate(s, lw-x, "")
		sw = xansi.StringWidth(s)
	}
	lines[y] = xansi.Cut(ln, 0, x) + s + xansi.Cut(ln, x+sw, lw)
	return strings.Join(lines, "\n")
}
