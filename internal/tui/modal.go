package tui

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"workshop-planner/internal/model"
)

type modalKind int

const (
	modalNone modalKind = iota
	modalEdit
	modalConfirmDeleteDay
	modalInfo
	modalStartTime
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

func modalBodyWidth(width int) int {
	w := width - 12
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderModalBox(width int, title, content string) string {
	bodyW := modalBodyWidth(width)
	head := lipgloss.NewStyle().
		Width(bodyW).
		Padding(0, 1).
		Bold(true).
		Foreground(colorSurfaceFg).
		Background(colorModalHeader).
		Render(title)
	body := lipgloss.NewStyle().
		Width(bodyW).
		Padding(1, 1).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(content)
	return lipgloss.JoinVertical(lipgloss.Left, head, body)
}

func renderConfirmModal(width int, title, body, confirmLabel, cancelLabel string, focus confirmModalFocus) string {
	btn := lipgloss.NewStyle().Padding(0, 1).Foreground(colorSurfaceFg).Background(colorControlBg)
	active := btn.Foreground(colorAccentFg).Background(colorAccent).Bold(true)

	confirm, cancel := btn.Render(confirmLabel), btn.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = active.Render(confirmLabel)
	} else {
		cancel = active.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)
	help := styleMuted().Render("tab: focus   enter: select   esc: cancel")
	return renderModalBox(width, title, strings.Join([]string{body, "", controls, "", help}, "\n"))
}

const (
	fieldTitle = iota
	fieldDuration
	fieldCategory
	fieldShort
	fieldObjectives
	fieldOutcomes
	fieldInstructions
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Title",
	"Duration (min)",
	"Category",
	"Description",
	"Objectives (separate with ;)",
	"Outcomes (separate with ;)",
	"Instructions",
}

const listSep = "; "

// splitList reads a ";" or newline separated field. Blank entries are
// dropped; no entries gives nil.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == '\n' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// editForm edits one placed item.
type editForm struct {
	dayID  string
	item   model.AgendaItem
	inputs [fieldCount]textinput.Model
	focus  int
	err    string
}

func newEditForm(dayID string, it model.AgendaItem) editForm {
	f := editForm{dayID: dayID, item: it.Clone()}
	values := [fieldCount]string{
		it.Title,
		strconv.Itoa(it.DurationMinutes),
		string(it.Category),
		it.ShortDescription(),
		"",
		"",
		"",
	}
	if d := it.Description; d != nil {
		values[fieldObjectives] = strings.Join(d.Objectives, listSep)
		values[fieldOutcomes] = strings.Join(d.Outcomes, listSep)
	}
	if it.Instructions != nil {
		values[fieldInstructions] = *it.Instructions
	}
	for i := range f.inputs {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 500
		ti.Width = 40
		ti.SetValue(values[i])
		f.inputs[i] = ti
	}
	f.inputs[fieldDuration].CharLimit = 4
	f.inputs[fieldTitle].Focus()
	return f
}

func (f *editForm) cycle(delta int) {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + fieldCount) % fieldCount
	f.inputs[f.focus].Focus()
}

func (f *editForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

var (
	errEmptyTitle  = errors.New("title is required")
	errBadDuration = errors.New("duration must be a positive number of minutes")
	errBadCategory = errors.New("unknown category")
)

// patch validates the form and returns the changes to apply.
func (f editForm) patch() (model.ItemPatch, error) {
	var p model.ItemPatch

	title := strings.TrimSpace(f.inputs[fieldTitle].Value())
	if title == "" {
		return p, errEmptyTitle
	}
	if title != f.item.Title {
		p.Title = &title
	}

	dur, err := strconv.Atoi(strings.TrimSpace(f.inputs[fieldDuration].Value()))
	if err != nil || dur <= 0 {
		return p, errBadDuration
	}
	if dur != f.item.DurationMinutes {
		p.DurationMinutes = &dur
	}

	cat, ok := model.ParseCategory(strings.TrimSpace(f.inputs[fieldCategory].Value()))
	if !ok {
		return p, errBadCategory
	}
	if cat != f.item.Category {
		p.Category = &cat
	}

	short := strings.TrimSpace(f.inputs[fieldShort].Value())
	objectives := splitList(f.inputs[fieldObjectives].Value())
	outcomes := splitList(f.inputs[fieldOutcomes].Value())
	d := f.item.Description.Clone()
	if d == nil {
		d = &model.Description{}
	}
	if short != d.Short || !slices.Equal(objectives, d.Objectives) || !slices.Equal(outcomes, d.Outcomes) {
		d.Short = short
		d.Objectives = objectives
		d.Outcomes = outcomes
		p.Description = d
	}

	instr := strings.TrimSpace(f.inputs[fieldInstructions].Value())
	old := ""
	if f.item.Instructions != nil {
		old = *f.item.Instructions
	}
	if instr != old {
		p.Instructions = &instr
	}
	return p, nil
}

func (f editForm) view(width int) string {
	var b strings.Builder
	for i := range f.inputs {
		label := fieldLabels[i]
		if i == f.focus {
			label = styleAccent().Render(label)
		} else {
			label = styleMuted().Render(label)
		}
		b.WriteString(label + "\n" + f.inputs[i].View() + "\n")
	}
	if f.err != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorDanger).Render(f.err) + "\n")
	}
	if md := renderMarkdown(itemMarkdown(f.item), modalBodyWidth(width)-2); md != "" {
		b.WriteString("\n" + md + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: next field   enter: save   esc: cancel"))
	return renderModalBox(width, "Edit activity", b.String())
}

var errBadStartTime = errors.New("start time must be HH:MM (00:00 to 23:59)")

// startForm edits the start time of one day.
type startForm struct {
	dayID   string
	ordinal int
	input   textinput.Model
	err     string
}

func newStartForm(day model.WorkshopDay, ordinal int) startForm {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 5
	ti.Width = 8
	ti.SetValue(day.StartTime)
	ti.Focus()
	return startForm{dayID: day.ID, ordinal: ordinal, input: ti}
}

func (f *startForm) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return cmd
}

// value returns the entered time normalized to "HH:MM".
func (f startForm) value() (string, error) {
	mins, err := model.ParseClock(f.input.Value())
	if err != nil {
		return "", errBadStartTime
	}
	return model.FormatClock(mins), nil
}

func (f startForm) view(width int) string {
	var b strings.Builder
	b.WriteString(styleAccent().Render("Start time (HH:MM)") + "\n" + f.input.View() + "\n")
	if f.err != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorDanger).Render(f.err) + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("enter: save   esc: cancel"))
	return renderModalBox(width, fmt.Sprintf("Day %d", f.ordinal), b.String())
}
