package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"workshop-planner/internal/agenda"
	"workshop-planner/internal/model"
	"workshop-planner/internal/store"
)

// resolveDay accepts a day id or a 1-based day number.
func resolveDay(w model.Workshop, ref string) (model.WorkshopDay, bool) {
	ref = strings.TrimSpace(ref)
	if i := w.FindDay(ref); i >= 0 {
		return w.Days[i], true
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(w.Days) {
		return w.Days[n-1], true
	}
	return model.WorkshopDay{}, false
}

// openEditor loads a workshop into an editor persisting through the store.
func openEditor(cmd *cobra.Command, app *App, workshopID string) (*agenda.Editor, *store.DocStore, error) {
	col, st, err := openCollection(cmd, app)
	if err != nil {
		return nil, nil, err
	}
	ed, err := col.Open(cmd.Context(), workshopID, agenda.WithLogger(app.logger()))
	if err != nil {
		return nil, nil, mapStoreErr(workshopID, err)
	}
	return ed, st, nil
}

func editorDay(ed *agenda.Editor, ref string) (model.Workshop, model.WorkshopDay, error) {
	w, err := ed.Current()
	if err != nil {
		return model.Workshop{}, model.WorkshopDay{}, err
	}
	d, ok := resolveDay(w, ref)
	if !ok {
		return w, model.WorkshopDay{}, errNotFound("day", ref)
	}
	return w, d, nil
}

func parseCategory(s string) (model.Category, error) {
	c, ok := model.ParseCategory(s)
	if !ok {
		return "", invalidArgError{flag: "--category", value: s, reason: "unknown category"}
	}
	return c, nil
}

func parseClockFlag(flag, s string) (string, error) {
	m, err := model.ParseClock(s)
	if err != nil {
		return "", invalidArgError{flag: flag, value: s, reason: "want HH:MM"}
	}
	return model.FormatClock(m), nil
}

// compactList trims entries and drops blanks; nothing left gives nil.
func compactList(xs []string) []string {
	var out []string
	for _, x := range xs {
		if x = strings.TrimSpace(x); x != "" {
			out = append(out, x)
		}
	}
	return out
}
