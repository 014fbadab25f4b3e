package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"workshop-planner/internal/agenda"
	"workshop-planner/internal/library"
	"workshop-planner/internal/model"
	"workshop-planner/internal/store"
	"workshop-planner/internal/tui"
)

func newTUICmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [workshop-id]",
		Short: "Open the interactive agenda editor",
		Long: strings.TrimSpace(`
Opens the drag-and-drop editor. Without an id the last opened workshop is
used, then the first stored one; an empty collection gets a new blank workshop.

Storage problems never block the editor: if the data dir is unusable the
editor runs on an in-memory store and changes are not kept.
`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := ""
			if len(args) == 1 {
				id = args[0]
			}
			return runTUI(cmd, app, id)
		},
	}
}

func runTUI(cmd *cobra.Command, app *App, id string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := store.LoadConfig()
	if err != nil {
		return writeErr(cmd, err)
	}
	dir, err := store.DataDir(app.Dir, cfg)
	if err != nil {
		return writeErr(cmd, err)
	}
	if app.st == nil {
		app.st = store.OpenBestEffort(ctx, dir, store.WithLogger(app.logger()))
	}
	st := app.st

	lastID := cfg.LastWorkshopID
	w, err := pickWorkshop(ctx, st, id, lastID)
	if err != nil {
		return writeErr(cmd, err)
	}
	if !st.Ephemeral() {
		app.rememberWorkshop(w.ID)
	}

	ed := agenda.NewEditor(st, agenda.WithLogger(app.logger()))
	ed.Load(w)

	opts := tui.Options{Catalog: library.Default(), Logger: app.logger()}
	if cfg.TUI != nil {
		opts.RowsPerHour = cfg.TUI.RowsPerHour
		opts.Glyphs = cfg.TUI.Glyphs
	}
	if st.Ephemeral() {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning: storage unavailable, changes will not be kept")
	}
	if err := tui.Run(ed, opts); err != nil {
		return writeErr(cmd, err)
	}
	return nil
}

// pickWorkshop chooses what the editor opens: the explicit id, else the
// remembered one, else the first stored workshop, else a new blank one.
func pickWorkshop(ctx context.Context, st agenda.Store, id, lastID string) (model.Workshop, error) {
	if id = strings.TrimSpace(id); id != "" {
		w, err := st.Get(ctx, id)
		if err != nil {
			return model.Workshop{}, mapStoreErr(id, err)
		}
		return w, nil
	}
	if lastID != "" {
		if w, err := st.Get(ctx, lastID); err == nil {
			return w, nil
		}
	}
	if all := st.LoadAll(ctx); len(all) > 0 {
		return all[0], nil
	}
	// A failed save still opens the blank workshop; every later change
	// retries the write.
	w, _ := st.SaveOne(ctx, agenda.Blank("", time.Now()))
	return w, nil
}
