package cli

import (
	"errors"
	"time"

	"github.com/spf13/cobra"

	"workshop-planner/internal/daycol"
	"workshop-planner/internal/library"
	"workshop-planner/internal/model"
)

type workshopSummary struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	ClientName   *string   `json:"clientName,omitempty"`
	Days         int       `json:"days"`
	Items        int       `json:"items"`
	TotalMinutes int       `json:"totalMinutes"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func summarize(w model.Workshop) workshopSummary {
	return workshopSummary{
		ID:           w.ID,
		Name:         w.Name,
		ClientName:   w.ClientName,
		Days:         len(w.Days),
		Items:        w.ItemCount(),
		TotalMinutes: w.TotalMinutes(),
		UpdatedAt:    w.UpdatedAt,
	}
}

type scheduledItem struct {
	model.AgendaItem
	Start string `json:"start"`
	End   string `json:"end"`
}

type scheduledDay struct {
	ID           string          `json:"id"`
	Title        string          `json:"title"`
	Start        string          `json:"start"`
	End          string          `json:"end"`
	TotalMinutes int             `json:"totalMinutes"`
	Duration     string          `json:"duration"`
	Items        []scheduledItem `json:"items"`
}

func schedule(w model.Workshop) []scheduledDay {
	out := make([]scheduledDay, 0, len(w.Days))
	for i, d := range w.Days {
		col := daycol.Plan(d, i, len(w.Days), nil, daycol.TerminalMetrics(0))
		sd := scheduledDay{
			ID:           d.ID,
			Title:        col.Header.Title,
			Start:        col.Header.StartTime,
			End:          col.Header.EndTime,
			TotalMinutes: col.Header.TotalMinutes,
			Duration:     daycol.FormatDuration(col.Header.TotalMinutes),
			Items:        []scheduledItem{},
		}
		for _, r := range col.Items() {
			sd.Items = append(sd.Items, scheduledItem{AgendaItem: r.Item, Start: r.Start, End: r.End})
		}
		out = append(out, sd)
	}
	return out
}

func newWorkshopsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "workshops",
		Aliases: []string{"workshop", "ws"},
		Short:   "Manage workshops",
	}
	cmd.AddCommand(newWorkshopsListCmd(app))
	cmd.AddCommand(newWorkshopsCreateCmd(app))
	cmd.AddCommand(newWorkshopsShowCmd(app))
	cmd.AddCommand(newWorkshopsRenameCmd(app))
	cmd.AddCommand(newWorkshopsUpdateCmd(app))
	cmd.AddCommand(newWorkshopsDeleteCmd(app))
	return cmd
}

func newWorkshopsListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List workshops",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, _, err := openCollection(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			all := col.List(cmd.Context())
			out := make([]workshopSummary, 0, len(all))
			for _, w := range all {
				out = append(out, summarize(w))
			}
			return writeOut(cmd, app, map[string]any{
				"data": out,
				"meta": map[string]any{"count": len(out)},
			})
		},
	}
}

func newWorkshopsCreateCmd(app *App) *cobra.Command {
	var templateID string
	var client string
	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a blank workshop or one expanded from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, _, err := openCollection(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}

			var w model.Workshop
			if templateID != "" {
				cat := library.Default()
				tpl, ok := cat.TemplateByID(templateID)
				if !ok {
					return writeErr(cmd, errNotFound("template", templateID))
				}
				if name == "" {
					name = tpl.Name
				}
				w, err = col.CreateFromTemplate(cmd.Context(), name, cat.ExpandTemplate(tpl))
			} else {
				w, err = col.Create(cmd.Context(), name)
			}
			if err != nil {
				return writeErr(cmd, err)
			}
			if client != "" {
				w.ClientName = model.Ptr(client)
				if w, err = app.st.SaveOne(cmd.Context(), w); err != nil {
					return writeErr(cmd, err)
				}
			}
			app.logger().Info("workshop created", "workshop", w.ID, "template", templateID)
			return writeOut(cmd, app, map[string]any{
				"data":   w,
				"_hints": []string{"planner " + w.ID, "planner items add " + w.ID + " --day 1 --library \"Coffee Break\""},
			})
		},
	}
	cmd.Flags().StringVar(&templateID, "template", "", "Template id (see: planner templates list)")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	return cmd
}

func newWorkshopsShowCmd(app *App) *cobra.Command {
	var withSchedule bool
	cmd := &cobra.Command{
		Use:   "show <workshop-id>",
		Short: "Show a workshop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, st, err := openCollection(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			w, err := st.Get(cmd.Context(), args[0])
			if err != nil {
				return writeErr(cmd, mapStoreErr(args[0], err))
			}
			app.rememberWorkshop(w.ID)
			if withSchedule {
				return writeOut(cmd, app, map[string]any{
					"data": map[string]any{"workshop": summarize(w), "days": schedule(w)},
				})
			}
			return writeOut(cmd, app, map[string]any{"data": w})
		},
	}
	cmd.Flags().BoolVar(&withSchedule, "schedule", false, "Show computed start/end times per item")
	return cmd
}

func newWorkshopsRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <workshop-id> <name>",
		Short: "Rename a workshop",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, _, err := openCollection(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			w, err := col.Rename(cmd.Context(), args[0], args[1])
			if err != nil {
				return writeErr(cmd, mapStoreErr(args[0], err))
			}
			return writeOut(cmd, app, map[string]any{"data": summarize(w)})
		},
	}
}

func newWorkshopsUpdateCmd(app *App) *cobra.Command {
	var name, client, location, locationType, startDate string
	cmd := &cobra.Command{
		Use:   "update <workshop-id>",
		Short: "Update workshop metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var p model.MetaPatch
			f := cmd.Flags()
			if f.Changed("name") {
				p.Name = &name
			}
			if f.Changed("client") {
				p.ClientName = &client
			}
			if f.Changed("location") {
				p.LocationDetails = &location
			}
			if f.Changed("location-type") {
				lt := model.LocationType(locationType)
				if lt != model.LocationOffline && lt != model.LocationOnline {
					return writeErr(cmd, invalidArgError{flag: "--location-type", value: locationType, reason: "want offline or online"})
				}
				p.LocationType = &lt
			}
			if f.Changed("start-date") {
				if _, err := time.Parse(time.DateOnly, startDate); err != nil {
					return writeErr(cmd, invalidArgError{flag: "--start-date", value: startDate, reason: "want YYYY-MM-DD"})
				}
				p.StartDate = &startDate
			}
			if p == (model.MetaPatch{}) {
				return writeErr(cmd, errors.New("nothing to update"))
			}

			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ed.UpdateMeta(p); err != nil {
				return writeErr(cmd, err)
			}
			w, _ := ed.Snapshot()
			return writeOut(cmd, app, map[string]any{"data": summarize(w)})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Workshop name")
	cmd.Flags().StringVar(&client, "client", "", "Client name")
	cmd.Flags().StringVar(&location, "location", "", "Location details (address or meeting link)")
	cmd.Flags().StringVar(&locationType, "location-type", "", "offline|online")
	cmd.Flags().StringVar(&startDate, "start-date", "", "First day (YYYY-MM-DD)")
	return cmd
}

func newWorkshopsDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <workshop-id>",
		Short: "Delete a workshop",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, st, err := openCollection(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if _, err := st.Get(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, mapStoreErr(args[0], err))
			}
			if err := col.Delete(cmd.Context(), args[0]); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"deleted": args[0]}})
		},
	}
}
