package cli

import (
	"github.com/spf13/cobra"

	"workshop-planner/internal/library"
	"workshop-planner/internal/model"
)

type libraryEntry struct {
	Index int `json:"index"`
	model.AgendaItemTemplate
}

func newLibraryCmd(app *App) *cobra.Command {
	var category, search string
	var quick bool
	cmd := &cobra.Command{
		Use:   "library",
		Short: "Browse the activity library",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List library activities",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var cat model.Category
			if category != "" {
				c, err := parseCategory(category)
				if err != nil {
					return writeErr(cmd, err)
				}
				cat = c
			}
			hits := library.Default().Search(search, cat)
			out := make([]libraryEntry, 0, len(hits))
			for _, h := range hits {
				out = append(out, libraryEntry{Index: h.Index, AgendaItemTemplate: h.Template})
			}
			env := map[string]any{
				"data": out,
				"meta": map[string]any{"count": len(out)},
			}
			if quick {
				env["quickAdd"] = library.QuickAdd()
			}
			return writeOut(cmd, app, env)
		},
	}
	list.Flags().StringVar(&category, "category", "", "Filter by category id or label")
	list.Flags().StringVar(&search, "search", "", "Case-insensitive match on title or short description")
	list.Flags().BoolVar(&quick, "quick-add", false, "Include the quick-add entries")
	cmd.AddCommand(list)

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List activity categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{"data": model.Categories})
		},
	})
	return cmd
}

type templateSummary struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Description      string `json:"description"`
	DefaultStartTime string `json:"defaultStartTime"`
	Days             int    `json:"days"`
	Items            int    `json:"items"`
}

func newTemplatesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "templates",
		Short: "Browse workshop templates",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List workshop templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tpls := library.Default().Templates()
			out := make([]templateSummary, 0, len(tpls))
			for _, t := range tpls {
				n := 0
				for _, d := range t.Days {
					n += len(d.Items)
				}
				out = append(out, templateSummary{ID: t.ID, Name: t.Name, Description: t.Description, DefaultStartTime: t.DefaultStartTime, Days: len(t.Days), Items: n})
			}
			return writeOut(cmd, app, map[string]any{"data": out})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "show <template-id>",
		Short: "Show a template expanded into days",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := library.Default()
			t, ok := cat.TemplateByID(args[0])
			if !ok {
				return writeErr(cmd, errNotFound("template", args[0]))
			}
			w := model.Workshop{Name: t.Name, Days: cat.ExpandTemplate(t)}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": t.ID, "name": t.Name, "description": t.Description, "days": schedule(w)},
			})
		},
	})
	return cmd
}
