package cli

import (
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"workshop-planner/internal/dnd"
	"workshop-planner/internal/itemcard"
	"workshop-planner/internal/library"
	"workshop-planner/internal/model"
)

func newItemsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		Short:   "Manage agenda items",
	}
	cmd.AddCommand(newItemsAddCmd(app))
	cmd.AddCommand(newItemsRemoveCmd(app))
	cmd.AddCommand(newItemsMoveCmd(app))
	cmd.AddCommand(newItemsUpdateCmd(app))
	cmd.AddCommand(newItemsResizeCmd(app))
	return cmd
}

func newItemsAddCmd(app *App) *cobra.Command {
	var dayRef, title, libTitle, category string
	var duration, index int
	var placeholder bool
	cmd := &cobra.Command{
		Use:   "add <workshop-id>",
		Short: "Add an item from the library (--library) or a custom one (--title)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var tpl model.AgendaItemTemplate
			switch {
			case libTitle != "":
				t, ok := library.Default().FindByTitle(libTitle)
				if !ok {
					return writeErr(cmd, errNotFound("library activity", libTitle))
				}
				tpl = t
			case placeholder:
				tpl = library.QuickAdd()[0]
			case strings.TrimSpace(title) != "":
				tpl = library.QuickAdd()[1]
				tpl.Title = title
			default:
				return writeErr(cmd, errors.New("provide --library, --title or --placeholder"))
			}
			if category != "" {
				c, err := parseCategory(category)
				if err != nil {
					return writeErr(cmd, err)
				}
				tpl.Category = c
			}
			if cmd.Flags().Changed("duration") {
				if duration <= 0 {
					return writeErr(cmd, invalidArgError{flag: "--duration", value: cmd.Flag("duration").Value.String(), reason: "must be positive"})
				}
				tpl.DefaultDuration = duration
			}

			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			in := dnd.AddIntent{Item: library.InstantiateItem(tpl)}
			if dayRef != "" {
				_, d, err := editorDay(ed, dayRef)
				if err != nil {
					return writeErr(cmd, err)
				}
				in.DayID = d.ID
				if cmd.Flags().Changed("index") {
					in.Index = &index
				}
			}
			if err := dnd.Apply(ed, in); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": in.Item})
		},
	}
	cmd.Flags().StringVar(&dayRef, "day", "", "Day id or 1-based number (default: first day)")
	cmd.Flags().IntVar(&index, "index", 0, "Insert position within the day (default: append)")
	cmd.Flags().StringVar(&libTitle, "library", "", "Library activity title")
	cmd.Flags().StringVar(&title, "title", "", "Custom item title")
	cmd.Flags().BoolVar(&placeholder, "placeholder", false, "Add an empty placeholder block")
	cmd.Flags().StringVar(&category, "category", "", "Category id or label")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	return cmd
}

func newItemsRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <workshop-id> <item-id>",
		Short: "Remove an item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			dayID, _, ok := ed.Locate(args[1])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[1]))
			}
			if err := dnd.Apply(ed, dnd.RemoveIntent{DayID: dayID, ItemID: args[1]}); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"removed": args[1]}})
		},
	}
}

func newItemsMoveCmd(app *App) *cobra.Command {
	var toDay string
	var index int
	cmd := &cobra.Command{
		Use:   "move <workshop-id> <item-id>",
		Short: "Move an item to a position in the same or another day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			fromDay, from, ok := ed.Locate(args[1])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[1]))
			}
			it, _ := ed.FindItem(args[1])
			if it.Fixed() {
				return writeErr(cmd, errors.New("item is fixed and cannot be moved"))
			}
			target := fromDay
			if toDay != "" {
				_, d, err := editorDay(ed, toDay)
				if err != nil {
					return writeErr(cmd, err)
				}
				target = d.ID
			}

			var in dnd.Intent
			if target == fromDay {
				if !cmd.Flags().Changed("index") || index == from {
					return writeOut(cmd, app, map[string]any{"data": map[string]any{"moved": false}})
				}
				in = dnd.ReorderIntent{DayID: fromDay, ItemID: args[1], To: index}
			} else {
				w, _ := ed.Snapshot()
				d, _ := resolveDay(w, target)
				to := len(d.Items)
				if cmd.Flags().Changed("index") {
					to = index
				}
				in = dnd.MoveIntent{FromDayID: fromDay, ToDayID: target, ItemID: args[1], Index: to}
			}
			if err := dnd.Apply(ed, in); err != nil {
				return writeErr(cmd, err)
			}
			dayID, pos, _ := ed.Locate(args[1])
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"moved": true, "dayId": dayID, "index": pos}})
		},
	}
	cmd.Flags().StringVar(&toDay, "to-day", "", "Destination day id or 1-based number (default: same day)")
	cmd.Flags().IntVar(&index, "index", 0, "Destination position (default: end of another day)")
	return cmd
}

func newItemsUpdateCmd(app *App) *cobra.Command {
	var title, category, short, instructions string
	var duration int
	var tools, links, objectives, outcomes []string
	var fixed bool
	cmd := &cobra.Command{
		Use:   "update <workshop-id> <item-id>",
		Short: "Update item fields",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			dayID, _, ok := ed.Locate(args[1])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[1]))
			}
			cur, _ := ed.FindItem(args[1])

			var p model.ItemPatch
			f := cmd.Flags()
			if f.Changed("title") {
				p.Title = &title
			}
			if f.Changed("category") {
				c, err := parseCategory(category)
				if err != nil {
					return writeErr(cmd, err)
				}
				p.Category = &c
			}
			if f.Changed("duration") {
				if duration <= 0 {
					return writeErr(cmd, invalidArgError{flag: "--duration", value: f.Lookup("duration").Value.String(), reason: "must be positive"})
				}
				p.DurationMinutes = &duration
			}
			if f.Changed("description") || f.Changed("objective") || f.Changed("outcome") {
				var d model.Description
				if cur.Description != nil {
					d = *cur.Description.Clone()
				}
				if f.Changed("description") {
					d.Short = short
				}
				if f.Changed("objective") {
					d.Objectives = compactList(objectives)
				}
				if f.Changed("outcome") {
					d.Outcomes = compactList(outcomes)
				}
				p.Description = &d
			}
			if f.Changed("instructions") {
				p.Instructions = &instructions
			}
			if f.Changed("tool") {
				p.Tools = &tools
			}
			if f.Changed("link") {
				p.Links = &links
			}
			if f.Changed("fixed") {
				p.IsFixed = &fixed
			}
			if p.Empty() {
				return writeErr(cmd, errors.New("nothing to update"))
			}
			if err := ed.UpdateItem(dayID, args[1], p); err != nil {
				return writeErr(cmd, err)
			}
			it, _ := ed.FindItem(args[1])
			return writeOut(cmd, app, map[string]any{"data": it})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Title")
	cmd.Flags().StringVar(&category, "category", "", "Category id or label")
	cmd.Flags().IntVar(&duration, "duration", 0, "Duration in minutes")
	cmd.Flags().StringVar(&short, "description", "", "Short description")
	cmd.Flags().StringVar(&instructions, "instructions", "", "Facilitator instructions")
	cmd.Flags().StringSliceVar(&tools, "tool", nil, "Tool (repeatable; pass --tool= to clear)")
	cmd.Flags().StringSliceVar(&links, "link", nil, "Link (repeatable; pass --link= to clear)")
	cmd.Flags().StringArrayVar(&objectives, "objective", nil, "Objective (repeatable; pass --objective= to clear)")
	cmd.Flags().StringArrayVar(&outcomes, "outcome", nil, "Outcome (repeatable; pass --outcome= to clear)")
	cmd.Flags().BoolVar(&fixed, "fixed", false, "Pin the item in place")
	return cmd
}

func newItemsResizeCmd(app *App) *cobra.Command {
	var max int
	cmd := &cobra.Command{
		Use:   "resize <workshop-id> <item-id> <minutes>",
		Short: "Set an item's duration, snapped to 5 minute steps",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := parseMinutes(args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			dayID, _, ok := ed.Locate(args[1])
			if !ok {
				return writeErr(cmd, errNotFound("item", args[1]))
			}
			it, _ := ed.FindItem(args[1])
			card := itemcard.New(dayID, it, 1, func(dayID, itemID string, minutes int) error {
				return ed.UpdateItem(dayID, itemID, model.ItemPatch{DurationMinutes: &minutes})
			})
			if cmd.Flags().Changed("max") {
				card.MaxDuration = &max
			}
			card.BeginResize(0)
			card.MoveResize(raw - float64(it.DurationMinutes))
			final, committed, err := card.EndResize()
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"id": it.ID, "durationMinutes": final, "changed": committed}})
		},
	}
	cmd.Flags().IntVar(&max, "max", 0, "Upper bound in minutes")
	return cmd
}

func parseMinutes(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "m"), 64)
	if err != nil || v <= 0 {
		return 0, invalidArgError{flag: "minutes", value: s, reason: "want a positive number"}
	}
	return v, nil
}
