package cli

import (
	"github.com/spf13/cobra"

	"workshop-planner/internal/model"
)

func newDaysCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "days",
		Short: "Manage the days of a workshop",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "add <workshop-id>",
		Short: "Append a day (starts at the first day's start time)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ed.AddDay(); err != nil {
				return writeErr(cmd, err)
			}
			w, _ := ed.Snapshot()
			return writeOut(cmd, app, map[string]any{"data": w.Days[len(w.Days)-1]})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "remove <workshop-id> <day>",
		Short: "Remove a day (by id or 1-based number); the last day cannot be removed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, d, err := editorDay(ed, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ed.RemoveDay(d.ID); err != nil {
				return writeErr(cmd, err)
			}
			w, _ := ed.Snapshot()
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"removed": d.ID},
				"meta": map[string]any{"days": len(w.Days)},
			})
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "set-start <workshop-id> <day> <HH:MM>",
		Short: "Change a day's start time",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := parseClockFlag("start time", args[2])
			if err != nil {
				return writeErr(cmd, err)
			}
			ed, _, err := openEditor(cmd, app, args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			_, d, err := editorDay(ed, args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			if err := ed.UpdateDay(d.ID, model.DayPatch{StartTime: &start}); err != nil {
				return writeErr(cmd, err)
			}
			w, _ := ed.Snapshot()
			day, _ := resolveDay(w, d.ID)
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"id": day.ID, "startTime": day.StartTime, "endTime": day.EndTime()},
			})
		},
	})
	return cmd
}
