package cli

import (
	"bytes"
	"os"

	"github.com/spf13/cobra"
)

func newBackupCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Export or import the workshop collection",
	}

	var out string
	export := &cobra.Command{
		Use:   "export",
		Short: "Write all workshops as JSON (stdout or --out)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if out == "" {
				return st.Export(cmd.Context(), cmd.OutOrStdout(), app.PrettyJSON)
			}
			var buf bytes.Buffer
			if err := st.Export(cmd.Context(), &buf, true); err != nil {
				return writeErr(cmd, err)
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"exportedTo": out}})
		},
	}
	export.Flags().StringVar(&out, "out", "", "Destination file")
	cmd.AddCommand(export)

	cmd.AddCommand(&cobra.Command{
		Use:   "import <file>",
		Short: "Upsert workshops from an export (keyed object or bare array)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			f, err := os.Open(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			defer f.Close()
			n, err := st.Import(cmd.Context(), f)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"imported": n}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "snapshot",
		Short: "Copy the database file next to itself (.bak)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := openStore(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			path, err := st.BackupFile(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"path": path}})
		},
	})
	return cmd
}
