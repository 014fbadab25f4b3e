package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"workshop-planner/internal/agenda"
	"workshop-planner/internal/format"
	"workshop-planner/internal/logging"
	"workshop-planner/internal/store"
)

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string

	log      *slog.Logger
	closeLog func() error
	st       *store.DocStore
}

func NewRootCmd() *cobra.Command {
	// Best effort: a missing .env is the normal case.
	_ = godotenv.Load()

	app := &App{}

	cmd := &cobra.Command{
		Use:          "planner",
		Short:        "Workshop agenda planner (local-first CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Open the interactive editor on the last workshop
  planner

  # Create a workshop from a template and inspect it
  planner workshops create --template ldj
  planner workshops list

  # Direct lookup (shortcut for: planner workshops show <workshop-id>)
  planner 3f2b8c1e-9d4a-4e6b-8a7c-1b2c3d4e5f60
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

	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		return app.setupLogging()
	}
	cmd.PersistentPostRunE = func(cmd *cobra.Command, args []string) error {
		app.close()
		return nil
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("PLANNER_DIR", ""), "Path to the data dir (overrides config dataDir)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("PLANNER_FORMAT", "json"), "Output format (json|edn|yaml)")

	cmd.AddCommand(newWorkshopsCmd(app))
	cmd.AddCommand(newDaysCmd(app))
	cmd.AddCommand(newItemsCmd(app))
	cmd.AddCommand(newLibraryCmd(app))
	cmd.AddCommand(newTemplatesCmd(app))
	cmd.AddCommand(newBackupCmd(app))
	cmd.AddCommand(newTUICmd(app))
	cmd.AddCommand(newDocsCmd(app))

	return cmd
}

func (app *App) setupLogging() error {
	if app.log != nil {
		return nil
	}
	dir, _ := store.ConfigDir()
	level := ""
	if cfg, err := store.LoadConfig(); err == nil {
		level = cfg.LogLevel
	}
	app.log, app.closeLog = logging.New(logging.Options{Dir: dir, Level: level})
	return nil
}

func (app *App) logger() *slog.Logger {
	if app.log == nil {
		return logging.Discard()
	}
	return app.log
}

// rememberWorkshop records id for the next editor start. A failed config
// write only costs that convenience.
func (app *App) rememberWorkshop(id string) {
	if err := store.RememberWorkshop(id); err != nil {
		app.logger().Warn("remember workshop failed", "workshop", id, "err", err)
	}
}

func (app *App) close() {
	if app.st != nil {
		_ = app.st.Close()
		app.st = nil
	}
	if app.closeLog != nil {
		_ = app.closeLog()
		app.closeLog = nil
	}
	app.log = nil
}

func (app *App) dataDir() (string, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return "", err
	}
	return store.DataDir(app.Dir, cfg)
}

func openStore(ctx context.Context, app *App) (*store.DocStore, error) {
	if app.st != nil {
		return app.st, nil
	}
	dir, err := app.dataDir()
	if err != nil {
		return nil, err
	}
	st, err := store.Open(ctx, dir, store.WithLogger(app.logger()))
	if err != nil {
		return nil, fmt.Errorf("open store in %s: %w", dir, err)
	}
	app.st = st
	return st, nil
}

func openCollection(cmd *cobra.Command, app *App) (*agenda.Collection, *store.DocStore, error) {
	st, err := openStore(cmd.Context(), app)
	if err != nil {
		return nil, nil, err
	}
	return agenda.NewCollection(st, app.logger()), st, nil
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.Write(cmd.OutOrStdout(), v, app.Format, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
