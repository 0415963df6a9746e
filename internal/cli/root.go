package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"quickcomm/internal/format"
	"quickcomm/internal/logging"
	"quickcomm/internal/session"
	"quickcomm/internal/store"
	"quickcomm/internal/tui"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is set at build time with -ldflags.
var Version = "dev"

type App struct {
	Dir        string
	PrettyJSON bool
	Format     string
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "quickcomm",
		Short:        "Quick Communication Support: ready-made phrases for hard moments",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive screen
  quickcomm

  # Phrases for one place (shortcut for: quickcomm phrases places/Gym)
  quickcomm places/Gym

  # Ranked search
  quickcomm search "need help"
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(cmd, app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.Dir, "dir", envOr("QUICKCOMM_DIR", ""), "Data directory (overrides dataDir in config.yaml)")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", false, "Pretty-print JSON/EDN output")
	cmd.PersistentFlags().StringVar(&app.Format, "format", envOr("QUICKCOMM_FORMAT", "json"), "Output format ("+strings.Join(format.Formats, "|")+")")

	cmd.AddCommand(newCategoriesCmd(app))
	cmd.AddCommand(newPhrasesCmd(app))
	cmd.AddCommand(newAllCmd(app))
	cmd.AddCommand(newSearchCmd(app))
	cmd.AddCommand(newFavoritesCmd(app))
	cmd.AddCommand(newCustomCmd(app))
	cmd.AddCommand(newSelectCmd(app))
	cmd.AddCommand(newAnotherCmd(app))
	cmd.AddCommand(newStateCmd(app))
	cmd.AddCommand(newEventsCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newConfigCmd(app))
	cmd.AddCommand(newPublishCmd(app))
	cmd.AddCommand(newDoctorCmd(app))
	cmd.AddCommand(newDocsCmd(app))
	cmd.AddCommand(newVersionCmd(app))

	return cmd
}

// env is everything one command invocation needs.
type env struct {
	cfg    *store.Config
	store  store.Store
	log    *zap.Logger
	events *store.EventLog
	sess   *session.Session
}

func (e *env) Close() {
	if e.events != nil {
		if err := e.events.Close(); err != nil {
			e.log.Warn("close event log", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}

// openEnv resolves config and data dir, then opens the session.
func openEnv(ctx context.Context, app *App) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	dir, err := store.ResolveDir(app.Dir, cfg)
	if err != nil {
		return nil, err
	}
	app.Dir = dir

	log, err := logging.New(cfg.LogFile, cfg.Level())
	if err != nil {
		return nil, err
	}
	quick, err := cfg.QuickAccessRoutes()
	if err != nil {
		return nil, err
	}

	e := &env{cfg: cfg, store: store.Store{Dir: dir, Cfg: cfg}, log: log}
	events, err := e.store.OpenEventLog(ctx)
	if err != nil {
		// The activity log is optional; the phrase state is not.
		log.Warn("open event log", zap.String("path", e.store.EventsPath()), zap.Error(err))
	}
	opts := session.Options{
		State:       e.store.State(),
		Logger:      log,
		QuickAccess: quick,
		Pinned:      cfg.PinnedCount(),
	}
	if events != nil {
		e.events = events
		opts.Events = events
	}
	sess, err := session.Open(opts)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.sess = sess
	log.Debug("session opened", zap.String("dir", dir))
	return e, nil
}

func runTUI(cmd *cobra.Command, app *App) error {
	e, err := openEnv(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer e.Close()
	return tui.Run(e.sess, tui.Options{
		StatePath: e.store.StatePath(),
		Glyphs:    e.cfg.Glyphs(),
		Logger:    e.log,
	})
}

// withSession opens an env for the duration of fn.
func withSession(cmd *cobra.Command, app *App, fn func(e *env) error) error {
	e, err := openEnv(cmd.Context(), app)
	if err != nil {
		return writeErr(cmd, err)
	}
	defer e.Close()
	if err := fn(e); err != nil {
		return writeErr(cmd, err)
	}
	return nil
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
