package cli

import (
	"os"

	"quickcomm/internal/store"

	"github.com/spf13/cobra"
)

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool
	var fix bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the state file, activity log and config",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := store.LoadConfig()
			if err != nil {
				return writeErr(cmd, err)
			}
			dir, err := store.ResolveDir(app.Dir, cfg)
			if err != nil {
				return writeErr(cmd, err)
			}
			st := store.Store{Dir: dir, Cfg: cfg}

			fixed := false
			if fix {
				if _, err := os.Stat(st.StatePath()); err == nil {
					snap, err := st.State().Load()
					if err != nil {
						return writeErr(cmd, err)
					}
					if err := st.State().Save(snap); err != nil {
						return writeErr(cmd, err)
					}
					fixed = true
				}
			}

			report := store.Doctor(cmd.Context(), st)
			meta := map[string]any{
				"issues":    len(report.Issues),
				"hasErrors": report.HasErrors(),
				"fixed":     fixed,
			}
			var hints []string
			if len(report.Issues) > 0 && !fix {
				hints = append(hints, "quickcomm doctor --fix")
			}
			if err := writeOut(cmd, app, map[string]any{
				"data":   report,
				"meta":   meta,
				"_hints": hints,
			}); err != nil {
				return err
			}

			if fail && report.HasErrors() {
				return store.ErrDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if errors are found")
	cmd.Flags().BoolVar(&fix, "fix", false, "Rewrite the state file in repaired form first")
	return cmd
}
