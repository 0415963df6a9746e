package cli

import (
	"github.com/spf13/cobra"
)

func newStateCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect the saved state file",
	}

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved snapshot (repaired, as the app sees it)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				return writeOut(cmd, app, map[string]any{"data": e.sess.Snapshot()})
			})
		},
	}

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the state file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				return writeOut(cmd, app, map[string]any{"data": e.store.StatePath()})
			})
		},
	}

	cmd.AddCommand(showCmd, pathCmd)
	return cmd
}
