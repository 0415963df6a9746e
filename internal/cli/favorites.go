package cli

import (
	"github.com/spf13/cobra"
)

type favoriteToggle struct {
	Phrase   string `json:"phrase"`
	Favorite bool   `json:"favorite"`
}

func newFavoritesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "favorites",
		Aliases: []string{"fav"},
		Short:   "List and toggle favorite phrases",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List favorites (sorted)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				return writeOut(cmd, app, map[string]any{"data": e.sess.Favorites()})
			})
		},
	}

	toggleCmd := &cobra.Command{
		Use:   "toggle <phrase>",
		Short: "Add or remove a favorite",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				on, err := e.sess.ToggleFavorite(args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": favoriteToggle{Phrase: args[0], Favorite: on}})
			})
		},
	}

	var n int
	pinnedCmd := &cobra.Command{
		Use:   "pinned",
		Short: "Favorites ranked by recent use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				return writeOut(cmd, app, map[string]any{"data": e.sess.PinnedTopFavorites(n)})
			})
		},
	}
	pinnedCmd.Flags().IntVar(&n, "n", 0, "How many to return (0 = config pinned)")

	cmd.AddCommand(listCmd, toggleCmd, pinnedCmd)
	return cmd
}
