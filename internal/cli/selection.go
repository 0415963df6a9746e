package cli

import (
	"quickcomm/internal/model"

	"github.com/spf13/cobra"
)

type selection struct {
	Selected string `json:"selected"`
	Route    string `json:"route,omitempty"`
	Favorite bool   `json:"favorite"`
}

func (s selection) Text() string { return s.Selected }

func newSelectCmd(app *App) *cobra.Command {
	var route string

	cmd := &cobra.Command{
		Use:   "select <phrase>",
		Short: "Set the selected phrase (shown on the display screen)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				var ctx model.Route
				out := selection{Selected: args[0]}
				if route != "" {
					c, err := resolveCategory(e, route)
					if err != nil {
						return err
					}
					ctx = c
					out.Route = c.Ref()
				}
				if err := e.sess.Select(args[0], ctx); err != nil {
					return err
				}
				out.Favorite = e.sess.IsFavorite(args[0])
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}
	cmd.Flags().StringVar(&route, "route", "", "Category the phrase was picked from, e.g. places/Gym")
	return cmd
}

func newAnotherCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "another",
		Short: "Select a random phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				p, err := e.sess.Another()
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": selection{Selected: p, Favorite: e.sess.IsFavorite(p)}})
			})
		},
	}
}
