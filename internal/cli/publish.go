package cli

import (
	"errors"
	"strings"

	"quickcomm/internal/publish"

	"github.com/spf13/cobra"
)

func newPublishCmd(app *App) *cobra.Command {
	var toDir string
	var stars bool
	var overwrite bool

	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Export printable Markdown phrase sheets",
	}

	opts := func() publish.WriteOptions {
		return publish.WriteOptions{
			RenderOptions: publish.RenderOptions{MarkFavorites: stars},
			Overwrite:     overwrite,
		}
	}

	categoryCmd := &cobra.Command{
		Use:   "category <scope/category>",
		Short: "Publish one category page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				if strings.TrimSpace(toDir) == "" {
					return errors.New("missing --to")
				}
				c, err := resolveCategory(e, args[0])
				if err != nil {
					return err
				}
				res, err := publish.WriteCategory(e.sess, c, toDir, opts())
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			})
		},
	}

	sheetCmd := &cobra.Command{
		Use:   "sheet",
		Short: "Publish an index, every category page and favorites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				if strings.TrimSpace(toDir) == "" {
					return errors.New("missing --to")
				}
				res, err := publish.WriteSheet(e.sess, toDir, opts())
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": res})
			})
		},
	}

	cmd.PersistentFlags().StringVar(&toDir, "to", "", "Output directory")
	cmd.PersistentFlags().BoolVar(&stars, "stars", true, "Mark favorite phrases with a star")
	cmd.PersistentFlags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing files")

	cmd.AddCommand(categoryCmd, sheetCmd)
	return cmd
}
