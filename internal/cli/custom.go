package cli

import (
	"errors"
	"fmt"
	"strings"

	"quickcomm/internal/model"

	"github.com/spf13/cobra"
)

type customList struct {
	Route  string   `json:"route"`
	Custom []string `json:"custom"`
}

func (cl customList) Text() string {
	var b strings.Builder
	for i, p := range cl.Custom {
		fmt.Fprintf(&b, "%d  %s\n", i, p)
	}
	return b.String()
}

func newCustomCmd(app *App) *cobra.Command {
	var (
		route string
		index int
		text  string
	)

	cmd := &cobra.Command{
		Use:   "custom",
		Short: "Manage your own phrases for a category",
	}
	cmd.PersistentFlags().StringVar(&route, "route", "", "Category ref, e.g. places/Gym (required)")

	// run resolves --route and prints the category's custom list after fn.
	run := func(cmd *cobra.Command, fn func(e *env, c model.Category) error) error {
		if route == "" {
			return writeErr(cmd, errors.New("missing --route"))
		}
		return withSession(cmd, app, func(e *env) error {
			c, err := resolveCategory(e, route)
			if err != nil {
				return err
			}
			if err := fn(e, c); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"data": customList{Route: c.Ref(), Custom: e.sess.Custom(c)}})
		})
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List custom phrases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(*env, model.Category) error { return nil })
		},
	}

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Add a custom phrase",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(e *env, c model.Category) error {
				return e.sess.AddCustom(c, text)
			})
		},
	}
	addCmd.Flags().StringVar(&text, "text", "", "Phrase text")

	editCmd := &cobra.Command{
		Use:   "edit",
		Short: "Replace the custom phrase at --index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(e *env, c model.Category) error {
				ok, err := e.sess.EditCustom(c, index, text)
				if err != nil {
					return err
				}
				if !ok {
					return indexError{ref: c.Ref(), index: index, count: len(e.sess.Custom(c))}
				}
				return nil
			})
		},
	}
	editCmd.Flags().IntVar(&index, "index", 0, "Position in the custom list (0-based)")
	editCmd.Flags().StringVar(&text, "text", "", "New phrase text")

	deleteCmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete the custom phrase at --index",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, func(e *env, c model.Category) error {
				ok, err := e.sess.DeleteCustom(c, index)
				if err != nil {
					return err
				}
				if !ok {
					return indexError{ref: c.Ref(), index: index, count: len(e.sess.Custom(c))}
				}
				return nil
			})
		},
	}
	deleteCmd.Flags().IntVar(&index, "index", 0, "Position in the custom list (0-based)")

	cmd.AddCommand(listCmd, addCmd, editCmd, deleteCmd)
	return cmd
}
