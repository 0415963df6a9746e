package cli

import (
	"fmt"
	"strings"

	"quickcomm/internal/model"

	"github.com/spf13/cobra"
)

type categoryIndex map[model.Scope][]string

func (ci categoryIndex) Text() string {
	var b strings.Builder
	for _, sc := range model.Scopes() {
		names, ok := ci[sc]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "%s\n", sc.Title())
		for _, n := range names {
			fmt.Fprintf(&b, "  %s/%s\n", sc, n)
		}
	}
	return b.String()
}

type phraseList struct {
	Route   string   `json:"route"`
	Title   string   `json:"title"`
	Phrases []string `json:"phrases"`
	Custom  []string `json:"custom"`
}

func (pl phraseList) Text() string {
	return pl.Title + "\n" + strings.Join(pl.Phrases, "\n")
}

type hitList []model.Hit

func (hl hitList) Text() string {
	lines := make([]string, 0, len(hl))
	for _, h := range hl {
		lines = append(lines, fmt.Sprintf("%5.1f  %s", h.Score, h.Label()))
	}
	return strings.Join(lines, "\n")
}

func newCategoriesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "categories [activities|places]",
		Short: "List categories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scopes := model.Scopes()
			if len(args) == 1 {
				sc, err := model.ParseScope(args[0])
				if err != nil {
					return writeErr(cmd, errNotFound("scope", args[0]))
				}
				scopes = []model.Scope{sc}
			}
			return withSession(cmd, app, func(e *env) error {
				out := categoryIndex{}
				for _, sc := range scopes {
					out[sc] = e.sess.Categories(sc)
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}
}

func newPhrasesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "phrases <scope/Category>",
		Short:   "Phrases for one category (built-in, custom, then generic)",
		Example: "  quickcomm phrases places/Gym",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				c, err := resolveCategory(e, args[0])
				if err != nil {
					return err
				}
				return writeOut(cmd, app, map[string]any{"data": phraseList{
					Route:   c.Ref(),
					Title:   model.RouteTitle(c),
					Phrases: e.sess.PhrasesFor(c.Scope(), c.Category()),
					Custom:  e.sess.Custom(c),
				}})
			})
		},
	}
}

func newAllCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Every phrase, deduplicated",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				return writeOut(cmd, app, map[string]any{"data": e.sess.AllPhrases()})
			})
		},
	}
}

func newSearchCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "search <query...>",
		Short: "Ranked search over phrases and categories",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q := strings.Join(args, " ")
			return withSession(cmd, app, func(e *env) error {
				hits := e.sess.Search(q)
				if hits == nil {
					hits = []model.Hit{}
				}
				return writeOut(cmd, app, map[string]any{"data": hitList(hits)})
			})
		},
	}
}

// resolveCategory parses ref and matches the name case-insensitively against
// the built-in categories. Other names resolve only if they hold custom phrases.
func resolveCategory(e *env, ref string) (model.Category, error) {
	c, err := model.ParseCategory(ref)
	if err != nil {
		return model.Category{}, errNotFound("category", ref)
	}
	for _, name := range e.sess.Categories(c.Scope()) {
		if strings.EqualFold(name, c.Category()) {
			return model.MustCategory(c.Scope(), name), nil
		}
	}
	if len(e.sess.Custom(c)) > 0 {
		return c, nil
	}
	return model.Category{}, errNotFound("category", ref)
}
