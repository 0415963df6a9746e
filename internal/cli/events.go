package cli

import (
	"fmt"
	"strings"

	"quickcomm/internal/store"

	"github.com/spf13/cobra"
)

type statsView struct {
	Favorites     int                 `json:"favorites"`
	CustomPhrases int                 `json:"custom_phrases"`
	Events        bool                `json:"events"`
	Top           []store.PhraseCount `json:"top"`
}

func (s statsView) Text() string {
	var b strings.Builder
	fmt.Fprintf(&b, "favorites: %d\ncustom phrases: %d\n", s.Favorites, s.CustomPhrases)
	if !s.Events {
		b.WriteString("activity log: off\n")
		return b.String()
	}
	for _, pc := range s.Top {
		fmt.Fprintf(&b, "%4d  %s\n", pc.Count, pc.Phrase)
	}
	return b.String()
}

func newEventsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect the local activity log",
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List events (newest first)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				evs := []store.Event{}
				if e.events != nil {
					got, err := e.events.List(cmd.Context(), limit)
					if err != nil {
						return err
					}
					evs = append(evs, got...)
				}
				return writeOut(cmd, app, map[string]any{"data": evs})
			})
		},
	}
	listCmd.Flags().IntVar(&limit, "limit", 50, "Max events to return")

	cmd.AddCommand(listCmd)
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Favorites, custom phrases and most-selected phrases",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, app, func(e *env) error {
				snap := e.sess.Snapshot()
				out := statsView{Favorites: len(snap.Favorites), Top: []store.PhraseCount{}}
				for _, cats := range snap.CustomPhrases {
					for _, list := range cats {
						out.CustomPhrases += len(list)
					}
				}
				if e.events != nil {
					out.Events = true
					top, err := e.events.TopPhrases(cmd.Context(), limit)
					if err != nil {
						return err
					}
					out.Top = append(out.Top, top...)
				}
				return writeOut(cmd, app, map[string]any{"data": out})
			})
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "How many top phrases to return")
	return cmd
}
