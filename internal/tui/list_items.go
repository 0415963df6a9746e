package tui

import (
	"quickcomm/internal/model"
	"quickcomm/internal/session"

	"github.com/charmbracelet/bubbles/list"
)

// rowItem is one screen row inside a bubbles list.
type rowItem struct {
	row     session.Row
	section string
	// first marks the first row of its section; the delegate labels it.
	first bool
}

func (it rowItem) FilterValue() string { return it.row.Label }
func (it rowItem) Title() string       { return it.row.Label }

func screenItems(sc session.Screen) []list.Item {
	var items []list.Item
	for _, sec := range sc.Sections {
		for i, r := range sec.Rows {
			items = append(items, rowItem{row: r, section: sec.Title, first: i == 0})
		}
	}
	return items
}

// hitItems turns search hits into selectable rows.
func hitItems(hits []model.Hit, isFavorite func(string) bool) []list.Item {
	items := make([]list.Item, 0, len(hits))
	for i, h := range hits {
		r := session.Row{Label: h.Label()}
		if c, ok := h.Route(); ok {
			r.Kind = session.RowCategory
			r.Target = c.Ref()
			r.Route = c
		} else {
			r.Kind = session.RowPhrase
			r.Phrase = h.Phrase
			r.Favorite = isFavorite(h.Phrase)
		}
		items = append(items, rowItem{row: r, section: "Results", first: i == 0})
	}
	return items
}

func newList(items []list.Item) list.Model {
	l := list.New(items, newRowDelegate(), 0, 0)
	// Header, footer and minibuffer are drawn by the app.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	// f, d, h and l are app actions; keep paging on arrows and pgup/pgdown.
	l.KeyMap.NextPage.SetKeys("right", "pgdown")
	l.KeyMap.PrevPage.SetKeys("left", "pgup")
	l.KeyMap.CursorUp.SetKeys("up", "k", "ctrl+p")
	l.KeyMap.CursorDown.SetKeys("down", "j", "ctrl+n")
	l.KeyMap.GoToStart.SetKeys("home", "g", "<")
	l.KeyMap.GoToEnd.SetKeys("end", "G", ">")
	return l
}

func selectedRow(l list.Model) (session.Row, bool) {
	it, ok := l.SelectedItem().(rowItem)
	if !ok {
		return session.Row{}, false
	}
	return it.row, true
}
