package session

import (
	"quickcomm/internal/model"
	"quickcomm/internal/phrases"
)

// RecentLimit is how many history entries the home screen shows.
const RecentLimit = 6

type RowKind string

const (
	RowPhrase      RowKind = "phrase"
	RowSafeDefault RowKind = "safe_default"
	RowCustom      RowKind = "custom"
	RowCategory    RowKind = "category"
	RowScope       RowKind = "scope"
	RowLink        RowKind = "link"
)

// Row is one actionable line of a screen. Phrase rows select Phrase with
// Context; link-like rows navigate to Target.
type Row struct {
	Kind     RowKind     `json:"kind"`
	Label    string      `json:"label"`
	Phrase   string      `json:"phrase,omitempty"`
	Target   string      `json:"target,omitempty"`
	Favorite bool        `json:"favorite,omitempty"`
	Index    int         `json:"index,omitempty"`
	Context  model.Route `json:"-"`
	Route    model.Route `json:"-"`
}

type Section struct {
	Title string `json:"title"`
	Rows  []Row  `json:"rows"`
}

// Screen describes what the current route shows. Rendering is left to the
// caller.
type Screen struct {
	Route    model.Route     `json:"-"`
	Ref      string          `json:"route"`
	Name     model.RouteName `json:"name"`
	Title    string          `json:"title"`
	Selected string          `json:"selected,omitempty"`
	Empty    string          `json:"empty,omitempty"`
	Sections []Section       `json:"sections"`
}

// Rows flattens all sections.
func (sc Screen) Rows() []Row {
	var out []Row
	for _, sec := range sc.Sections {
		out = append(out, sec.Rows...)
	}
	return out
}

// Screen builds the descriptor for the current route.
func (s *Session) Screen() Screen {
	return s.ScreenFor(s.nav.Current())
}

func (s *Session) ScreenFor(r model.Route) Screen {
	sc := Screen{
		Route:    r,
		Ref:      r.Ref(),
		Name:     r.Name(),
		Title:    model.RouteTitle(r),
		Selected: s.selected,
	}
	switch r := r.(type) {
	case model.Home:
		sc.Sections = s.homeSections()
	case model.ScopeList:
		rows := make([]Row, 0)
		for _, name := range s.catalog.Categories(r.Scope()) {
			rows = append(rows, s.categoryRow(model.MustCategory(r.Scope(), name), name))
		}
		sc.Sections = []Section{{Title: "Pick a category", Rows: rows}}
	case model.Category:
		sc.Sections = s.categorySections(r)
	case model.Display, model.Fullscreen:
		if s.selected == "" {
			sc.Empty = "No phrase selected yet. Go Home and pick one."
		}
	case model.Favorites:
		favs := s.Favorites()
		if len(favs) == 0 {
			sc.Empty = "No favorites yet. Mark phrases with f to keep them here."
		}
		sc.Sections = []Section{{Title: "Favorites", Rows: s.phraseRows(favs, nil)}}
	}
	return sc
}

func (s *Session) homeSections() []Section {
	var secs []Section
	if pinned := s.PinnedTopFavorites(0); len(pinned) > 0 {
		secs = append(secs, Section{Title: "Pinned", Rows: s.phraseRows(pinned, nil)})
	}

	quick := make([]Row, 0, len(s.quick))
	for _, c := range s.quick {
		quick = append(quick, s.categoryRow(c, c.Scope().Title()+" • "+c.Category()))
	}
	secs = append(secs, Section{Title: "Quick access", Rows: quick})

	browse := make([]Row, 0, len(model.Scopes())+2)
	for _, scope := range model.Scopes() {
		sl, _ := model.NewScopeList(scope)
		browse = append(browse, Row{Kind: RowScope, Label: scope.Title(), Target: sl.Ref(), Route: sl})
	}
	browse = append(browse,
		Row{Kind: RowLink, Label: "Favorites", Target: model.Favorites{}.Ref(), Route: model.Favorites{}},
		Row{Kind: RowLink, Label: "Display", Target: model.Display{}.Ref(), Route: model.Display{}},
	)
	secs = append(secs, Section{Title: "Browse", Rows: browse})

	if recent := s.recent(); len(recent) > 0 {
		secs = append(secs, Section{Title: "Recent", Rows: s.phraseRows(recent, nil)})
	}
	return secs
}

// recent is the tail of history, newest first.
func (s *Session) recent() []string {
	out := make([]string, 0, RecentLimit)
	for i := len(s.history) - 1; i >= 0 && len(out) < RecentLimit; i-- {
		out = append(out, s.history[i])
	}
	return out
}

func (s *Session) categorySections(c model.Category) []Section {
	safe := Row{
		Kind:     RowSafeDefault,
		Label:    phrases.SafeDefaultPhrase,
		Phrase:   phrases.SafeDefaultPhrase,
		Favorite: s.IsFavorite(phrases.SafeDefaultPhrase),
		Context:  c,
	}
	secs := []Section{
		{Title: "Quick button", Rows: []Row{safe}},
		{Title: "Tap a phrase", Rows: s.phraseRows(s.catalog.PhrasesFor(c.Scope(), c.Category()), c)},
	}
	custom := s.custom.List(c.Scope(), c.Category())
	rows := make([]Row, 0, len(custom))
	for i, text := range custom {
		rows = append(rows, Row{Kind: RowCustom, Label: text, Phrase: text, Index: i, Context: c, Favorite: s.IsFavorite(text)})
	}
	secs = append(secs, Section{Title: "Your phrases", Rows: rows})
	return secs
}

func (s *Session) phraseRows(items []string, ctx model.Route) []Row {
	rows := make([]Row, 0, len(items))
	for _, p := range items {
		rows = append(rows, Row{Kind: RowPhrase, Label: p, Phrase: p, Favorite: s.IsFavorite(p), Context: ctx})
	}
	return rows
}

func (s *Session) categoryRow(c model.Category, label string) Row {
	return Row{Kind: RowCategory, Label: label, Target: c.Ref(), Route: c}
}
