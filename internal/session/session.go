package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"quickcomm/internal/model"
	"quickcomm/internal/nav"
	"quickcomm/internal/phrases"
	"quickcomm/internal/search"
	"quickcomm/internal/store"

	"go.uber.org/zap"
)

const (
	// MaxHistory bounds the selection history; the oldest entries are evicted first.
	MaxHistory = 50

	defaultPinned = 5
	eventTimeout  = 2 * time.Second
)

var ErrEmptyPhrase = errors.New("phrase text is empty")

// Persister loads and saves the snapshot document.
type Persister interface {
	Load() (store.Snapshot, error)
	Save(store.Snapshot) error
}

// EventSink receives activity events after each successful save.
type EventSink interface {
	Append(ctx context.Context, ev store.Event) error
}

type Options struct {
	State  Persister
	Events EventSink
	Logger *zap.Logger

	// QuickAccess overrides the default home shortcuts.
	QuickAccess []model.Category
	// Pinned is the default count for PinnedTopFavorites.
	Pinned int
	// Rand picks the phrase for Another; nil uses a time-seeded source.
	Rand *rand.Rand
}

// Session is the state of one user session: navigation, selection, favorites
// and custom phrases. Every mutation is saved before the method returns.
type Session struct {
	nav       *nav.Navigator
	custom    *phrases.CustomStore
	catalog   phrases.Catalog
	favorites map[string]struct{}

	selected     string
	history      []string
	lastCategory *model.Category

	state  Persister
	events EventSink
	log    *zap.Logger
	quick  []model.Category
	pinned int
	rnd    *rand.Rand
}

// Open builds a session from the persisted snapshot.
func Open(opts Options) (*Session, error) {
	s := &Session{
		nav:       nav.New(),
		custom:    phrases.NewCustomStore(),
		favorites: map[string]struct{}{},
		state:     opts.State,
		events:    opts.Events,
		log:       opts.Logger,
		quick:     opts.QuickAccess,
		pinned:    opts.Pinned,
		rnd:       opts.Rand,
	}
	s.catalog = phrases.NewCatalog(s.custom)
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if len(s.quick) == 0 {
		s.quick = phrases.DefaultQuickAccess()
	}
	if s.pinned <= 0 {
		s.pinned = defaultPinned
	}
	if s.rnd == nil {
		now := uint64(time.Now().UnixNano())
		s.rnd = rand.New(rand.NewPCG(now, now>>1))
	}

	if s.state != nil {
		snap, err := s.state.Load()
		if err != nil {
			return nil, err
		}
		s.apply(snap)
		s.selected = snap.SelectedPhrase
	}
	return s, nil
}

func (s *Session) apply(snap store.Snapshot) {
	s.favorites = make(map[string]struct{}, len(snap.Favorites))
	for _, f := range snap.Favorites {
		s.favorites[f] = struct{}{}
	}
	s.custom.Replace(snap.CustomPhrases)
}

// Reload re-reads favorites and custom phrases from disk (e.g. after another
// process wrote the file). The in-memory selection is kept unless it is empty.
func (s *Session) Reload() error {
	if s.state == nil {
		return nil
	}
	snap, err := s.state.Load()
	if err != nil {
		return err
	}
	s.apply(snap)
	if s.selected == "" {
		s.selected = snap.SelectedPhrase
	}
	return nil
}

// Snapshot is the persisted projection of the session.
func (s *Session) Snapshot() store.Snapshot {
	favs := make([]string, 0, len(s.favorites))
	for f := range s.favorites {
		favs = append(favs, f)
	}
	sort.Strings(favs)
	return store.Snapshot{
		Favorites:      favs,
		CustomPhrases:  s.custom.Snapshot(),
		SelectedPhrase: s.selected,
	}
}

func (s *Session) persist(ev store.Event) error {
	if s.state != nil {
		if err := s.state.Save(s.Snapshot()); err != nil {
			s.log.Error("save state", zap.Error(err))
			return err
		}
		s.log.Debug("state saved", zap.String("event", ev.Type))
	}
	if s.events != nil {
		ctx, cancel := context.WithTimeout(context.Background(), eventTimeout)
		defer cancel()
		if err := s.events.Append(ctx, ev); err != nil {
			s.log.Warn("append event", zap.String("type", ev.Type), zap.Error(err))
		}
	}
	return nil
}

// Navigation.

func (s *Session) CurrentRoute() model.Route { return s.nav.Current() }

func (s *Session) Navigate(r model.Route) { s.nav.Navigate(r) }

// Back returns to the previous route, or def when there is none.
func (s *Session) Back(def model.Route) model.Route { return s.nav.Back(def) }

// BackOrDefault is Back with the conventional default for the current screen.
func (s *Session) BackOrDefault() model.Route {
	return s.nav.Back(nav.BackDefault(s.nav.Current()))
}

func (s *Session) NavDepth() int { return s.nav.Depth() }

// Content.

func (s *Session) Categories(scope model.Scope) []string { return s.catalog.Categories(scope) }

func (s *Session) PhrasesFor(scope model.Scope, category string) []string {
	return s.catalog.PhrasesFor(scope, category)
}

func (s *Session) AllPhrases() []string { return s.catalog.AllPhrases() }

func (s *Session) Search(query string) []model.Hit {
	return search.Search(query, s.catalog.AllPhrases(), s.catalog.CategoryRoutes())
}

func (s *Session) QuickAccess() []model.Category {
	return append([]model.Category(nil), s.quick...)
}

// Favorites.

// Favorites returns the favorite phrases sorted.
func (s *Session) Favorites() []string {
	return s.Snapshot().Favorites
}

func (s *Session) IsFavorite(phrase string) bool {
	_, ok := s.favorites[phrase]
	return ok
}

// ToggleFavorite flips membership and reports whether phrase is now a favorite.
func (s *Session) ToggleFavorite(phrase string) (bool, error) {
	ev := store.Event{Phrase: phrase}
	_, on := s.favorites[phrase]
	if on {
		delete(s.favorites, phrase)
		ev.Type = store.EventFavoriteDrop
	} else {
		s.favorites[phrase] = struct{}{}
		ev.Type = store.EventFavoriteAdd
	}
	return !on, s.persist(ev)
}

// PinnedTopFavorites ranks favorites by most recent use in history. Favorites
// never used come last, alphabetically. n <= 0 uses the configured count.
func (s *Session) PinnedTopFavorites(n int) []string {
	if n <= 0 {
		n = s.pinned
	}
	favs := s.Favorites()
	recency := map[string]int{}
	for i := len(s.history) - 1; i >= 0; i-- {
		p := s.history[i]
		if _, ok := recency[p]; !ok {
			recency[p] = len(s.history) - 1 - i
		}
	}
	sort.SliceStable(favs, func(i, j int) bool {
		ri, oki := recency[favs[i]]
		rj, okj := recency[favs[j]]
		switch {
		case oki && okj:
			return ri < rj
		case oki != okj:
			return oki
		default:
			return favs[i] < favs[j]
		}
	})
	if len(favs) > n {
		favs = favs[:n]
	}
	return favs
}

// Selection.

func (s *Session) Selected() string { return s.selected }

// History returns selected phrases, most recent last.
func (s *Session) History() []string {
	return append([]string(nil), s.history...)
}

// LastCategory is the category route of the most recent selection made from a
// category screen.
func (s *Session) LastCategory() (model.Category, bool) {
	if s.lastCategory == nil {
		return model.Category{}, false
	}
	return *s.lastCategory, true
}

// Select makes phrase the current selection. When ctx is a category route it is
// remembered as the last category context.
func (s *Session) Select(phrase string, ctx model.Route) error {
	s.selected = phrase
	s.pushHistory(phrase)
	ev := store.Event{Type: store.EventPhraseSelect, Phrase: phrase}
	if c, ok := ctx.(model.Category); ok {
		s.lastCategory = &c
		ev.Scope = string(c.Scope())
		ev.Category = c.Category()
	}
	return s.persist(ev)
}

func (s *Session) pushHistory(phrase string) {
	if phrase == "" {
		return
	}
	if n := len(s.history); n > 0 && s.history[n-1] == phrase {
		return
	}
	s.history = append(s.history, phrase)
	if len(s.history) > MaxHistory {
		s.history = append([]string(nil), s.history[len(s.history)-MaxHistory:]...)
	}
}

// Another selects a random phrase from the whole catalog.
func (s *Session) Another() (string, error) {
	all := s.catalog.AllPhrases()
	if len(all) == 0 {
		return "", nil
	}
	pick := all[s.rnd.IntN(len(all))]
	return pick, s.Select(pick, nil)
}

// Custom phrases.

func (s *Session) Custom(c model.Category) []string {
	return s.custom.List(c.Scope(), c.Category())
}

// CustomCategories lists category names in scope holding custom phrases.
func (s *Session) CustomCategories(scope model.Scope) []string {
	return s.custom.CategoryNames(scope)
}

// AddCustom trims text and appends it to the category's custom list.
func (s *Session) AddCustom(c model.Category, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyPhrase
	}
	if !s.custom.Add(c.Scope(), c.Category(), text) {
		return nil
	}
	return s.persist(customEvent(store.EventCustomAdd, c, text))
}

// EditCustom replaces the custom phrase at index. Out-of-range indexes are
// ignored and report false.
func (s *Session) EditCustom(c model.Category, index int, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, ErrEmptyPhrase
	}
	if !s.custom.Edit(c.Scope(), c.Category(), index, text) {
		return false, nil
	}
	return true, s.persist(customEvent(store.EventCustomEdit, c, text))
}

// DeleteCustom removes the custom phrase at index. Out-of-range indexes are
// ignored and report false.
func (s *Session) DeleteCustom(c model.Category, index int) (bool, error) {
	list := s.custom.List(c.Scope(), c.Category())
	if !s.custom.Delete(c.Scope(), c.Category(), index) {
		return false, nil
	}
	return true, s.persist(customEvent(store.EventCustomDelete, c, list[index]))
}

func customEvent(typ string, c model.Category, text string) store.Event {
	return store.Event{Type: typ, Phrase: text, Scope: string(c.Scope()), Category: c.Category()}
}
