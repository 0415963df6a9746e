package tui

import (
	"math/rand/v2"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"quickcomm/internal/model"
	"quickcomm/internal/phrases"
	"quickcomm/internal/session"
	"quickcomm/internal/store"

	tea "github.com/charmbracelet/bubbletea"
)

func newTestModel(t *testing.T) (appModel, store.StateFile) {
	t.Helper()
	sf := store.StateFile{Path: filepath.Join(t.TempDir(), "qcs_state.json")}
	sess, err := session.Open(session.Options{State: sf, Rand: rand.New(rand.NewPCG(7, 7))})
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	m := newAppModel(sess, nil)
	mm, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return mm.(appModel), sf
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	case "ctrl+u":
		return tea.KeyMsg{Type: tea.KeyCtrlU}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(m appModel, keys ...string) appModel {
	for _, k := range keys {
		mm, _ := m.Update(keyMsg(k))
		m = mm.(appModel)
	}
	return m
}

func selectRowKind(t *testing.T, m *appModel, kind session.RowKind) {
	t.Helper()
	for i, it := range m.rows.Items() {
		if it.(rowItem).row.Kind == kind {
			m.rows.Select(i)
			return
		}
	}
	t.Fatalf("no %s row on %s", kind, m.screen.Ref)
}

func TestOpenCategorySelectAndBack(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	if row, _ := selectedRow(m.rows); row.Target != "places/Gym" {
		t.Fatalf("expected first home row to open places/Gym; got %#v", row)
	}

	m = press(m, "enter")
	gym := model.MustCategory(model.ScopePlaces, "Gym")
	if m.screen.Route != gym {
		t.Fatalf("expected gym screen; got %s", m.screen.Ref)
	}

	m = press(m, "enter")
	if m.screen.Name != model.RouteDisplay {
		t.Fatalf("expected display; got %s", m.screen.Ref)
	}
	if m.sess.Selected() != phrases.SafeDefaultPhrase {
		t.Fatalf("expected safe default selected; got %q", m.sess.Selected())
	}
	if c, ok := m.sess.LastCategory(); !ok || c != gym {
		t.Fatalf("expected last category gym; got %v %v", c, ok)
	}
	if !strings.Contains(m.View(), phrases.SafeDefaultPhrase) {
		t.Fatalf("expected display view to show the phrase")
	}

	m = press(m, "esc")
	if m.screen.Route != gym {
		t.Fatalf("expected back to gym; got %s", m.screen.Ref)
	}
	m = press(m, "backspace", "esc")
	if m.screen.Name != model.RouteHome {
		t.Fatalf("expected home; got %s", m.screen.Ref)
	}
}

func TestBackRestoresCursor(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "enter", "down", "down", "enter", "esc")
	if got := m.rows.Index(); got != 2 {
		t.Fatalf("expected cursor restored to 2; got %d", got)
	}
}

func TestAnotherThenFullscreenAndBack(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "a")
	if m.screen.Name != model.RouteDisplay || m.sess.Selected() == "" {
		t.Fatalf("expected display with a selection; got %s %q", m.screen.Ref, m.sess.Selected())
	}
	m = press(m, "F")
	if m.screen.Name != model.RouteFullscreen {
		t.Fatalf("expected fullscreen; got %s", m.screen.Ref)
	}
	if !strings.Contains(m.View(), "esc back") {
		t.Fatalf("expected fullscreen hint")
	}
	m = press(m, "esc")
	if m.screen.Name != model.RouteDisplay {
		t.Fatalf("expected display; got %s", m.screen.Ref)
	}
}

func TestFullscreenNeedsSelection(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	(&m).navigate(model.Display{})
	m = press(m, "F")
	if m.screen.Name != model.RouteDisplay || !m.minibufferWarn {
		t.Fatalf("expected to stay on display with a warning; got %s warn=%v", m.screen.Ref, m.minibufferWarn)
	}
}

func TestFavoriteToggleOnDisplay(t *testing.T) {
	t.Parallel()

	m, sf := newTestModel(t)
	m = press(m, "a", "f")
	p := m.sess.Selected()
	if !m.sess.IsFavorite(p) || !strings.Contains(m.minibufferText, "Added") {
		t.Fatalf("expected %q favorited; minibuffer %q", p, m.minibufferText)
	}
	snap, err := sf.Load()
	if err != nil || len(snap.Favorites) != 1 || snap.Favorites[0] != p {
		t.Fatalf("expected persisted favorite; got %#v, %v", snap.Favorites, err)
	}

	m = press(m, "f")
	if m.sess.IsFavorite(p) {
		t.Fatalf("expected favorite removed")
	}
}

func TestFavoriteToggleOnListRow(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "enter", "down", "f")
	row, _ := selectedRow(m.rows)
	if row.Phrase == "" || !m.sess.IsFavorite(row.Phrase) || !row.Favorite {
		t.Fatalf("expected highlighted phrase favorited; got %#v", row)
	}
	if m.screen.Name != model.RouteCategory {
		t.Fatalf("favoriting should not navigate; got %s", m.screen.Ref)
	}
}

func TestCustomPhraseAddEditDelete(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	gym := model.MustCategory(model.ScopePlaces, "Gym")
	(&m).navigate(gym)

	m = press(m, "n")
	if m.mode != modeInput {
		t.Fatalf("expected input mode")
	}
	m = press(m, "   ", "enter")
	if m.mode != modeInput || !m.minibufferWarn {
		t.Fatalf("expected empty text to warn and stay in input mode; mode=%v warn=%v", m.mode, m.minibufferWarn)
	}
	if got := m.sess.Custom(gym); len(got) != 0 {
		t.Fatalf("expected no custom phrases; got %v", got)
	}

	m = press(m, "ctrl+u", "Can I use the side court?", "enter")
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after save")
	}
	if got := m.sess.Custom(gym); len(got) != 1 || got[0] != "Can I use the side court?" {
		t.Fatalf("unexpected custom phrases: %v", got)
	}

	selectRowKind(t, &m, session.RowCustom)
	m = press(m, "e")
	if m.input.Value() != "Can I use the side court?" {
		t.Fatalf("expected input prefilled; got %q", m.input.Value())
	}
	m = press(m, "ctrl+u", "Side court?", "enter")
	if got := m.sess.Custom(gym); len(got) != 1 || got[0] != "Side court?" {
		t.Fatalf("unexpected custom phrases after edit: %v", got)
	}

	selectRowKind(t, &m, session.RowCustom)
	m = press(m, "d")
	if m.mode != modeConfirm || m.pending.phrase != "Side court?" {
		t.Fatalf("expected delete confirmation; mode=%v pending=%#v", m.mode, m.pending)
	}
	if !strings.Contains(m.View(), "Delete phrase?") {
		t.Fatalf("expected confirm modal in view")
	}
	m = press(m, "esc")
	if m.mode != modeBrowse || len(m.sess.Custom(gym)) != 1 {
		t.Fatalf("expected esc to keep the phrase")
	}

	selectRowKind(t, &m, session.RowCustom)
	m = press(m, "d", "tab", "enter")
	if len(m.sess.Custom(gym)) != 1 {
		t.Fatalf("expected Keep button to keep the phrase")
	}

	selectRowKind(t, &m, session.RowCustom)
	m = press(m, "d", "enter")
	if got := m.sess.Custom(gym); len(got) != 0 {
		t.Fatalf("expected custom phrase deleted; got %v", got)
	}
	if m.mode != modeBrowse {
		t.Fatalf("expected browse mode after delete")
	}
}

func TestCustomKeysIgnoredOutsideCategory(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "n")
	if m.mode != modeBrowse {
		t.Fatalf("expected n to do nothing on home")
	}
}

func TestSearchOpensCategory(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "/")
	if m.mode != modeSearch {
		t.Fatalf("expected search mode")
	}
	m = press(m, "gym")
	row, ok := selectedRow(m.rows)
	if !ok || row.Kind != session.RowCategory || row.Target != "places/Gym" {
		t.Fatalf("expected gym category as first hit; got %#v", row)
	}
	if len(m.rows.Items()) > 12 {
		t.Fatalf("expected at most 12 hits; got %d", len(m.rows.Items()))
	}

	m = press(m, "enter")
	if m.mode != modeBrowse || m.screen.Ref != "places/Gym" || m.query != "" {
		t.Fatalf("expected gym screen with search cleared; got mode=%v ref=%s query=%q", m.mode, m.screen.Ref, m.query)
	}
}

func TestSearchEscClears(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "/", "stuck", "esc")
	if m.mode != modeBrowse || m.query != "" {
		t.Fatalf("expected cleared search; mode=%v query=%q", m.mode, m.query)
	}
	if row, _ := selectedRow(m.rows); row.Target != "places/Gym" {
		t.Fatalf("expected home rows back; got %#v", row)
	}
}

func TestSearchPhraseHitSelects(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "/", "stuck")
	var idx = -1
	for i, it := range m.rows.Items() {
		if it.(rowItem).row.Kind == session.RowPhrase {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.Fatalf("expected a phrase hit for stuck")
	}
	m.rows.Select(idx)
	want := m.rows.SelectedItem().(rowItem).row.Phrase
	m = press(m, "enter")
	if m.screen.Name != model.RouteDisplay || m.sess.Selected() != want {
		t.Fatalf("expected %q displayed; got %s %q", want, m.screen.Ref, m.sess.Selected())
	}
}

func TestStateChangedReloadsFavorites(t *testing.T) {
	t.Parallel()

	m, sf := newTestModel(t)
	snap := store.DefaultSnapshot()
	snap.Favorites = []string{"Written elsewhere."}
	if err := sf.Save(snap); err != nil {
		t.Fatalf("Save: %v", err)
	}

	mm, _ := m.Update(stateChangedMsg{})
	m = mm.(appModel)
	if !m.sess.IsFavorite("Written elsewhere.") {
		t.Fatalf("expected reload to pick up external favorite")
	}
	if row, _ := selectedRow(m.rows); row.Phrase != "Written elsewhere." || row.Kind != session.RowPhrase {
		t.Fatalf("expected pinned favorite as first home row; got %#v", row)
	}
}

func TestCopyWritesClipboard(t *testing.T) {
	var got string
	prev := writeClipboard
	writeClipboard = func(s string) error { got = s; return nil }
	t.Cleanup(func() { writeClipboard = prev })

	m, _ := newTestModel(t)
	m = press(m, "c")
	if !m.minibufferWarn {
		t.Fatalf("expected warning when nothing is selected")
	}

	m = press(m, "a", "c")
	if got == "" || got != m.sess.Selected() || m.minibufferText != "Copied" {
		t.Fatalf("expected selection copied; got %q minibuffer %q", got, m.minibufferText)
	}
}

func TestHelpOpensAndCloses(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "?")
	if m.mode != modeHelp {
		t.Fatalf("expected help mode")
	}
	if strings.TrimSpace(m.View()) == "" {
		t.Fatalf("expected help view")
	}
	m = press(m, "q")
	if m.mode != modeBrowse {
		t.Fatalf("expected q to close help")
	}
}

func TestHomeAndFavoritesKeys(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	m = press(m, "v")
	if m.screen.Name != model.RouteFavorites {
		t.Fatalf("expected favorites; got %s", m.screen.Ref)
	}
	if !strings.Contains(m.View(), "No favorites yet") {
		t.Fatalf("expected empty favorites message")
	}
	m = press(m, "h")
	if m.screen.Name != model.RouteHome {
		t.Fatalf("expected home; got %s", m.screen.Ref)
	}
}

func TestMinibufferTick_AutoClears(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	(&m).showMinibuffer("Hello")
	m.minibufferSetAt = time.Now().Add(-minibufferAutoClearAfter - 100*time.Millisecond)

	mm, _ := m.Update(minibufferTickMsg{})
	m = mm.(appModel)
	if m.minibufferText != "" {
		t.Fatalf("expected minibuffer cleared; got %q", m.minibufferText)
	}

	(&m).showMinibuffer("Fresh")
	mm, _ = m.Update(minibufferTickMsg{})
	m = mm.(appModel)
	if m.minibufferText != "Fresh" {
		t.Fatalf("expected recent minibuffer kept")
	}
}

func TestQuitKey(t *testing.T) {
	t.Parallel()

	m, _ := newTestModel(t)
	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}
