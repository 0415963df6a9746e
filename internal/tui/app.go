package tui

import (
	"errors"
	"strings"
	"time"

	"quickcomm/internal/docs"
	"quickcomm/internal/model"
	"quickcomm/internal/session"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"go.uber.org/zap"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeInput
	modeHelp
	modeConfirm
)

const minibufferAutoClearAfter = 4 * time.Second

type minibufferTickMsg struct{}

type appModel struct {
	sess    *session.Session
	log     *zap.Logger
	watcher *stateWatcher

	width  int
	height int

	mode mode

	screen session.Screen
	rows   list.Model
	// cursors remembers the list position per route so Back lands where you left.
	cursors map[string]int

	search        textinput.Model
	query         string
	renderedQuery string

	input        textinput.Model
	editIndex    int
	editCategory model.Category

	pending      pendingDelete
	confirmFocus confirmModalFocus

	minibufferText  string
	minibufferWarn  bool
	minibufferSetAt time.Time
}

func newAppModel(sess *session.Session, log *zap.Logger) appModel {
	if log == nil {
		log = zap.NewNop()
	}
	m := appModel{
		sess:      sess,
		log:       log,
		cursors:   map[string]int{},
		editIndex: -1,
	}
	m.rows = newList(nil)
	m.rows.SetSize(80, 16)

	m.search = textinput.New()
	m.search.Prompt = ""
	m.search.Placeholder = "What do you want to say?"
	m.search.CharLimit = 120

	m.input = textinput.New()
	m.input.Prompt = ""
	m.input.Placeholder = "Your phrase"
	m.input.CharLimit = 200

	m.refresh()
	return m
}

func (m appModel) Init() tea.Cmd { return m.watchNext() }

func (m appModel) watchNext() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.next()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rows.SetSize(msg.Width, max(3, msg.Height-8))
		return m, nil

	case minibufferTickMsg:
		if m.minibufferText != "" && time.Since(m.minibufferSetAt) >= minibufferAutoClearAfter {
			m.minibufferText = ""
			m.minibufferWarn = false
		}
		return m, nil

	case editorDoneMsg:
		cmd := m.applyEditorResult(msg)
		return m, cmd

	case stateChangedMsg:
		if err := m.sess.Reload(); err != nil {
			m.log.Warn("reload state", zap.Error(err))
			cmd := tea.Batch(m.showWarning("Reload failed: "+err.Error()), m.watchNext())
			return m, cmd
		}
		m.refresh()
		return m, m.watchNext()

	case tea.KeyMsg:
		switch m.mode {
		case modeHelp:
			return m.updateHelp(msg)
		case modeSearch:
			return m.updateSearch(msg)
		case modeInput:
			return m.updateInput(msg)
		case modeConfirm:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}
	return m, nil
}

func (m appModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
		return m, nil
	case "/":
		if m.screen.Name != model.RouteHome {
			m.navigate(model.Home{})
		}
		m.mode = modeSearch
		m.search.SetValue(m.query)
		m.search.CursorEnd()
		cmd := m.search.Focus()
		return m, cmd
	case "h":
		m.navigate(model.Home{})
		return m, nil
	case "v":
		m.navigate(model.Favorites{})
		return m, nil
	case "esc", "backspace":
		m.back()
		return m, nil
	case "enter":
		cmd := m.activate()
		return m, cmd
	case "f":
		cmd := m.toggleFavorite()
		return m, cmd
	case "c":
		cmd := m.copyPhrase()
		return m, cmd
	case "a":
		cmd := m.another()
		return m, cmd
	case "F":
		if m.screen.Name != model.RouteDisplay {
			return m, nil
		}
		if m.sess.Selected() == "" {
			cmd := m.showWarning("Pick a phrase first.")
			return m, cmd
		}
		m.navigate(model.Fullscreen{})
		return m, nil
	case "n", "e", "d":
		cmd := m.customAction(msg.String())
		return m, cmd
	}

	if !m.hasList() {
		return m, nil
	}
	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m appModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.search.Blur()
		m.search.SetValue("")
		m.query = ""
		m.refresh()
		return m, nil
	case "enter":
		m.mode = modeBrowse
		m.search.Blur()
		if m.query == "" {
			return m, nil
		}
		cmd := m.activate()
		return m, cmd
	case "up", "down", "ctrl+p", "ctrl+n":
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if q := strings.TrimSpace(m.search.Value()); q != m.query {
		m.query = q
		m.refresh()
	}
	return m, cmd
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.mode = modeBrowse
		m.input.Blur()
		return m, nil
	case "ctrl+e":
		cmd, err := m.openEditor()
		if err != nil {
			cmd = m.showWarning("Editor failed: " + err.Error())
		}
		return m, cmd
	case "enter":
		var err error
		if m.editIndex < 0 {
			err = m.sess.AddCustom(m.editCategory, m.input.Value())
		} else {
			_, err = m.sess.EditCustom(m.editCategory, m.editIndex, m.input.Value())
		}
		if errors.Is(err, session.ErrEmptyPhrase) {
			cmd := m.showWarning("Type a phrase first. Nothing was saved.")
			return m, cmd
		}
		if err != nil {
			cmd := m.showWarning("Save failed: " + err.Error())
			return m, cmd
		}
		m.mode = modeBrowse
		m.input.Blur()
		m.refresh()
		cmd := m.showMinibuffer("Saved")
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc", "?", "q", "enter", "backspace":
		m.mode = modeBrowse
	}
	return m, nil
}

// activate runs the highlighted row: phrases are selected and displayed,
// everything else navigates.
func (m *appModel) activate() tea.Cmd {
	row, ok := selectedRow(m.rows)
	if !ok || !m.hasList() {
		return nil
	}
	switch row.Kind {
	case session.RowPhrase, session.RowSafeDefault, session.RowCustom:
		if err := m.sess.Select(row.Phrase, row.Context); err != nil {
			return m.showWarning("Save failed: " + err.Error())
		}
		m.navigate(model.Display{})
	default:
		if row.Route != nil {
			m.navigate(row.Route)
		}
	}
	return nil
}

// targetPhrase is the phrase f and c act on: the highlighted row on list
// screens, the selection on display screens.
func (m *appModel) targetPhrase() string {
	if m.hasList() {
		if row, ok := selectedRow(m.rows); ok {
			return row.Phrase
		}
		return ""
	}
	return m.sess.Selected()
}

func (m *appModel) toggleFavorite() tea.Cmd {
	p := m.targetPhrase()
	if p == "" {
		return nil
	}
	on, err := m.sess.ToggleFavorite(p)
	if err != nil {
		return m.showWarning("Save failed: " + err.Error())
	}
	m.refresh()
	if on {
		return m.showMinibuffer(glyphStar() + " Added to favorites")
	}
	return m.showMinibuffer("Removed from favorites")
}

func (m *appModel) copyPhrase() tea.Cmd {
	p := m.targetPhrase()
	if p == "" {
		p = m.sess.Selected()
	}
	if p == "" {
		return m.showWarning("Nothing to copy yet.")
	}
	if err := copyToClipboard(p); err != nil {
		m.log.Warn("clipboard", zap.Error(err))
		return m.showWarning("Clipboard error: " + err.Error())
	}
	return m.showMinibuffer("Copied")
}

func (m *appModel) another() tea.Cmd {
	p, err := m.sess.Another()
	if err != nil {
		return m.showWarning("Save failed: " + err.Error())
	}
	if p == "" {
		return nil
	}
	switch m.screen.Name {
	case model.RouteDisplay, model.RouteFullscreen:
		m.refresh()
	default:
		m.navigate(model.Display{})
	}
	return nil
}

func (m *appModel) customAction(key string) tea.Cmd {
	c, ok := m.screen.Route.(model.Category)
	if !ok {
		return nil
	}
	row, hasRow := selectedRow(m.rows)
	switch key {
	case "n":
		m.editCategory = c
		m.editIndex = -1
		m.input.SetValue("")
	case "e":
		if !hasRow || row.Kind != session.RowCustom {
			return m.showMinibuffer("Move to one of your phrases to edit it.")
		}
		m.editCategory = c
		m.editIndex = row.Index
		m.input.SetValue(row.Phrase)
		m.input.CursorEnd()
	case "d":
		if !hasRow || row.Kind != session.RowCustom {
			return m.showMinibuffer("Move to one of your phrases to delete it.")
		}
		m.askDelete(pendingDelete{category: c, index: row.Index, phrase: row.Phrase})
		return nil
	default:
		return nil
	}
	m.mode = modeInput
	return m.input.Focus()
}

func (m *appModel) navigate(r model.Route) {
	m.rememberCursor()
	m.sess.Navigate(r)
	m.clearSearch()
	m.refresh()
}

func (m *appModel) back() {
	if m.query != "" {
		m.clearSearch()
		m.refresh()
		return
	}
	m.rememberCursor()
	m.sess.BackOrDefault()
	m.refresh()
}

func (m *appModel) clearSearch() {
	m.query = ""
	m.search.SetValue("")
	m.search.Blur()
	if m.mode == modeSearch {
		m.mode = modeBrowse
	}
}

func (m *appModel) rememberCursor() {
	if m.query == "" {
		m.cursors[m.screen.Ref] = m.rows.Index()
	}
}

// refresh rebuilds the screen and its rows from the session, keeping the cursor
// when the same screen is redrawn.
func (m *appModel) refresh() {
	prevRef, prevIdx := m.screen.Ref, m.rows.Index()
	m.screen = m.sess.Screen()

	var items []list.Item
	searching := m.query != "" && m.screen.Name == model.RouteHome
	if searching {
		items = hitItems(m.sess.Search(m.query), m.sess.IsFavorite)
	} else {
		items = screenItems(m.screen)
	}
	m.rows.SetItems(items)

	idx := 0
	switch {
	case searching:
		if m.query == m.renderedQuery && prevRef == m.screen.Ref {
			idx = prevIdx
		}
	case prevRef == m.screen.Ref && m.renderedQuery == "":
		idx = prevIdx
	default:
		idx = m.cursors[m.screen.Ref]
	}
	if idx >= len(items) {
		idx = len(items) - 1
	}
	if idx < 0 {
		idx = 0
	}
	m.rows.Select(idx)
	if searching {
		m.renderedQuery = m.query
	} else {
		m.renderedQuery = ""
	}
}

func (m appModel) hasList() bool {
	switch m.screen.Name {
	case model.RouteDisplay, model.RouteFullscreen:
		return false
	}
	return true
}

func (m *appModel) showMinibuffer(text string) tea.Cmd {
	m.minibufferText = text
	m.minibufferWarn = false
	m.minibufferSetAt = time.Now()
	return tea.Tick(minibufferAutoClearAfter, func(time.Time) tea.Msg { return minibufferTickMsg{} })
}

func (m *appModel) showWarning(text string) tea.Cmd {
	cmd := m.showMinibuffer(text)
	m.minibufferWarn = true
	return cmd
}

// View.

func (m appModel) size() (int, int) {
	w, h := m.width, m.height
	if w <= 0 {
		w = 80
	}
	if h <= 0 {
		h = 24
	}
	return w, h
}

func (m appModel) View() string {
	w, h := m.size()
	if m.mode == modeHelp {
		return m.viewHelp(w)
	}
	if m.mode == modeConfirm {
		return m.viewConfirm(w, h)
	}
	if m.screen.Name == model.RouteFullscreen {
		return m.viewFullscreen(w, h)
	}

	header := m.viewHeader(w)
	footer := m.viewFooter(w)
	bodyH := h - lipgloss.Height(header) - lipgloss.Height(footer) - 2
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	if m.screen.Name == model.RouteDisplay {
		body = m.viewDisplay(w)
	} else {
		body = m.viewList(w, bodyH)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

func (m appModel) viewHeader(w int) string {
	title := styleTitle().Render("Quick Communication Support")
	if m.screen.Name != model.RouteHome {
		title += styleMuted().Render(" "+glyphSep()+" ") + lipgloss.NewStyle().Bold(true).Render(m.screen.Title)
	}
	lines := []string{xansi.Truncate(title, w, "…")}
	if m.screen.Name == model.RouteHome && m.sess.Selected() != "" {
		lines = append(lines, xansi.Truncate(styleMuted().Render("Last selected: ")+m.sess.Selected(), w, "…"))
	}
	return strings.Join(lines, "\n")
}

func (m appModel) viewList(w, h int) string {
	var top []string
	if m.screen.Name == model.RouteHome && (m.mode == modeSearch || m.query != "") {
		top = append(top, renderInputLine(w, "Search: ", m.search.View()))
	}
	if m.mode == modeInput {
		label := "New phrase: "
		if m.editIndex >= 0 {
			label = "Edit phrase: "
		}
		top = append(top, renderInputLine(w, label, m.input.View()))
	}

	var body string
	switch {
	case len(m.rows.Items()) == 0 && m.query != "":
		body = styleMuted().Render("No matches. Try fewer or different words.")
	case len(m.rows.Items()) == 0 && m.screen.Empty != "":
		body = styleMuted().Render(m.screen.Empty)
	default:
		body = listBodyWithOverflowHint(m.rows, w, max(1, h-len(top)))
	}
	return strings.Join(append(top, body), "\n")
}

// listBodyWithOverflowHint renders l in h lines, keeping the last one for a
// hint when rows continue past the visible page.
func listBodyWithOverflowHint(l list.Model, w, h int) string {
	l.SetSize(w, h)
	if l.Paginator.OnLastPage() || h < 2 {
		return l.View()
	}
	l.SetSize(w, h-1)
	return l.View() + "\n" + styleMuted().Render(glyphDown()+" more")
}

func (m appModel) phraseBox(w int) string {
	p := m.sess.Selected()
	if p == "" {
		return styleMuted().Render(m.screen.Empty)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2).
		Bold(true).
		Width(max(20, w-4))
	out := box.Render(p)
	if m.sess.IsFavorite(p) {
		out += "\n" + lipgloss.NewStyle().Foreground(colorFavorite).Render(glyphStar()+" favorite")
	}
	return out
}

func (m appModel) viewDisplay(w int) string {
	return m.phraseBox(w)
}

func (m appModel) viewFullscreen(w, h int) string {
	p := m.sess.Selected()
	content := styleMuted().Render(m.screen.Empty)
	if p != "" {
		content = lipgloss.NewStyle().
			Bold(true).
			Align(lipgloss.Center).
			Width(max(10, min(w-8, 72))).
			Render(p)
	}
	hint := styleMuted().Render("esc back  f favorite  c copy  a another")
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, content, "", hint))
}

func (m appModel) viewHelp(w int) string {
	src, _ := docs.Get("keys")
	return renderMarkdown(src, min(w, 100)) + "\n\n" + styleMuted().Render("esc/? close")
}

func (m appModel) viewFooter(w int) string {
	var hints string
	switch m.mode {
	case modeSearch:
		hints = "type to search  ↑/↓ move  enter open  esc cancel"
	case modeInput:
		hints = "enter save  ctrl+e editor  esc cancel"
	default:
		switch m.screen.Name {
		case model.RouteDisplay:
			hints = "f favorite  c copy  a another  F full-screen  esc back  h home  q quit"
		case model.RouteCategory:
			hints = "enter say  f favorite  n add  e edit  d delete  esc back  ? help"
		default:
			hints = "enter open  / search  f favorite  v favorites  a another  esc back  ? help  q quit"
		}
	}
	lines := []string{xansi.Truncate(styleMuted().Render(hints), w, "…")}
	if m.minibufferText != "" {
		st := lipgloss.NewStyle()
		if m.minibufferWarn {
			st = st.Foreground(colorWarn).Bold(true)
		}
		lines = append(lines, xansi.Truncate(st.Render(m.minibufferText), w, "…"))
	}
	return strings.Join(lines, "\n")
}
