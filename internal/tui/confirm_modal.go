package tui

import (
	"strings"

	"quickcomm/internal/model"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// pendingDelete is the custom phrase a confirm modal asks about.
type pendingDelete struct {
	category model.Category
	index    int
	phrase   string
}

func modalBodyWidth(width int) int {
	return max(20, min(60, width-10))
}

func renderModalBox(width int, title string, content string) string {
	bodyW := modalBodyWidth(width)
	head := lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(1, 2).
		Width(bodyW + 4).
		Render(head + "\n\n" + content)
}

func renderConfirmModal(width int, title string, body string, confirmLabel string, cancelLabel string, focus confirmModalFocus) string {
	btnBase := lipgloss.NewStyle().
		Padding(0, 1).
		Foreground(colorChromeFg).
		Background(colorInputBg)
	btnActive := btnBase.
		Foreground(colorSelectedFg).
		Background(colorSelectedBg).
		Bold(true)

	confirm := btnBase.Render(confirmLabel)
	cancel := btnBase.Render(cancelLabel)
	if focus == confirmFocusConfirm {
		confirm = btnActive.Render(confirmLabel)
	} else {
		cancel = btnActive.Render(cancelLabel)
	}
	controls := lipgloss.JoinHorizontal(lipgloss.Top, confirm, " ", cancel)

	bodyW := modalBodyWidth(width)
	help := styleMuted().Width(bodyW).Render("tab: focus   enter: select   y: yes   esc/n: cancel")

	content := strings.Join([]string{
		lipgloss.NewStyle().Width(bodyW).Render(body),
		"",
		controls,
		"",
		help,
	}, "\n")
	return renderModalBox(width, title, content)
}

func (m *appModel) askDelete(p pendingDelete) {
	m.pending = p
	m.confirmFocus = confirmFocusConfirm
	m.mode = modeConfirm
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "esc", "ctrl+g", "n":
		m.mode = modeBrowse
		cmd := m.showMinibuffer("Kept")
		return m, cmd
	case "y":
		cmd := m.confirmDelete()
		return m, cmd
	case "enter":
		if m.confirmFocus == confirmFocusCancel {
			m.mode = modeBrowse
			cmd := m.showMinibuffer("Kept")
			return m, cmd
		}
		cmd := m.confirmDelete()
		return m, cmd
	}
	return m, nil
}

func (m *appModel) confirmDelete() tea.Cmd {
	m.mode = modeBrowse
	p := m.pending
	m.pending = pendingDelete{}
	if _, err := m.sess.DeleteCustom(p.category, p.index); err != nil {
		return m.showWarning("Save failed: " + err.Error())
	}
	m.refresh()
	return m.showMinibuffer("Deleted")
}

func (m appModel) viewConfirm(w, h int) string {
	modal := renderConfirmModal(w, "Delete phrase?", "“"+m.pending.phrase+"”", "Delete", "Keep", m.confirmFocus)
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, modal)
}
