package tui

import (
	"fmt"
	"io"
	"strings"

	"quickcomm/internal/session"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

type rowDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
}

func newRowDelegate() rowDelegate {
	return rowDelegate{
		normal: lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
	}
}

func (d rowDelegate) Height() int                             { return 1 }
func (d rowDelegate) Spacing() int                            { return 0 }
func (d rowDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d rowDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	it, ok := item.(rowItem)
	if !ok || contentW < 4 {
		return
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
	}

	line := " " + rowMarker(it.row) + " " + it.row.Label
	tag := ""
	if it.first && it.section != "" {
		tag = " " + it.section + " "
	}

	lineW := xansi.StringWidth(line)
	tagW := xansi.StringWidth(tag)
	switch {
	case lineW+tagW <= contentW:
		line += strings.Repeat(" ", contentW-lineW-tagW)
	case lineW > contentW-tagW && contentW-tagW > 8:
		line = xansi.Truncate(line, contentW-tagW, "…")
		line += strings.Repeat(" ", max(0, contentW-tagW-xansi.StringWidth(line)))
	default:
		tag = ""
		line = xansi.Truncate(line, contentW, "…")
	}

	out := style.Render(line)
	if tag != "" {
		out += styleMuted().Render(tag)
	}
	fmt.Fprint(w, out)
}

func rowMarker(r session.Row) string {
	switch r.Kind {
	case session.RowCategory, session.RowScope, session.RowLink:
		return glyphArrow()
	case session.RowSafeDefault:
		return glyphBolt()
	case session.RowCustom:
		if r.Favorite {
			return glyphStar()
		}
		return glyphPencil()
	default:
		if r.Favorite {
			return glyphStar()
		}
		return " "
	}
}
