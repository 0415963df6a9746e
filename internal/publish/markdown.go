package publish

import (
	"bytes"
	"strings"

	"quickcomm/internal/model"
	"quickcomm/internal/session"
)

// Source is what a phrase sheet is rendered from.
type Source interface {
	Categories(scope model.Scope) []string
	CustomCategories(scope model.Scope) []string
	ScreenFor(r model.Route) session.Screen
}

// RenderOptions controls what a sheet includes.
type RenderOptions struct {
	// MarkFavorites appends a star to favorite phrases.
	MarkFavorites bool
}

// RenderCategoryMarkdown renders one category screen as a printable page.
func RenderCategoryMarkdown(src Source, c model.Category, opt RenderOptions) string {
	sc := src.ScreenFor(c)

	var buf bytes.Buffer
	writeLn := func(s string) {
		buf.WriteString(s)
		buf.WriteString("\n")
	}

	writeLn("# " + sc.Title)
	for _, sec := range sc.Sections {
		if len(sec.Rows) == 0 {
			continue
		}
		writeLn("")
		writeLn("## " + sec.Title)
		writeLn("")
		for _, row := range sec.Rows {
			writeLn("- " + phraseLine(row, opt))
		}
	}
	return buf.String()
}

// RenderFavoritesMarkdown renders the favorites list.
func RenderFavoritesMarkdown(src Source) string {
	sc := src.ScreenFor(model.Favorites{})

	var buf bytes.Buffer
	buf.WriteString("# Favorites\n\n")
	rows := sc.Rows()
	if len(rows) == 0 {
		buf.WriteString("_" + sc.Empty + "_\n")
		return buf.String()
	}
	for _, row := range rows {
		buf.WriteString("- " + escapeLine(row.Phrase) + "\n")
	}
	return buf.String()
}

// RenderIndexMarkdown links every category page of a sheet.
func RenderIndexMarkdown(src Source, pages map[string]string) string {
	var buf bytes.Buffer
	buf.WriteString("# Quick phrases\n")
	for _, scope := range model.Scopes() {
		buf.WriteString("\n## " + scope.Title() + "\n\n")
		for _, name := range sheetCategories(src, scope) {
			c := model.MustCategory(scope, name)
			buf.WriteString("- [" + escapeLine(name) + "](" + pages[c.Ref()] + ")\n")
		}
	}
	if p, ok := pages[model.Favorites{}.Ref()]; ok {
		buf.WriteString("\n[Favorites](" + p + ")\n")
	}
	return buf.String()
}

func phraseLine(row session.Row, opt RenderOptions) string {
	s := escapeLine(row.Phrase)
	if row.Kind == session.RowSafeDefault {
		s = "**" + s + "**"
	}
	if opt.MarkFavorites && row.Favorite {
		s += " ★"
	}
	return s
}

// escapeLine keeps a phrase on one list line and stops it from starting
// markdown structure.
func escapeLine(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return s
	}
	switch s[0] {
	case '#', '-', '+', '*', '>', '|':
		s = `\` + s
	}
	return s
}
