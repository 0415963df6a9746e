package phrases

import "quickcomm/internal/model"

// Catalog joins the static content with the custom store.
type Catalog struct {
	Custom *CustomStore
}

func NewCatalog(custom *CustomStore) Catalog {
	if custom == nil {
		custom = NewCustomStore()
	}
	return Catalog{Custom: custom}
}

func (c Catalog) Categories(scope model.Scope) []string {
	return Categories(scope)
}

// PhrasesFor lists built-ins, then customs, then generic phrases for a category.
// Exact duplicates are dropped; the first occurrence wins.
func (c Catalog) PhrasesFor(scope model.Scope, category string) []string {
	var out []string
	out = append(out, Builtin(scope, category)...)
	out = append(out, c.Custom.List(scope, category)...)
	out = append(out, genericPhrases...)
	return Dedupe(out)
}

// AllPhrases lists generic phrases, every built-in phrase and every custom phrase.
func (c Catalog) AllPhrases() []string {
	out := append([]string{}, genericPhrases...)
	for _, sc := range model.Scopes() {
		for _, cat := range builtins(sc) {
			out = append(out, cat.phrases...)
		}
	}
	for _, sc := range model.Scopes() {
		for _, name := range c.orderedCustomCategories(sc) {
			out = append(out, c.Custom.List(sc, name)...)
		}
	}
	return Dedupe(out)
}

// orderedCustomCategories puts built-in categories first in declaration order,
// then any other categories found in the custom store.
func (c Catalog) orderedCustomCategories(scope model.Scope) []string {
	seen := map[string]bool{}
	var out []string
	for _, name := range Categories(scope) {
		seen[name] = true
		out = append(out, name)
	}
	for _, name := range c.Custom.CategoryNames(scope) {
		if !seen[name] {
			out = append(out, name)
		}
	}
	return out
}

// CategoryRoutes returns every built-in category as a route, Activities first.
func (c Catalog) CategoryRoutes() []model.Category {
	var out []model.Category
	for _, sc := range model.Scopes() {
		for _, name := range Categories(sc) {
			out = append(out, model.MustCategory(sc, name))
		}
	}
	return out
}

// Dedupe drops repeated strings, keeping the first occurrence.
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, x := range items {
		if _, ok := seen[x]; ok {
			continue
		}
		seen[x] = struct{}{}
		out = append(out, x)
	}
	return out
}
