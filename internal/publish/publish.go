package publish

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"quickcomm/internal/model"
)

type WriteOptions struct {
	RenderOptions
	Overwrite bool
}

type WriteResult struct {
	Written []string `json:"written"`
}

// WriteCategory writes one category page under toDir/<scope>/.
func WriteCategory(src Source, c model.Category, toDir string, opt WriteOptions) (WriteResult, error) {
	if src == nil {
		return WriteResult{}, errors.New("missing source")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)

	p := filepath.Join(toDir, categoryPage(c))
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return WriteResult{}, err
	}
	if err := writeFile(p, []byte(RenderCategoryMarkdown(src, c, opt.RenderOptions)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: []string{p}}, nil
}

// WriteSheet writes an index, a page per category (built-in and custom-only)
// and a favorites page.
func WriteSheet(src Source, toDir string, opt WriteOptions) (WriteResult, error) {
	if src == nil {
		return WriteResult{}, errors.New("missing source")
	}
	toDir = strings.TrimSpace(toDir)
	if toDir == "" {
		return WriteResult{}, errors.New("missing --to")
	}
	toDir = filepath.Clean(toDir)
	if err := os.MkdirAll(toDir, 0o755); err != nil {
		return WriteResult{}, err
	}

	pages := map[string]string{}
	var written []string
	for _, scope := range model.Scopes() {
		for _, name := range sheetCategories(src, scope) {
			c := model.MustCategory(scope, name)
			res, err := WriteCategory(src, c, toDir, opt)
			if err != nil {
				return WriteResult{}, err
			}
			pages[c.Ref()] = filepath.ToSlash(categoryPage(c))
			written = append(written, res.Written...)
		}
	}

	favPath := filepath.Join(toDir, "favorites.md")
	if err := writeFile(favPath, []byte(RenderFavoritesMarkdown(src)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	pages[model.Favorites{}.Ref()] = "favorites.md"
	written = append(written, favPath)

	indexPath := filepath.Join(toDir, "index.md")
	if err := writeFile(indexPath, []byte(RenderIndexMarkdown(src, pages)), opt.Overwrite); err != nil {
		return WriteResult{}, err
	}
	return WriteResult{Written: append([]string{indexPath}, written...)}, nil
}

// sheetCategories lists built-in categories, then custom-only ones sorted.
func sheetCategories(src Source, scope model.Scope) []string {
	out := src.Categories(scope)
	seen := map[string]bool{}
	for _, name := range out {
		seen[name] = true
	}
	var extra []string
	for _, name := range src.CustomCategories(scope) {
		if !seen[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	return append(append([]string{}, out...), extra...)
}

func categoryPage(c model.Category) string {
	return filepath.Join(string(c.Scope()), slug(c.Category())+".md")
}

func slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	s := strings.TrimSuffix(b.String(), "-")
	if s == "" {
		return "category"
	}
	return s
}

func writeFile(path string, b []byte, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return errors.New("file exists (use --overwrite): " + path)
		}
	}
	return os.WriteFile(path, b, 0o644)
}
