package phrases

import (
	"sort"

	"quickcomm/internal/model"
)

// CustomStore holds user-added phrases per scope and category.
//
// It does not validate phrase text; callers trim and reject empty input first.
// Mutators report whether anything changed so the caller knows when to persist.
type CustomStore struct {
	data map[model.Scope]map[string][]string
}

func NewCustomStore() *CustomStore {
	return &CustomStore{data: emptyCustom()}
}

func emptyCustom() map[model.Scope]map[string][]string {
	out := map[model.Scope]map[string][]string{}
	for _, sc := range model.Scopes() {
		out[sc] = map[string][]string{}
	}
	return out
}

func (s *CustomStore) Add(scope model.Scope, category, text string) bool {
	if !scope.Valid() {
		return false
	}
	s.data[scope][category] = append(s.data[scope][category], text)
	return true
}

// Edit replaces the phrase at index. Out-of-range indexes are ignored.
func (s *CustomStore) Edit(scope model.Scope, category string, index int, text string) bool {
	arr := s.data[scope][category]
	if index < 0 || index >= len(arr) {
		return false
	}
	arr[index] = text
	return true
}

// Delete removes the phrase at index. Out-of-range indexes are ignored.
func (s *CustomStore) Delete(scope model.Scope, category string, index int) bool {
	arr := s.data[scope][category]
	if index < 0 || index >= len(arr) {
		return false
	}
	s.data[scope][category] = append(arr[:index:index], arr[index+1:]...)
	return true
}

// List returns a copy of the custom phrases of one category.
func (s *CustomStore) List(scope model.Scope, category string) []string {
	return append([]string{}, s.data[scope][category]...)
}

// CategoryNames returns the categories that have a custom list in a scope, sorted.
func (s *CustomStore) CategoryNames(scope model.Scope) []string {
	out := make([]string, 0, len(s.data[scope]))
	for name := range s.data[scope] {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Snapshot returns a deep copy in the persisted shape. Both scopes are always present.
func (s *CustomStore) Snapshot() map[model.Scope]map[string][]string {
	out := emptyCustom()
	for sc, cats := range s.data {
		for name, arr := range cats {
			out[sc][name] = append([]string{}, arr...)
		}
	}
	return out
}

// Replace swaps the whole store for data (typically a freshly loaded snapshot).
func (s *CustomStore) Replace(data map[model.Scope]map[string][]string) {
	s.data = emptyCustom()
	for sc, cats := range data {
		if !sc.Valid() {
			continue
		}
		for name, arr := range cats {
			s.data[sc][name] = append([]string{}, arr...)
		}
	}
}
