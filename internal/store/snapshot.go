package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"quickcomm/internal/model"
)

const stateFileName = "qcs_state.json"

// Snapshot is the persisted projection of favorites, custom phrases and the
// last selected phrase.
type Snapshot struct {
	Favorites      []string                            `json:"favorites"`
	CustomPhrases  map[model.Scope]map[string][]string `json:"custom_phrases"`
	SelectedPhrase string                              `json:"selected_phrase"`
}

func DefaultSnapshot() Snapshot {
	return Snapshot{
		Favorites:     []string{},
		CustomPhrases: emptyCustomPhrases(),
	}
}

func emptyCustomPhrases() map[model.Scope]map[string][]string {
	out := map[model.Scope]map[string][]string{}
	for _, sc := range model.Scopes() {
		out[sc] = map[string][]string{}
	}
	return out
}

// normalized returns a copy with favorites sorted and unique, both scopes
// present and no nil lists.
func (s Snapshot) normalized() Snapshot {
	out := DefaultSnapshot()
	out.SelectedPhrase = s.SelectedPhrase
	out.Favorites = sortedUnique(s.Favorites)
	for sc, cats := range s.CustomPhrases {
		if !sc.Valid() {
			continue
		}
		for name, arr := range cats {
			out.CustomPhrases[sc][name] = append([]string{}, arr...)
		}
	}
	return out
}

func sortedUnique(in []string) []string {
	set := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, x := range in {
		if _, ok := set[x]; ok {
			continue
		}
		set[x] = struct{}{}
		out = append(out, x)
	}
	sort.Strings(out)
	return out
}

// StateFile reads and writes one snapshot document.
type StateFile struct {
	Path string
}

// CorruptPath is where an unparseable state file is copied before defaults
// replace it.
func (f StateFile) CorruptPath() string { return f.Path + ".corrupt" }

// Load reads the snapshot. A missing file yields the default snapshot; so does
// a file that is not valid JSON, after a copy is kept at CorruptPath. Wrong-shaped
// fields are repaired one by one.
func (f StateFile) Load() (Snapshot, error) {
	if strings.TrimSpace(f.Path) == "" {
		return DefaultSnapshot(), nil
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return DefaultSnapshot(), nil
		}
		return Snapshot{}, err
	}
	snap, ok := decode(b)
	if !ok {
		_ = CopyFile(f.Path, f.CorruptPath())
	}
	return snap, nil
}

// Save rewrites the whole document via a temp file and rename, so a crash never
// leaves a truncated file behind.
func (f StateFile) Save(s Snapshot) error {
	if strings.TrimSpace(f.Path) == "" {
		return nil
	}
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	b, err := Encode(s)
	if err != nil {
		return err
	}
	return atomicWriteFile(dir, filepath.Base(f.Path)+".*.tmp", f.Path, b, 0o644)
}

// Encode renders the persisted JSON document.
func Encode(s Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.normalized()); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode parses a persisted document, never failing: unparseable input gives
// the default snapshot.
func Decode(b []byte) Snapshot {
	snap, _ := decode(b)
	return snap
}

func decode(b []byte) (Snapshot, bool) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var obj any
	if err := dec.Decode(&obj); err != nil {
		return DefaultSnapshot(), false
	}
	// A second value or trailing garbage makes the whole document unparseable.
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		return DefaultSnapshot(), false
	}
	return Repair(obj), true
}

// Repair builds a snapshot from an arbitrary decoded JSON value, treating every
// wrong-shaped field as absent.
func Repair(obj any) Snapshot {
	out := DefaultSnapshot()
	m, ok := obj.(map[string]any)
	if !ok {
		return out
	}

	if favs, ok := m["favorites"].([]any); ok {
		list := make([]string, 0, len(favs))
		for _, x := range favs {
			list = append(list, coerceString(x))
		}
		out.Favorites = sortedUnique(list)
	}

	if raw, ok := m["custom_phrases"].(map[string]any); ok {
		for _, sc := range model.Scopes() {
			cats, ok := raw[string(sc)].(map[string]any)
			if !ok {
				continue
			}
			for name, v := range cats {
				arr, _ := v.([]any)
				list := make([]string, 0, len(arr))
				for _, x := range arr {
					list = append(list, coerceString(x))
				}
				out.CustomPhrases[sc][name] = list
			}
		}
	}

	if sel, ok := m["selected_phrase"].(string); ok {
		out.SelectedPhrase = sel
	}
	return out
}

// coerceString keeps strings as-is and renders anything else as its JSON text.
func coerceString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
