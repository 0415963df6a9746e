package store

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"quickcomm/internal/model"
)

var ErrDoctorIssuesFound = errors.New("doctor found errors")

type DoctorIssueLevel string

const (
	DoctorIssueLevelError DoctorIssueLevel = "error"
	DoctorIssueLevelWarn  DoctorIssueLevel = "warn"
)

type DoctorIssue struct {
	Level   DoctorIssueLevel `json:"level"`
	Code    string           `json:"code"`
	Message string           `json:"message"`
	Path    string           `json:"path,omitempty"`
}

type DoctorReport struct {
	Issues []DoctorIssue `json:"issues"`
}

func (r DoctorReport) HasErrors() bool {
	for _, it := range r.Issues {
		if it.Level == DoctorIssueLevelError {
			return true
		}
	}
	return false
}

func (r *DoctorReport) add(level DoctorIssueLevel, code, path, format string, args ...any) {
	r.Issues = append(r.Issues, DoctorIssue{
		Level:   level,
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Path:    path,
	})
}

// Doctor checks the state file, the activity log (when enabled) and the
// config's quick access refs. Nothing is modified.
func Doctor(ctx context.Context, st Store) DoctorReport {
	r := DoctorReport{Issues: []DoctorIssue{}}
	r.checkState(st.State())
	if st.Cfg.EventsEnabled() {
		r.checkEvents(ctx, st.EventsPath())
	}
	if _, err := st.Cfg.QuickAccessRoutes(); err != nil {
		r.add(DoctorIssueLevelError, "config_quick_access", "", "%v", err)
	}
	return r
}

func (r *DoctorReport) checkState(sf StateFile) {
	path := sf.Path
	if _, err := os.Stat(sf.CorruptPath()); err == nil {
		r.add(DoctorIssueLevelWarn, "state_corrupt_copy", sf.CorruptPath(),
			"an unreadable state file was set aside; inspect and delete it")
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.add(DoctorIssueLevelWarn, "state_missing", path, "no state file yet; defaults are used")
			return
		}
		r.add(DoctorIssueLevelError, "state_unreadable", path, "%v", err)
		return
	}

	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var obj any
	if err := dec.Decode(&obj); err != nil {
		r.add(DoctorIssueLevelError, "state_invalid_json", path, "%v", err)
		return
	}
	if err := dec.Decode(new(any)); !errors.Is(err, io.EOF) {
		r.add(DoctorIssueLevelError, "state_invalid_json", path, "trailing data after the top-level value")
		return
	}
	m, ok := obj.(map[string]any)
	if !ok {
		r.add(DoctorIssueLevelError, "state_not_object", path, "top-level value is %s, not an object", jsonKind(obj))
		return
	}

	if v, ok := m["favorites"]; ok {
		r.checkStringList(path, "favorites", v, true)
	}
	if v, ok := m["custom_phrases"]; ok {
		raw, isObj := v.(map[string]any)
		if !isObj {
			r.add(DoctorIssueLevelWarn, "custom_wrong_shape", path, "custom_phrases is %s, not an object", jsonKind(v))
		}
		for scope, cats := range raw {
			if !model.Scope(scope).Valid() {
				r.add(DoctorIssueLevelWarn, "custom_unknown_scope", path, "custom_phrases.%s is not a known scope and is ignored", scope)
				continue
			}
			byCat, ok := cats.(map[string]any)
			if !ok {
				r.add(DoctorIssueLevelWarn, "custom_wrong_shape", path, "custom_phrases.%s is %s, not an object", scope, jsonKind(cats))
				continue
			}
			for name, list := range byCat {
				r.checkStringList(path, "custom_phrases."+scope+"."+name, list, false)
			}
		}
	}
	if v, ok := m["selected_phrase"]; ok {
		if _, isStr := v.(string); !isStr && v != nil {
			r.add(DoctorIssueLevelWarn, "selected_wrong_shape", path, "selected_phrase is %s, not a string", jsonKind(v))
		}
	}
}

func (r *DoctorReport) checkStringList(path, field string, v any, unique bool) {
	arr, ok := v.([]any)
	if !ok {
		r.add(DoctorIssueLevelWarn, "list_wrong_shape", path, "%s is %s, not a list", field, jsonKind(v))
		return
	}
	seen := map[string]bool{}
	for i, x := range arr {
		s, isStr := x.(string)
		if !isStr {
			r.add(DoctorIssueLevelWarn, "list_non_string", path, "%s[%d] is %s and is read as text", field, i, jsonKind(x))
			s = coerceString(x)
		}
		if strings.TrimSpace(s) == "" {
			r.add(DoctorIssueLevelWarn, "list_empty_entry", path, "%s[%d] is empty", field, i)
		}
		if unique && seen[s] {
			r.add(DoctorIssueLevelWarn, "list_duplicate", path, "%s[%d] repeats %q", field, i, s)
		}
		seen[s] = true
	}
}

func (r *DoctorReport) checkEvents(ctx context.Context, path string) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		r.add(DoctorIssueLevelError, "events_open_failed", path, "%v", err)
		return
	}
	defer db.Close()

	var res string
	if err := db.QueryRowContext(ctx, "PRAGMA integrity_check;").Scan(&res); err != nil {
		r.add(DoctorIssueLevelError, "events_integrity_failed", path, "%v", err)
		return
	}
	if res != "ok" {
		r.add(DoctorIssueLevelError, "events_integrity_failed", path, "%s", res)
	}
}

func jsonKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "a string"
	case json.Number, float64:
		return "a number"
	case bool:
		return "a boolean"
	case []any:
		return "a list"
	case map[string]any:
		return "an object"
	}
	return fmt.Sprintf("%T", v)
}
