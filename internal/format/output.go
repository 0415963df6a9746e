package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Formats lists the values accepted by Write.
var Formats = []string{"json", "edn", "text"}

// Texter is implemented by payloads with a plain-text rendering.
type Texter interface {
	Text() string
}

// Write renders v as json (default), edn or text.
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "edn":
		return WriteEDN(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s (want %s)", format, strings.Join(Formats, "|"))
	}
}

// WriteJSON writes one JSON document. Phrases are written unescaped so "<" and
// "&" survive for shell pipelines.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// WriteText writes a human-oriented rendering of the "data" payload: Texter
// output when available, one line per element for string lists, indented JSON
// otherwise.
func WriteText(w io.Writer, v any) error {
	if env, ok := v.(map[string]any); ok {
		if data, ok := env["data"]; ok {
			v = data
		}
	}
	switch t := v.(type) {
	case Texter:
		return writeLine(w, t.Text())
	case string:
		return writeLine(w, t)
	case []string:
		return writeLine(w, strings.Join(t, "\n"))
	default:
		return WriteJSON(w, v, true)
	}
}

func writeLine(w io.Writer, s string) error {
	s = strings.TrimRight(s, "\n")
	if s == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, s)
	return err
}
