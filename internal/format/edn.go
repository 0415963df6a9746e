package format

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes v as EDN. Values are first round-tripped through JSON so
// struct tags decide field names; JSON keys become keywords with underscores
// turned into dashes.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(strings.NewReader(string(b)))
	dec.UseNumber()
	var x any
	if err := dec.Decode(&x); err != nil {
		return err
	}

	p := ednPrinter{pretty: pretty}
	p.value(x, 0)
	p.sb.WriteByte('\n')
	_, err = io.WriteString(w, p.sb.String())
	return err
}

type ednPrinter struct {
	sb     strings.Builder
	pretty bool
}

func (p *ednPrinter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		p.sb.WriteString("nil")
	case bool:
		p.sb.WriteString(strconv.FormatBool(t))
	case json.Number:
		p.sb.WriteString(t.String())
	case string:
		p.sb.WriteString(strconv.Quote(t))
	case []any:
		p.seq('[', ']', len(t), depth, func(i int) { p.value(t[i], depth+1) })
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		p.seq('{', '}', len(keys), depth, func(i int) {
			p.sb.WriteString(keyword(keys[i]))
			p.sb.WriteByte(' ')
			p.value(t[keys[i]], depth+1)
		})
	}
}

func (p *ednPrinter) seq(open, close byte, n, depth int, elem func(int)) {
	p.sb.WriteByte(open)
	for i := 0; i < n; i++ {
		switch {
		case p.pretty:
			p.sb.WriteByte('\n')
			p.sb.WriteString(strings.Repeat("  ", depth+1))
		case i > 0:
			p.sb.WriteByte(' ')
		}
		elem(i)
	}
	if p.pretty && n > 0 {
		p.sb.WriteByte('\n')
		p.sb.WriteString(strings.Repeat("  ", depth))
	}
	p.sb.WriteByte(close)
}

func keyword(k string) string {
	k = strings.TrimSpace(k)
	k = strings.NewReplacer(" ", "-", "_", "-", "/", ".").Replace(k)
	return ":" + k
}
