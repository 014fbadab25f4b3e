package format

import (
	"bytes"
	"io"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// WriteEDN renders v as EDN. Values take their JSON shape first, so json tags
// decide names; map keys become kebab-case keywords (durationMinutes ->
// :duration-minutes).
func WriteEDN(w io.Writer, v any, pretty bool) error {
	x, err := generic(v)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	e := ednWriter{buf: &buf, pretty: pretty}
	e.value(x, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

type ednWriter struct {
	buf    *bytes.Buffer
	pretty bool
}

func (e ednWriter) value(v any, depth int) {
	switch t := v.(type) {
	case nil:
		e.buf.WriteString("nil")
	case bool:
		e.buf.WriteString(strconv.FormatBool(t))
	case string:
		e.buf.WriteString(strconv.Quote(t))
	case float64:
		if t == float64(int64(t)) {
			e.buf.WriteString(strconv.FormatInt(int64(t), 10))
			return
		}
		e.buf.WriteString(strconv.FormatFloat(t, 'f', -1, 64))
	case []any:
		e.open('[')
		for i, x := range t {
			e.sep(i, depth+1)
			e.value(x, depth+1)
		}
		e.close(']', len(t), depth)
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.open('{')
		for i, k := range keys {
			e.sep(i, depth+1)
			e.buf.WriteString(":" + Keyword(k) + " ")
			e.value(t[k], depth+1)
		}
		e.close('}', len(keys), depth)
	default:
		e.buf.WriteString(strconv.Quote("?"))
	}
}

func (e ednWriter) open(c byte) { e.buf.WriteByte(c) }

func (e ednWriter) sep(i, depth int) {
	switch {
	case e.pretty:
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat("  ", depth))
	case i > 0:
		e.buf.WriteByte(' ')
	}
}

func (e ednWriter) close(c byte, n, depth int) {
	if e.pretty && n > 0 {
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat("  ", depth))
	}
	e.buf.WriteByte(c)
}

// Keyword converts a JSON field name to an EDN keyword name.
func Keyword(s string) string {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r == ' ' || r == '_':
			b.WriteByte('-')
		case unicode.IsUpper(r):
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
