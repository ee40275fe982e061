package anymatch

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	gojson "github.com/goccy/go-json"
)

// Repr renders a schema slot or a candidate value for diagnostics. Schemas
// render through String; JSON values render in a JSON-like notation with map
// keys sorted.
func Repr(v any) string {
	b := &strings.Builder{}
	writeRepr(b, v)
	return b.String()
}

func writeRepr(b *strings.Builder, v any) {
	switch t := v.(type) {
	case Schema:
		b.WriteString(t.String())
		return
	case OpenEnded:
		b.WriteString("...")
		return
	case Dict:
		writeDictLiteral(b, t)
		return
	case Set:
		b.WriteString("Set")
		writeItems(b, "{", []any(t), "}")
		return
	}
	if n, ok := v.(json.Number); ok {
		b.WriteString(string(n))
		return
	}
	switch KindOf(v) {
	case Null, Bool, Number, String:
		out, err := gojson.Marshal(v)
		if err != nil {
			// NaN and ±Inf have no JSON form
			fmt.Fprintf(b, "%v", v)
			return
		}
		b.Write(out)
	case List:
		l, _ := asList(v)
		writeItems(b, "[", l, "]")
	case Map:
		m, _ := asMap(v)
		b.WriteString("{")
		for i, k := range sortedKeys(m) {
			if i > 0 {
				b.WriteString(", ")
			}
			writeRepr(b, k)
			b.WriteString(": ")
			writeRepr(b, m[k])
		}
		b.WriteString("}")
	default:
		fmt.Fprintf(b, "%#v", v)
	}
}

func writeItems(b *strings.Builder, open string, items []any, close string) {
	b.WriteString(open)
	for i, it := range items {
		if i > 0 {
			b.WriteString(", ")
		}
		writeRepr(b, it)
	}
	b.WriteString(close)
}

func writeDictLiteral(b *strings.Builder, d Dict) {
	parts := make([]string, 0, len(d))
	for k, v := range d {
		parts = append(parts, Repr(k)+": "+Repr(v))
	}
	sort.Strings(parts)
	b.WriteString("Dict{")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString("}")
}
