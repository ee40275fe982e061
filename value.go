package anymatch

import (
	"encoding/json"
	"math"
	"math/big"
	"reflect"
	"sort"
	"strconv"
)

// Kind classifies JSON-shaped values. The same constants double as type tags
// for the builder: Any(String) matches any string.
type Kind int

const (
	KindInvalid Kind = iota
	Null
	Bool
	Number
	// Integer is a type tag for numbers with an integral value. KindOf never
	// reports it; integral numbers are reported as Number.
	Integer
	String
	List
	Map
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case Integer:
		return "integer"
	case String:
		return "string"
	case List:
		return "list"
	case Map:
		return "map"
	default:
		return "invalid"
	}
}

func (k Kind) valid() bool { return k >= Null && k <= Map }

// KindOf reports the JSON kind of a Go value. Every Go integer and float type
// and json.Number are Number; any slice or array is List; any map with string
// keys is Map. Unsupported values report KindInvalid.
func KindOf(v any) Kind {
	switch v.(type) {
	case nil:
		return Null
	case Set, Dict, OpenEnded:
		// builder literals, never data
		return KindInvalid
	case bool:
		return Bool
	case string:
		return String
	case json.Number,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, uintptr,
		float32, float64:
		return Number
	case []any:
		return List
	case map[string]any:
		return Map
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return Bool
	case reflect.String:
		return String
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return Number
	case reflect.Slice, reflect.Array:
		return List
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			return Map
		}
	}
	return KindInvalid
}

// asList returns the elements of a List value.
func asList(v any) ([]any, bool) {
	if l, ok := v.([]any); ok {
		return l, true
	}
	if KindOf(v) != List {
		return nil, false
	}
	rv := reflect.ValueOf(v)
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// asMap returns the entries of a Map value.
func asMap(v any) (map[string]any, bool) {
	if m, ok := v.(map[string]any); ok {
		return m, true
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// Equal compares a schema slot with a candidate. When either side is a Schema
// its Match decides, so Equal(s, v) == Equal(v, s); otherwise both sides are
// compared as literals by kind-aware deep equality.
func Equal(a, b any) bool {
	if s, ok := a.(Schema); ok {
		return s.Match(b)
	}
	if s, ok := b.(Schema); ok {
		return s.Match(a)
	}
	return literalEqual(a, b)
}

func literalEqual(a, b any) bool {
	ka, kb := KindOf(a), KindOf(b)
	if ka != kb {
		return false
	}
	switch ka {
	case Null:
		return true
	case Bool:
		return reflect.ValueOf(a).Bool() == reflect.ValueOf(b).Bool()
	case String:
		return reflect.ValueOf(a).String() == reflect.ValueOf(b).String()
	case Number:
		return numberEqual(a, b)
	case List:
		la, _ := asList(a)
		lb, _ := asList(b)
		if len(la) != len(lb) {
			return false
		}
		for i := range la {
			if !Equal(la[i], lb[i]) {
				return false
			}
		}
		return true
	case Map:
		ma, _ := asMap(a)
		mb, _ := asMap(b)
		if len(ma) != len(mb) {
			return false
		}
		for k, va := range ma {
			vb, ok := mb[k]
			if !ok || !Equal(va, vb) {
				return false
			}
		}
		return true
	default:
		return reflect.DeepEqual(a, b)
	}
}

// ---- numbers ----

// toRat converts a Number value into an exact rational. NaN and ±Inf have no
// rational form and report ok=false.
func toRat(v any) (*big.Rat, bool) {
	switch n := v.(type) {
	case json.Number:
		r, ok := new(big.Rat).SetString(string(n))
		return r, ok
	case float64:
		return floatRat(n)
	case float32:
		return floatRat(float64(n))
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return new(big.Rat).SetInt64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Rat).SetInt(new(big.Int).SetUint64(rv.Uint())), true
	case reflect.Float32, reflect.Float64:
		return floatRat(rv.Float())
	}
	return nil, false
}

func floatRat(f float64) (*big.Rat, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, false
	}
	return new(big.Rat).SetFloat64(f), true
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case json.Number:
		f, _ := strconv.ParseFloat(string(n), 64)
		return f
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	}
	return math.NaN()
}

func numberEqual(a, b any) bool {
	if ia, ok := a.(int); ok {
		if ib, ok := b.(int); ok {
			return ia == ib
		}
	}
	ra, oka := toRat(a)
	rb, okb := toRat(b)
	if oka && okb {
		return ra.Cmp(rb) == 0
	}
	// at least one side is NaN/Inf (or an unparsable json.Number)
	return toFloat(a) == toFloat(b)
}

func isIntegral(v any) bool {
	if KindOf(v) != Number {
		return false
	}
	r, ok := toRat(v)
	return ok && r.IsInt()
}

// sortedKeys returns map keys in lexical order so iteration never depends on
// map order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
