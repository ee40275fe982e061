package anymatch

import (
	"reflect"
	"sort"
)

// OpenEnded is the type of Rest. It is distinct from every JSON value, so it
// cannot collide with user data.
type OpenEnded struct{}

// Rest marks an open-ended container. As a Dict key it declares the catch-all
// slot for unlisted keys; as the last element of a list literal it repeats the
// preceding slot over the rest of the candidate.
var Rest = OpenEnded{}

// Dict is a dict literal whose keys are strings or Rest.
type Dict map[any]any

// Set is a set literal: the candidate list must contain each item, in any
// order.
type Set []any

// Build normalizes its arguments into a schema:
//
//   - no arguments: Wildcard
//   - a Kind: TypeMatch
//   - a Schema: returned unchanged
//   - a Dict or a string-keyed map: DictMatch
//   - a Set: SetMatch
//   - a slice or array: ListMatch
//   - anything else: the value itself, used as a literal
//   - two or more arguments: a Union of Build applied to each
//
// Container values are not wrapped recursively; only explicit Build/Any calls
// nested by the caller become sub-schemas. A misplaced Rest returns a
// *SchemaError.
func Build(args ...any) (any, error) {
	switch len(args) {
	case 0:
		return Wildcard{}, nil
	case 1:
		return build(args[0])
	}
	alts := make([]any, 0, len(args))
	for _, a := range args {
		s, err := build(a)
		if err != nil {
			return nil, err
		}
		alts = append(alts, s)
	}
	return Union(alts[0], alts[1:]...), nil
}

// Any is like Build but panics on a malformed schema. It is meant for schemas
// declared in package-level variables and tests.
func Any(args ...any) any {
	s, err := Build(args...)
	if err != nil {
		panic(err)
	}
	return s
}

func build(arg any) (any, error) {
	switch t := arg.(type) {
	case Schema:
		return t, nil
	case Kind:
		if !t.valid() {
			return nil, &SchemaError{Value: t, Reason: "unknown kind"}
		}
		return TypeMatch{kind: t}, nil
	case OpenEnded:
		return nil, &SchemaError{Value: t, Reason: "open-ended marker is only valid as a Dict key or the last list element"}
	case Dict:
		return buildDict(t)
	case Set:
		return buildSet(t)
	}
	switch KindOf(arg) {
	case Map:
		m, _ := asMap(arg)
		return newDictMatch(m, nil, false), nil
	case List:
		l, _ := asList(arg)
		return buildList(arg, l)
	}
	return arg, nil
}

func buildDict(d Dict) (*DictMatch, error) {
	fields := make(map[string]any, len(d))
	var rest any
	hasRest := false
	for k, v := range d {
		switch key := k.(type) {
		case string:
			fields[key] = v
		case OpenEnded:
			rest, hasRest = v, true
		default:
			if rk := reflect.ValueOf(k); rk.Kind() == reflect.String {
				fields[rk.String()] = v
				continue
			}
			return nil, &SchemaError{Value: d, Reason: "dict key " + Repr(k) + " is neither a string nor Rest"}
		}
	}
	return newDictMatch(fields, rest, hasRest), nil
}

func newDictMatch(fields map[string]any, rest any, hasRest bool) *DictMatch {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	cp := make(map[string]any, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return &DictMatch{fields: cp, keys: keys, rest: rest, hasRest: hasRest}
}

func buildList(orig any, items []any) (*ListMatch, error) {
	n := len(items)
	for i, it := range items {
		if _, ok := it.(OpenEnded); ok && i != n-1 {
			return nil, &SchemaError{Value: orig, Reason: "Rest must be the last list element"}
		}
	}
	if n > 0 {
		if _, ok := items[n-1].(OpenEnded); ok {
			if n == 1 {
				return nil, &SchemaError{Value: orig, Reason: "Rest needs a preceding element to repeat"}
			}
			return &ListMatch{items: append([]any(nil), items[:n-1]...), repeat: true}, nil
		}
	}
	return &ListMatch{items: append([]any(nil), items...)}, nil
}

func buildSet(s Set) (*SetMatch, error) {
	for _, it := range s {
		if _, ok := it.(OpenEnded); ok {
			return nil, &SchemaError{Value: s, Reason: "Rest is not allowed in a Set"}
		}
	}
	return &SetMatch{items: append([]any(nil), s...)}, nil
}

// Union combines alternatives as they are (no normalization). A single
// alternative is returned unchanged; nested unions are flattened.
func Union(first any, rest ...any) any {
	alts := appendAlternative(nil, first)
	for _, r := range rest {
		alts = appendAlternative(alts, r)
	}
	if len(alts) == 1 {
		return alts[0]
	}
	return &UnionMatch{alts: alts}
}

// Or is the explicit "or" operation: Or(Any(Bool), "success") matches any
// boolean or the string "success". Or(a, Or(b, c)) and Or(Or(a, b), c) build
// the same union.
func Or(a, b any) any { return Union(a, b) }

func appendAlternative(dst []any, alt any) []any {
	if u, ok := alt.(*UnionMatch); ok {
		return append(dst, u.alts...)
	}
	return append(dst, alt)
}
