package anymatch_test

import (
	"errors"
	"testing"

	am "github.com/reoring/anymatch"
)

func TestBuild_NoArgsIsWildcard(t *testing.T) {
	s, err := am.Build()
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, ok := s.(am.Wildcard); !ok {
		t.Fatalf("expected Wildcard, got %T", s)
	}
}

func TestBuild_SingleArgVariants(t *testing.T) {
	cases := []struct {
		arg  any
		want string
	}{
		{am.String, "anymatch.TypeMatch"},
		{map[string]any{"a": 1}, "*anymatch.DictMatch"},
		{map[string]string{"a": "b"}, "*anymatch.DictMatch"},
		{am.Dict{"a": 1, am.Rest: 2}, "*anymatch.DictMatch"},
		{[]any{1}, "*anymatch.ListMatch"},
		{[]string{"a", "b"}, "*anymatch.ListMatch"},
		{am.Set{1}, "*anymatch.SetMatch"},
	}
	for _, c := range cases {
		s, err := am.Build(c.arg)
		if err != nil {
			t.Fatalf("Build(%s): %v", am.Repr(c.arg), err)
		}
		if got := typeName(s); got != c.want {
			t.Fatalf("Build(%s) = %s, want %s", am.Repr(c.arg), got, c.want)
		}
	}
}

func TestBuild_LiteralPassThrough(t *testing.T) {
	for _, v := range []any{3, "x", true, nil, 2.5} {
		got := am.Any(v)
		if got != v {
			t.Fatalf("Any(%#v) should be a pass-through, got %#v", v, got)
		}
	}
}

func TestBuild_SchemaIsIdempotent(t *testing.T) {
	s := am.Any([]any{1, am.Rest})
	if am.Any(s) != s {
		t.Fatalf("Any(schema) should return the schema unchanged")
	}
}

func TestBuild_ListRepeatFlag(t *testing.T) {
	s := am.Any([]any{"a", am.Any(am.Number), am.Rest})
	l, ok := s.(*am.ListMatch)
	if !ok {
		t.Fatalf("expected *ListMatch, got %T", s)
	}
	if !l.Repeats() {
		t.Fatalf("expected repeat flag")
	}
	if n := len(l.Items()); n != 2 {
		t.Fatalf("Rest must be stripped, got %d items", n)
	}
}

func TestBuild_DictCatchAll(t *testing.T) {
	s := am.Any(am.Dict{"id": 1, am.Rest: am.Any(am.String)})
	d := s.(*am.DictMatch)
	if _, ok := d.CatchAll(); !ok {
		t.Fatalf("expected catch-all")
	}
	if f := d.Fields(); len(f) != 1 || f["id"] != 1 {
		t.Fatalf("unexpected fields: %v", f)
	}
}

func TestBuild_ConfigurationErrors(t *testing.T) {
	bad := []any{
		am.Rest,
		[]any{am.Rest},
		[]any{am.Rest, 1},
		[]any{1, am.Rest, 2},
		am.Set{1, am.Rest},
		am.Dict{1: "x"},
		am.Kind(99),
	}
	for _, b := range bad {
		_, err := am.Build(b)
		if err == nil {
			t.Fatalf("Build(%s) should fail", am.Repr(b))
		}
		if !errors.Is(err, am.ErrInvalidSchema) {
			t.Fatalf("expected ErrInvalidSchema, got %v", err)
		}
		var se *am.SchemaError
		if !errors.As(err, &se) {
			t.Fatalf("expected *SchemaError, got %T", err)
		}
	}
}

func TestBuild_UnionPropagatesErrors(t *testing.T) {
	if _, err := am.Build(am.String, []any{am.Rest}); !errors.Is(err, am.ErrInvalidSchema) {
		t.Fatalf("expected configuration error from an alternative, got %v", err)
	}
}

func TestBuild_UnionNormalizesEachArg(t *testing.T) {
	s := am.Any(am.Number, []any{am.Any(am.String), am.Rest})
	u, ok := s.(*am.UnionMatch)
	if !ok {
		t.Fatalf("expected *UnionMatch, got %T", s)
	}
	alts := u.Alternatives()
	if _, ok := alts[1].(*am.ListMatch); !ok {
		t.Fatalf("list alternative should be built into a ListMatch, got %T", alts[1])
	}
	if !am.Equal(s, []any{"a", "b"}) || !am.Equal(s, 3) || am.Equal(s, []any{"a", 1}) {
		t.Fatalf("unexpected union semantics")
	}
}

func TestBuild_ContainerValuesNotWrapped(t *testing.T) {
	// the inner list is a literal, so it must match exactly
	s := am.Any(map[string]any{"xs": []any{1, 2}})
	if am.Equal(s, map[string]any{"xs": []any{1, 2, 3}}) {
		t.Fatalf("nested literal list should require exact equality")
	}
	if !am.Equal(s, map[string]any{"xs": []any{1, 2}}) {
		t.Fatalf("expected match")
	}
}

func TestAny_PanicsOnInvalidSchema(t *testing.T) {
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, am.ErrInvalidSchema) {
			t.Fatalf("expected panic with ErrInvalidSchema, got %v", r)
		}
	}()
	am.Any([]any{am.Rest})
}

func TestSchemaError_NamesOffendingValue(t *testing.T) {
	_, err := am.Build([]any{1, am.Rest, 2})
	if err == nil {
		t.Fatalf("expected error")
	}
	want := "anymatch: invalid schema [1, ..., 2]: Rest must be the last list element"
	if err.Error() != want {
		t.Fatalf("got %q, want %q", err.Error(), want)
	}
}

func typeName(v any) string {
	switch v.(type) {
	case am.TypeMatch:
		return "anymatch.TypeMatch"
	case *am.DictMatch:
		return "*anymatch.DictMatch"
	case *am.ListMatch:
		return "*anymatch.ListMatch"
	case *am.SetMatch:
		return "*anymatch.SetMatch"
	case *am.UnionMatch:
		return "*anymatch.UnionMatch"
	case am.Wildcard:
		return "anymatch.Wildcard"
	default:
		return "literal"
	}
}
