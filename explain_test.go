package anymatch_test

import (
	"testing"

	am "github.com/reoring/anymatch"
)

func TestExplain_NilOnMatch(t *testing.T) {
	if iss := am.Explain(am.Any(am.String), "x"); iss != nil {
		t.Fatalf("expected nil, got %v", iss)
	}
}

func TestExplain_LocatesDeepestMismatch(t *testing.T) {
	schema := am.Any(map[string]any{
		"user": am.Any(map[string]any{
			"tags": am.Any([]any{am.Any(am.String), am.Rest}),
		}),
	})
	cases := []struct {
		name  string
		value any
		path  string
		code  string
	}{
		{"not a map", "x", "/", am.CodeInvalidType},
		{"missing key", map[string]any{}, "/user", am.CodeRequired},
		{"nested type", map[string]any{"user": map[string]any{"tags": "a"}}, "/user/tags", am.CodeInvalidType},
		{"repeated slot", map[string]any{"user": map[string]any{"tags": []any{"a", "b", 3}}}, "/user/tags/2", am.CodeInvalidType},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			iss := am.Explain(schema, c.value)
			if len(iss) != 2 {
				t.Fatalf("expected 2 issues, got %v", iss)
			}
			if iss[1].Path != c.path || iss[1].Code != c.code {
				t.Fatalf("got %s at %s, want %s at %s", iss[1].Code, iss[1].Path, c.code, c.path)
			}
		})
	}
}

func TestExplain_CatchAllPath(t *testing.T) {
	iss := am.Explain(am.Any(am.Dict{am.Rest: am.Any(am.Number)}), map[string]any{"a/b": 1, "c": "x"})
	if len(iss) != 2 || iss[1].Path != "/c" {
		t.Fatalf("expected issue at /c, got %v", iss)
	}
	iss = am.Explain(am.Any(am.Dict{am.Rest: am.Any(am.Number)}), map[string]any{"a/b": "x"})
	if len(iss) != 2 || iss[1].Path != "/a~1b" {
		t.Fatalf("expected escaped pointer /a~1b, got %v", iss)
	}
}

func TestExplain_UnionAndSet(t *testing.T) {
	iss := am.Explain(am.Any(am.Bool, "success"), 1)
	if len(iss) != 2 || iss[1].Code != am.CodeNoAlternative {
		t.Fatalf("expected no_alternative, got %v", iss)
	}
	iss = am.Explain(am.Any(am.Set{1, 2}), []any{1})
	if len(iss) != 2 || iss[1].Code != am.CodeMissingItem || iss[1].Params["expected"] != "2" {
		t.Fatalf("expected missing_item for 2, got %v", iss)
	}
}

func TestExplain_Literal(t *testing.T) {
	iss := am.Explain(map[string]any{"a": []any{1, 2}}, map[string]any{"a": []any{1, 3}})
	if len(iss) != 2 || iss[1].Path != "/a/1" || iss[1].Code != am.CodeMismatch {
		t.Fatalf("expected mismatch at /a/1, got %v", iss)
	}
	iss = am.Explain(map[string]any{"a": 1}, map[string]any{"a": 1, "b": 2})
	if len(iss) != 2 || iss[1].Path != "/b" {
		t.Fatalf("expected unexpected key at /b, got %v", iss)
	}
	// a plain scalar mismatch has nothing deeper to report
	iss = am.Explain("a", "b")
	if len(iss) != 1 || iss[0].Hint != `expected "a", got "b"` {
		t.Fatalf("expected a single top-level issue, got %v", iss)
	}
}

func TestExplain_ValueSideSchema(t *testing.T) {
	iss := am.Explain(map[string]any{"a": 1}, am.Any(map[string]any{"a": am.Any(am.String)}))
	if len(iss) != 2 || iss[1].Path != "/a" || iss[1].Code != am.CodeInvalidType {
		t.Fatalf("expected invalid_type at /a, got %v", iss)
	}
}

func TestIssues_ErrorSummary(t *testing.T) {
	iss := am.Issues{
		{Path: "/a", Code: am.CodeInvalidType},
		{Path: "/b", Code: am.CodeRequired},
		{Path: "/c", Code: am.CodeMismatch},
		{Path: "/d", Code: am.CodeMissingItem},
	}
	want := "invalid_type at /a; required at /b; mismatch at /c; ... (total 4)"
	if got := iss.Error(); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
