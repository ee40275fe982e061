package anymatch

import "github.com/reoring/anymatch/i18n"

// Explain reports why v does not match schema. It returns nil on a match.
// The first issue is always the top-level mismatch at "/" carrying both
// representations in Params ("schema", "value"); when the failure can be
// pinned down further, a second issue names the deepest failing location.
func Explain(schema, v any) Issues {
	if Equal(schema, v) {
		return nil
	}
	sr, vr := Repr(schema), Repr(v)
	iss := AppendIssues(nil, Issue{
		Path:    "/",
		Code:    CodeMismatch,
		Message: i18n.T(CodeMismatch, nil),
		Hint:    "expected " + sr + ", got " + vr,
		Params:  map[string]any{"schema": sr, "value": vr},
	})
	if d := locate(schema, v, pointer{}); d.Path != "/" || d.Code != CodeMismatch {
		iss = append(iss, d)
	}
	return iss
}

// locate descends into a failing (slot, value) pair and returns the deepest
// issue it can attribute. The caller guarantees !Equal(slot, v).
func locate(slot, v any, p pointer) Issue {
	if s, ok := v.(Schema); ok {
		if _, slotIsSchema := slot.(Schema); !slotIsSchema {
			slot, v = s, slot
		}
	}
	switch s := slot.(type) {
	case TypeMatch:
		return issueAt(p, CodeInvalidType, s.kind.String(), Repr(v))
	case *DictMatch:
		m, ok := asMap(v)
		if !ok {
			return issueAt(p, CodeInvalidType, Map.String(), Repr(v))
		}
		for _, k := range s.keys {
			got, ok := m[k]
			if !ok {
				return issueAt(p.field(k), CodeRequired, Repr(s.fields[k]), "nothing")
			}
			if !Equal(s.fields[k], got) {
				return locate(s.fields[k], got, p.field(k))
			}
		}
		if s.hasRest {
			for _, k := range sortedKeys(m) {
				if _, listed := s.fields[k]; !listed && !Equal(s.rest, m[k]) {
					return locate(s.rest, m[k], p.field(k))
				}
			}
		}
	case *ListMatch:
		l, ok := asList(v)
		if !ok {
			return issueAt(p, CodeInvalidType, List.String(), Repr(v))
		}
		for i, item := range l {
			want, ok := s.slotAt(i)
			if !ok {
				break
			}
			if !Equal(want, item) {
				return locate(want, item, p.index(i))
			}
		}
	case *SetMatch:
		l, ok := asList(v)
		if !ok {
			return issueAt(p, CodeInvalidType, List.String(), Repr(v))
		}
		for _, want := range s.items {
			if indexOf(l, want) < 0 {
				return issueAt(p, CodeMissingItem, Repr(want), Repr(v))
			}
		}
	case *UnionMatch:
		return issueAt(p, CodeNoAlternative, s.String(), Repr(v))
	case Schema:
		// Wildcard never fails
	default:
		return locateLiteral(slot, v, p)
	}
	return issueAt(p, CodeMismatch, Repr(slot), Repr(v))
}

func locateLiteral(want, got any, p pointer) Issue {
	kw, kg := KindOf(want), KindOf(got)
	if kw != kg {
		return issueAt(p, CodeInvalidType, kw.String(), Repr(got))
	}
	switch kw {
	case List:
		lw, _ := asList(want)
		lg, _ := asList(got)
		if len(lw) == len(lg) {
			for i := range lw {
				if !Equal(lw[i], lg[i]) {
					return locate(lw[i], lg[i], p.index(i))
				}
			}
		}
	case Map:
		mw, _ := asMap(want)
		mg, _ := asMap(got)
		for _, k := range sortedKeys(mw) {
			g, ok := mg[k]
			if !ok {
				return issueAt(p.field(k), CodeRequired, Repr(mw[k]), "nothing")
			}
			if !Equal(mw[k], g) {
				return locate(mw[k], g, p.field(k))
			}
		}
		for _, k := range sortedKeys(mg) {
			if _, ok := mw[k]; !ok {
				return issueAt(p.field(k), CodeMismatch, "nothing", Repr(mg[k]))
			}
		}
	}
	return issueAt(p, CodeMismatch, Repr(want), Repr(got))
}

func issueAt(p pointer, code, expected, got string) Issue {
	return Issue{
		Path:    p.String(),
		Code:    code,
		Message: i18n.T(code, map[string]string{"expected": expected}),
		Hint:    "expected " + expected + ", got " + got,
		Params:  map[string]any{"expected": expected, "got": got},
	}
}
