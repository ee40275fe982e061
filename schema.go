package anymatch

import "strings"

// Schema is a node of the matching algebra. The set of implementations is
// closed: TypeMatch, *DictMatch, *ListMatch, *SetMatch, *UnionMatch and
// Wildcard. Any other value in a schema position is a literal.
type Schema interface {
	// Match reports whether v conforms to the node. It never panics for
	// well-formed nodes and has no side effects.
	Match(v any) bool
	// String renders the node for diagnostics.
	String() string

	schemaNode()
}

// TypeMatch matches any value of a kind.
type TypeMatch struct {
	kind Kind
}

// Kind returns the target kind.
func (t TypeMatch) Kind() Kind { return t.kind }

func (t TypeMatch) Match(v any) bool {
	switch t.kind {
	case Integer:
		return isIntegral(v)
	default:
		// KindOf keeps bool and numbers apart, so Bool never satisfies Number.
		return KindOf(v) == t.kind
	}
}

func (t TypeMatch) String() string { return "any(" + t.kind.String() + ")" }

func (TypeMatch) schemaNode() {}

// DictMatch matches maps containing the listed keys. Unlisted keys are ignored
// unless a catch-all slot is present, in which case each of them must match it.
type DictMatch struct {
	fields  map[string]any
	keys    []string // sorted; match order never depends on map order
	rest    any
	hasRest bool
}

// Fields returns a copy of the explicit key constraints.
func (d *DictMatch) Fields() map[string]any {
	out := make(map[string]any, len(d.fields))
	for k, v := range d.fields {
		out[k] = v
	}
	return out
}

// CatchAll returns the slot applied to unlisted keys, if any.
func (d *DictMatch) CatchAll() (any, bool) { return d.rest, d.hasRest }

func (d *DictMatch) Match(v any) bool {
	m, ok := asMap(v)
	if !ok {
		return false
	}
	for _, k := range d.keys {
		got, ok := m[k]
		if !ok || !Equal(d.fields[k], got) {
			return false
		}
	}
	if !d.hasRest {
		return true
	}
	for _, k := range sortedKeys(m) {
		if _, listed := d.fields[k]; listed {
			continue
		}
		if !Equal(d.rest, m[k]) {
			return false
		}
	}
	return true
}

func (d *DictMatch) String() string {
	b := &strings.Builder{}
	b.WriteString("dict{")
	for i, k := range d.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Repr(k))
		b.WriteString(": ")
		b.WriteString(Repr(d.fields[k]))
	}
	if d.hasRest {
		if len(d.keys) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...: ")
		b.WriteString(Repr(d.rest))
	}
	b.WriteString("}")
	return b.String()
}

func (*DictMatch) schemaNode() {}

// ListMatch matches lists position by position against a required prefix.
// With repeat set, the last slot is applied to every position beyond the
// prefix.
type ListMatch struct {
	items  []any
	repeat bool
}

// Items returns a copy of the positional slots.
func (l *ListMatch) Items() []any { return append([]any(nil), l.items...) }

// Repeats reports whether the last slot covers the candidate's tail.
func (l *ListMatch) Repeats() bool { return l.repeat }

// slotAt returns the slot for candidate position i, or false when position i
// is not constrained.
func (l *ListMatch) slotAt(i int) (any, bool) {
	if i < len(l.items) {
		return l.items[i], true
	}
	if l.repeat && len(l.items) > 0 {
		return l.items[len(l.items)-1], true
	}
	return nil, false
}

func (l *ListMatch) Match(v any) bool {
	got, ok := asList(v)
	if !ok {
		return false
	}
	// zip semantics: pairs up to the shorter side
	for i, item := range got {
		slot, ok := l.slotAt(i)
		if !ok {
			break
		}
		if !Equal(slot, item) {
			return false
		}
	}
	return true
}

func (l *ListMatch) String() string {
	b := &strings.Builder{}
	b.WriteString("list[")
	for i, it := range l.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Repr(it))
	}
	if l.repeat {
		b.WriteString(", ...")
	}
	b.WriteString("]")
	return b.String()
}

func (*ListMatch) schemaNode() {}

// SetMatch matches lists that contain, somewhere, an item equal to each slot.
type SetMatch struct {
	items []any
}

// Items returns a copy of the required members.
func (s *SetMatch) Items() []any { return append([]any(nil), s.items...) }

func (s *SetMatch) Match(v any) bool {
	got, ok := asList(v)
	if !ok {
		return false
	}
	for _, want := range s.items {
		if indexOf(got, want) < 0 {
			return false
		}
	}
	return true
}

func (s *SetMatch) String() string {
	b := &strings.Builder{}
	b.WriteString("set{")
	for i, it := range s.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(Repr(it))
	}
	b.WriteString("}")
	return b.String()
}

func (*SetMatch) schemaNode() {}

func indexOf(list []any, slot any) int {
	for i, item := range list {
		if Equal(slot, item) {
			return i
		}
	}
	return -1
}

// UnionMatch matches when any of its alternatives matches. It always holds at
// least two alternatives; see Union.
type UnionMatch struct {
	alts []any
}

// Alternatives returns a copy of the alternatives in declared order.
func (u *UnionMatch) Alternatives() []any { return append([]any(nil), u.alts...) }

func (u *UnionMatch) Match(v any) bool {
	for _, alt := range u.alts {
		if Equal(alt, v) {
			return true
		}
	}
	return false
}

func (u *UnionMatch) String() string {
	parts := make([]string, len(u.alts))
	for i, alt := range u.alts {
		parts[i] = Repr(alt)
	}
	return strings.Join(parts, " | ")
}

func (*UnionMatch) schemaNode() {}

// Wildcard matches any value.
type Wildcard struct{}

func (Wildcard) Match(any) bool { return true }

func (Wildcard) String() string { return "any()" }

func (Wildcard) schemaNode() {}

// compile-time checks
var (
	_ Schema = TypeMatch{}
	_ Schema = (*DictMatch)(nil)
	_ Schema = (*ListMatch)(nil)
	_ Schema = (*SetMatch)(nil)
	_ Schema = (*UnionMatch)(nil)
	_ Schema = Wildcard{}
)
