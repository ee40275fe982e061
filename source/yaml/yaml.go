// Package yaml decodes YAML documents into the JSON-shaped values understood
// by the matcher (nil, bool, int64, float64, string, []any, map[string]any).
package yaml

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// DuplicateKeyError reports a duplicate key found in a YAML mapping with both
// the first occurrence position and the duplicate occurrence position.
type DuplicateKeyError struct {
	Path      string // JSON Pointer of the duplicated key.
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate YAML key %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

var (
	// ErrNonScalarKey is returned for mapping keys that are not scalars.
	ErrNonScalarKey = errors.New("yaml: mapping key is not a scalar")
	// ErrAliasCycle is returned when an anchored value refers to itself.
	ErrAliasCycle = errors.New("yaml: anchor value contains itself")
	// ErrExcessiveAliasing is returned when alias expansion dominates the
	// decoded document (the "billion laughs" shape).
	ErrExcessiveAliasing = errors.New("yaml: document contains excessive aliasing")
	// ErrInvalidMerge is returned for a merge key whose value is not a
	// mapping or a sequence of mappings.
	ErrInvalidMerge = errors.New("yaml: merge value must be a mapping or a sequence of mappings")
)

// DepthError reports a container nested deeper than Options.MaxDepth.
type DepthError struct {
	Path string // JSON Pointer of the offending container ("/" for the root).
}

func (e *DepthError) Error() string { return "max depth exceeded at " + e.Path }

// Options controls decoding.
type Options struct {
	// AllowDuplicateKeys keeps the last occurrence instead of failing.
	AllowDuplicateKeys bool
	// MaxDepth limits container nesting (0 = unlimited).
	MaxDepth int
}

// Decode converts the first document of data. An empty input decodes to nil.
// Aliases are expanded; merge keys ("<<") are applied with explicit keys
// taking precedence.
func Decode(data []byte, opts Options) (any, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	var root yaml.Node
	if err := dec.Decode(&root); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	c := &converter{opts: opts, expanding: map[*yaml.Node]bool{}}
	return c.convert(&root, "", 0)
}

// converter carries the state of one Decode call. decodeCount and aliasCount
// mirror the counters yaml.v3 uses to reject excessive aliasing when it
// unmarshals into Go values; walking yaml.Node directly bypasses that check.
type converter struct {
	opts        Options
	expanding   map[*yaml.Node]bool // anchored nodes currently being converted
	aliasDepth  int
	decodeCount int
	aliasCount  int
}

func (c *converter) convert(n *yaml.Node, path string, depth int) (any, error) {
	c.decodeCount++
	if c.aliasDepth > 0 {
		c.aliasCount++
	}
	if c.aliasCount > 100 && c.decodeCount > 1000 && float64(c.aliasCount)/float64(c.decodeCount) > allowedAliasRatio(c.decodeCount) {
		return nil, ErrExcessiveAliasing
	}
	if n.Anchor != "" {
		c.expanding[n] = true
		defer delete(c.expanding, n)
	}
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return c.convert(n.Content[0], path, depth)
	case yaml.AliasNode:
		if c.expanding[n.Alias] {
			return nil, fmt.Errorf("%w: %q", ErrAliasCycle, n.Value)
		}
		c.aliasDepth++
		defer func() { c.aliasDepth-- }()
		return c.convert(n.Alias, path, depth)
	case yaml.MappingNode:
		if err := c.enter(path, depth); err != nil {
			return nil, err
		}
		return c.convertMapping(n, path, depth+1)
	case yaml.SequenceNode:
		if err := c.enter(path, depth); err != nil {
			return nil, err
		}
		arr := make([]any, 0, len(n.Content))
		for i, item := range n.Content {
			v, err := c.convert(item, fmt.Sprintf("%s/%d", path, i), depth+1)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		return arr, nil
	case yaml.ScalarNode:
		return convertScalar(n)
	default:
		return nil, nil
	}
}

// enter checks the nesting limit for a container opening at path; depth
// counts the containers already open around it.
func (c *converter) enter(path string, depth int) error {
	if c.opts.MaxDepth > 0 && depth+1 > c.opts.MaxDepth {
		if path == "" {
			path = "/"
		}
		return &DepthError{Path: path}
	}
	return nil
}

func (c *converter) convertMapping(n *yaml.Node, path string, depth int) (any, error) {
	m := make(map[string]any, len(n.Content)/2)
	first := make(map[string][2]int, len(n.Content)/2)
	var merged []map[string]any
	for i := 0; i+1 < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if k.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%w at %d:%d", ErrNonScalarKey, k.Line, k.Column)
		}
		if k.ShortTag() == "!!merge" {
			mm, err := c.mergeSources(v, path, depth)
			if err != nil {
				return nil, err
			}
			merged = append(merged, mm...)
			continue
		}
		key := k.Value
		kpath := path + "/" + escapePointer(key)
		if pos, dup := first[key]; dup && !c.opts.AllowDuplicateKeys {
			return nil, &DuplicateKeyError{Path: kpath, Key: key, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
		}
		first[key] = [2]int{k.Line, k.Column}
		val, err := c.convert(v, kpath, depth)
		if err != nil {
			return nil, err
		}
		m[key] = val
	}
	// explicit keys win; among merged mappings the earlier one wins
	for _, mm := range merged {
		for k, v := range mm {
			if _, ok := m[k]; !ok {
				m[k] = v
			}
		}
	}
	return m, nil
}

// mergeSources converts the value of a merge key into the mappings it names.
// Merged mappings sit at the level of the mapping that merges them.
func (c *converter) mergeSources(v *yaml.Node, path string, depth int) ([]map[string]any, error) {
	items := []*yaml.Node{v}
	if v.Kind == yaml.SequenceNode {
		items = v.Content
	}
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		val, err := c.convert(it, path, depth-1)
		if err != nil {
			return nil, err
		}
		mm, ok := val.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w at %d:%d", ErrInvalidMerge, it.Line, it.Column)
		}
		out = append(out, mm)
	}
	return out, nil
}

// allowedAliasRatio follows yaml.v3: small documents may be mostly aliases,
// large ones may not.
func allowedAliasRatio(decodeCount int) float64 {
	switch {
	case decodeCount <= 400000:
		return 0.99
	case decodeCount >= 4000000:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(decodeCount-400000)/3.6e6)
	}
}

func convertScalar(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int":
		var i int64
		if err := n.Decode(&i); err != nil {
			// out of int64 range; keep the exact text
			return json.Number(n.Value), nil
		}
		return i, nil
	case "!!float":
		if n.Style == 0 && isIntegerLiteral(n.Value) {
			// integers beyond uint64 resolve as floats; keep them exact
			return json.Number(n.Value), nil
		}
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	default:
		return n.Value, nil
	}
}

func isIntegerLiteral(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func escapePointer(s string) string {
	b := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '~':
			b = append(b, '~', '0')
		case '/':
			b = append(b, '~', '1')
		default:
			b = append(b, s[i])
		}
	}
	return string(b)
}
