package engine

import (
	"strconv"
	"strings"
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int // 0 disables the depth check.
	// IssueSink is an optional callback receiving non-fatal issues (duplicate
	// keys under DupWarn) as well as the fatal ones before they are returned.
	IssueSink func(SimpleIssue)
}

// frame tracks one open container. Objects remember the keys seen so far and
// the key whose value is pending; arrays count elements.
type frame struct {
	object     bool
	path       string
	keys       map[string]struct{}
	pendingKey string
	hasPending bool
	nextIndex  int
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy
// and maximum nesting depth. Issue paths are JSON Pointers.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	switch tok.Kind {
	case KindKey:
		if err := e.onKey(tok.String); err != nil {
			return Token{}, err
		}
	case KindBeginObject, KindBeginArray:
		path := e.valuePath()
		e.stack = append(e.stack, frame{
			object: tok.Kind == KindBeginObject,
			path:   path,
			keys:   map[string]struct{}{},
		})
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.fail(SimpleIssue{Code: "parse_error", Path: rootIfEmpty(path), Message: "max depth exceeded"})
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	default:
		e.valuePath()
	}
	return tok, nil
}

func (e *enforcingTokenSource) onKey(key string) error {
	n := len(e.stack)
	if n == 0 || !e.stack[n-1].object {
		return nil
	}
	top := &e.stack[n-1]
	top.pendingKey, top.hasPending = key, true
	if _, dup := top.keys[key]; dup && e.opt.OnDuplicate != DupIgnore {
		si := SimpleIssue{Code: "duplicate_key", Path: joinJSONPointer(top.path, key), Message: "key '" + key + "' duplicated"}
		if e.opt.OnDuplicate == DupError {
			return e.fail(si)
		}
		if e.opt.IssueSink != nil {
			e.opt.IssueSink(si)
		}
	}
	top.keys[key] = struct{}{}
	return nil
}

// valuePath consumes the position of a value that starts in the current
// container and returns its pointer.
func (e *enforcingTokenSource) valuePath() string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	if top.object {
		if !top.hasPending {
			return top.path
		}
		top.hasPending = false
		return joinJSONPointer(top.path, top.pendingKey)
	}
	p := joinJSONPointer(top.path, strconv.Itoa(top.nextIndex))
	top.nextIndex++
	return p
}

func (e *enforcingTokenSource) fail(si SimpleIssue) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	return IssueError{si}
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }

func rootIfEmpty(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var jsonPointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinJSONPointer(base, token string) string {
	return base + "/" + jsonPointerEscaper.Replace(token)
}
