package anymatch

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeMismatch      = "mismatch"
	CodeInvalidType   = "invalid_type"
	CodeRequired      = "required"
	CodeMissingItem   = "missing_item"
	CodeNoAlternative = "no_alternative"
	// Input decoding (ValidateText/ValidateYAML)
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTruncated    = "truncated"
)

// Issue represents a single diagnostic entry.
type Issue struct {
	Path    string // JSON Pointer (for example: /items/2/price).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: "expected ..., got ..." style remediation hint.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"schema":"any(string)","value":"42"})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. mismatch at /path
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
		if it.Hint != "" {
			fmt.Fprintf(b, " (%s)", it.Hint)
		}
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// ErrInvalidSchema is wrapped by every configuration error returned by Build.
var ErrInvalidSchema = errors.New("anymatch: invalid schema")

// SchemaError reports a malformed schema literal detected at construction time.
type SchemaError struct {
	Value  any    // The offending argument.
	Reason string // Human readable cause.
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s %s: %s", ErrInvalidSchema.Error(), Repr(e.Value), e.Reason)
}

func (e *SchemaError) Unwrap() error { return ErrInvalidSchema }
