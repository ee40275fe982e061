package anymatch

import "github.com/rs/zerolog"

// NumberMode dictates how numbers decoded from text are represented.
type NumberMode int

const (
	NumberJSONNumber NumberMode = iota // Preserve json.Number (default, exact comparison).
	NumberFloat64                      // Fast mode (with potential precision loss).
)

// Strictness configures enforcement for duplicate keys in decoded text.
type Strictness struct {
	OnDuplicateKey Severity // Ignore (last wins), Warn (logged) or Error.
}

// Severity expresses the severity level for issues.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ValidatorOpt bundles validator options. When several are passed to
// NewValidator the last one wins.
type ValidatorOpt struct {
	// Debug turns a failed top-level match into an Issues error describing
	// the schema, the candidate and the deepest mismatch.
	Debug bool
	// Logger receives debug/warn events. Nil disables logging.
	Logger *zerolog.Logger

	Strictness Strictness
	MaxDepth   int   // Maximum container nesting when decoding text (0 = unlimited).
	MaxBytes   int64 // Maximum input size when decoding text (0 = unlimited).
	NumberMode NumberMode
}
