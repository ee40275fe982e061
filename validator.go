package anymatch

import (
	"bytes"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/reoring/anymatch/i18n"
	eng "github.com/reoring/anymatch/internal/engine"
	"github.com/reoring/anymatch/source/gojson"
	yamlsrc "github.com/reoring/anymatch/source/yaml"
)

// Validator checks values against a root schema. It holds no mutable state,
// so one Validator may be shared by concurrent callers.
type Validator struct {
	schema any
	opt    ValidatorOpt
	log    zerolog.Logger
}

// NewValidator wraps a root schema: any Schema or a plain literal. When
// several options are passed the last one wins.
func NewValidator(schema any, opts ...ValidatorOpt) *Validator {
	var opt ValidatorOpt
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	log := zerolog.Nop()
	if opt.Logger != nil {
		log = *opt.Logger
	}
	return &Validator{schema: schema, opt: opt, log: log}
}

// Schema returns the root schema.
func (v *Validator) Schema() any { return v.schema }

// Match reports whether x conforms to the schema, ignoring Debug.
func (v *Validator) Match(x any) bool { return Equal(v.schema, x) }

// Validate reports whether x conforms to the schema. A mismatch returns
// (false, nil), or (false, Issues) when Debug is enabled.
func (v *Validator) Validate(x any) (bool, error) {
	if Equal(v.schema, x) {
		return true, nil
	}
	if !v.opt.Debug {
		return false, nil
	}
	iss := Explain(v.schema, x)
	last := iss[len(iss)-1]
	v.log.Debug().
		Str("path", last.Path).
		Str("code", last.Code).
		Str("schema", Repr(v.schema)).
		Msg("schema mismatch")
	return false, iss
}

// ValidateText parses JSON text and validates the result.
func (v *Validator) ValidateText(text string) (bool, error) {
	return v.ValidateReader(bytes.NewReader([]byte(text)))
}

// ValidateBytes parses JSON bytes and validates the result.
func (v *Validator) ValidateBytes(data []byte) (bool, error) {
	return v.ValidateReader(bytes.NewReader(data))
}

// ValidateReader parses one JSON document from r and validates it. Decoding
// failures are returned as Issues (parse_error, duplicate_key, truncated).
func (v *Validator) ValidateReader(r io.Reader) (bool, error) {
	x, err := v.decodeJSON(r)
	if err != nil {
		v.log.Debug().Err(err).Msg("decode failed")
		return false, err
	}
	return v.Validate(x)
}

// ValidateYAML parses the first YAML document in data and validates it.
// Duplicate keys follow Strictness.OnDuplicateKey and MaxDepth limits nesting,
// as for JSON text. Aliases are expanded; cyclic or excessive aliasing is a
// parse_error.
func (v *Validator) ValidateYAML(data []byte) (bool, error) {
	if v.opt.MaxBytes > 0 && int64(len(data)) > v.opt.MaxBytes {
		return false, singleIssue(CodeTruncated, "/", "max bytes exceeded")
	}
	opts := yamlsrc.Options{
		AllowDuplicateKeys: v.opt.Strictness.OnDuplicateKey == Ignore,
		MaxDepth:           v.opt.MaxDepth,
	}
	x, err := yamlsrc.Decode(data, opts)
	var dup *yamlsrc.DuplicateKeyError
	if errors.As(err, &dup) && v.opt.Strictness.OnDuplicateKey == Warn {
		// retry keeping the last occurrence, like JSON under Warn
		v.log.Warn().Str("path", dup.Path).Msg("duplicate key")
		opts.AllowDuplicateKeys = true
		x, err = yamlsrc.Decode(data, opts)
	}
	if err != nil {
		v.log.Debug().Err(err).Msg("decode failed")
		return false, yamlIssues(err)
	}
	return v.Validate(x)
}

func yamlIssues(err error) Issues {
	var dup *yamlsrc.DuplicateKeyError
	if errors.As(err, &dup) {
		return AppendIssues(nil, Issue{Path: dup.Path, Code: CodeDuplicateKey, Message: i18n.T(CodeDuplicateKey, nil), Hint: err.Error(), Cause: err})
	}
	var deep *yamlsrc.DepthError
	if errors.As(err, &deep) {
		return AppendIssues(nil, Issue{Path: deep.Path, Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: "max depth exceeded", Cause: err})
	}
	return AppendIssues(nil, Issue{Path: "/", Code: CodeParseError, Message: i18n.T(CodeParseError, nil), Hint: err.Error(), Cause: err})
}

func (v *Validator) decodeJSON(r io.Reader) (any, error) {
	if v.opt.MaxBytes > 0 {
		data, err := io.ReadAll(io.LimitReader(r, v.opt.MaxBytes+1))
		if err != nil {
			return nil, singleIssue(CodeParseError, "/", err.Error())
		}
		if int64(len(data)) > v.opt.MaxBytes {
			return nil, singleIssue(CodeTruncated, "/", "max bytes exceeded")
		}
		r = bytes.NewReader(data)
	}
	src := eng.WrapWithEnforcement(gojson.NewReader(r), eng.EnforceOptions{
		OnDuplicate: toEngineDup(v.opt.Strictness.OnDuplicateKey),
		MaxDepth:    v.opt.MaxDepth,
		IssueSink: func(si eng.SimpleIssue) {
			if si.Code == CodeDuplicateKey && v.opt.Strictness.OnDuplicateKey == Warn {
				v.log.Warn().Str("path", si.Path).Msg(si.Message)
			}
		},
	})
	conv := eng.JSONNumber
	if v.opt.NumberMode == NumberFloat64 {
		conv = eng.Float64
	}
	x, err := eng.DecodeValue(src, conv)
	if err != nil {
		return nil, toIssues(err)
	}
	return x, nil
}

func toEngineDup(s Severity) eng.DuplicateStrictness {
	switch s {
	case Error:
		return eng.DupError
	case Warn:
		return eng.DupWarn
	default:
		return eng.DupIgnore
	}
}

func toIssues(err error) Issues {
	if err == nil {
		return nil
	}
	if ii, ok := AsIssues(err); ok {
		return ii
	}
	var ie eng.IssueError
	if errors.As(err, &ie) {
		return AppendIssues(nil, Issue{Code: ie.Code, Path: ie.Path, Message: i18n.T(ie.Code, nil), Hint: ie.Message, Cause: err})
	}
	return AppendIssues(nil, Issue{Code: CodeParseError, Path: "/", Message: i18n.T(CodeParseError, nil), Hint: err.Error(), Cause: err})
}

func singleIssue(code, path, hint string) Issues {
	return AppendIssues(nil, Issue{Code: code, Path: path, Message: i18n.T(code, nil), Hint: hint})
}
