package engine

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

// Token represents a streaming token with approximate input offset.
type Token struct {
	Kind   Kind
	String string
	Number string
	Bool   bool
	Offset int64
}

// TokenSource is a minimal interface required by the engine.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// ErrTrailingData is returned when a value is followed by more tokens.
var ErrTrailingData = errors.New("trailing data after top-level value")

// NumberConv converts the textual form of a number token into a value.
type NumberConv func(string) (any, error)

// JSONNumber keeps numbers as json.Number (exact).
func JSONNumber(s string) (any, error) { return json.Number(s), nil }

// Float64 decodes numbers as float64.
func Float64(s string) (any, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, err
	}
	return f, nil
}

// DecodeValue builds a JSON-shaped value (nil, bool, string, number, []any,
// map[string]any) from the token source and requires the source to be
// exhausted afterwards. A nil conv defaults to JSONNumber.
func DecodeValue(src TokenSource, conv NumberConv) (any, error) {
	if conv == nil {
		conv = JSONNumber
	}
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	v, err := decodeValue(src, tok, conv)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, err
		}
		return nil, ErrTrailingData
	}
	return v, nil
}

func decodeValue(src TokenSource, tok Token, conv NumberConv) (any, error) {
	switch tok.Kind {
	case KindBeginObject:
		return decodeObject(src, conv)
	case KindBeginArray:
		return decodeArray(src, conv)
	case KindString:
		return tok.String, nil
	case KindNumber:
		return conv(tok.Number)
	case KindBool:
		return tok.Bool, nil
	case KindNull:
		return nil, nil
	default:
		return nil, io.ErrUnexpectedEOF
	}
}

func decodeObject(src TokenSource, conv NumberConv) (any, error) {
	m := make(map[string]any)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndObject {
			return m, nil
		}
		if tok.Kind != KindKey {
			return nil, io.ErrUnexpectedEOF
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		v, err := decodeValue(src, vt, conv)
		if err != nil {
			return nil, err
		}
		// last occurrence wins; duplicate policy is applied by the enforcement wrapper
		m[tok.String] = v
	}
}

func decodeArray(src TokenSource, conv NumberConv) (any, error) {
	arr := []any{}
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if tok.Kind == KindEndArray {
			return arr, nil
		}
		v, err := decodeValue(src, tok, conv)
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
}

func unexpectedEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
