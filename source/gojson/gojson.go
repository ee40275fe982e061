// Package gojson tokenizes JSON text with goccy/go-json for the decoding
// engine.
package gojson

import (
	"bytes"
	"errors"
	"io"
	"strconv"

	j "github.com/goccy/go-json"

	eng "github.com/reoring/anymatch/internal/engine"
)

type frame struct {
	object    bool
	expectKey bool
}

type source struct {
	dec   *j.Decoder
	stack []frame
}

// NewReader wraps an io.Reader into an engine.TokenSource for JSON using go-json.
// Numbers keep their textual form.
func NewReader(r io.Reader) eng.TokenSource {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	return &source{dec: dec}
}

// NewBytes wraps a byte slice into an engine.TokenSource for JSON using go-json.
func NewBytes(b []byte) eng.TokenSource { return NewReader(bytes.NewReader(b)) }

func (s *source) NextToken() (eng.Token, error) {
	tok, err := s.dec.Token()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return eng.Token{}, io.EOF
		}
		return eng.Token{}, err
	}
	if d, ok := tok.(j.Delim); ok {
		switch d {
		case '{':
			s.stack = append(s.stack, frame{object: true, expectKey: true})
			return eng.Token{Kind: eng.KindBeginObject, Offset: -1}, nil
		case '[':
			s.stack = append(s.stack, frame{})
			return eng.Token{Kind: eng.KindBeginArray, Offset: -1}, nil
		case '}':
			s.pop()
			return eng.Token{Kind: eng.KindEndObject, Offset: -1}, nil
		default: // ']'
			s.pop()
			return eng.Token{Kind: eng.KindEndArray, Offset: -1}, nil
		}
	}
	if str, ok := tok.(string); ok && s.inKeyPosition() {
		s.stack[len(s.stack)-1].expectKey = false
		return eng.Token{Kind: eng.KindKey, String: str, Offset: -1}, nil
	}
	s.valueDone()
	switch v := tok.(type) {
	case string:
		return eng.Token{Kind: eng.KindString, String: v, Offset: -1}, nil
	case bool:
		return eng.Token{Kind: eng.KindBool, Bool: v, Offset: -1}, nil
	case j.Number:
		return eng.Token{Kind: eng.KindNumber, Number: string(v), Offset: -1}, nil
	case float64:
		return eng.Token{Kind: eng.KindNumber, Number: strconv.FormatFloat(v, 'g', -1, 64), Offset: -1}, nil
	default:
		return eng.Token{Kind: eng.KindNull, Offset: -1}, nil
	}
}

// Location is unknown for go-json decoders.
func (s *source) Location() int64 { return -1 }

func (s *source) inKeyPosition() bool {
	n := len(s.stack)
	return n > 0 && s.stack[n-1].expectKey
}

func (s *source) pop() {
	if n := len(s.stack); n > 0 {
		s.stack = s.stack[:n-1]
	}
	s.valueDone()
}

// valueDone records that a complete value was read; inside an object the next
// string is a key again.
func (s *source) valueDone() {
	if n := len(s.stack); n > 0 && s.stack[n-1].object {
		s.stack[n-1].expectKey = true
	}
}
