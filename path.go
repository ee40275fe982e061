package anymatch

import (
	"strconv"
	"strings"
)

// pointer builds JSON Pointer paths in a chain-safe way: each step returns a
// new value and never aliases the parent's parts.
type pointer struct {
	parts []string
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func (p pointer) field(name string) pointer {
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	return pointer{parts: append(append([]string(nil), p.parts...), pointerEscaper.Replace(name))}
}

func (p pointer) index(i int) pointer {
	return pointer{parts: append(append([]string(nil), p.parts...), strconv.Itoa(i))}
}

func (p pointer) String() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}
