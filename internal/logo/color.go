// Package logo renders company logos for the terminal and derives the
// fallback badge shown when an image cannot be loaded.
package logo

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Hash is the 32-bit string hash behind the fallback colour. It walks the
// UTF-16 code units of name and wraps like a JavaScript bitwise expression,
// so colours match those produced by the web front end.
func Hash(name string) int32 {
	var h int32
	for _, c := range utf16.Encode([]rune(name)) {
		h = int32(c) + ((h << 5) - h)
	}
	return h
}

// Color maps name to a stable "#rrggbb" colour. The low byte of the hash is red.
func Color(name string) string {
	h := Hash(name)
	var sb strings.Builder
	sb.WriteByte('#')
	for i := 0; i < 3; i++ {
		fmt.Fprintf(&sb, "%02x", (h>>(i*8))&0xff)
	}
	return sb.String()
}

// Initial returns the uppercased first character of name, or "?" when the
// name is empty.
func Initial(name string) string {
	r, size := utf8.DecodeRuneInString(name)
	if size == 0 {
		return "?"
	}
	return string(unicode.ToUpper(r))
}
