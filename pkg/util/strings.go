package util

import (
	"strconv"
	"unicode/utf8"
)

// MaxLogBodySize is the default maximum body size for logging (2KB).
const MaxLogBodySize = 2 * 1024

// TruncateBody shortens data to at most maxSize bytes for logging, cutting on
// a rune boundary and noting how many bytes were dropped. If maxSize <= 0,
// MaxLogBodySize is used.
func TruncateBody(data string, maxSize int) string {
	if maxSize <= 0 {
		maxSize = MaxLogBodySize
	}
	if len(data) <= maxSize {
		return data
	}
	cut := maxSize
	for cut > 0 && !utf8.RuneStart(data[cut]) {
		cut--
	}
	return data[:cut] + "...(" + strconv.Itoa(len(data)-cut) + " more bytes)"
}
