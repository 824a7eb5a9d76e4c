// Package parse provides string parsing utilities for CLI commands.
package parse

import (
	"fmt"
	"net/url"
)

// KeyValue parses a "key:value" or "key=value" string.
// If delimiters are provided, uses the first one found; otherwise defaults to ':'.
// Returns the key, value, and a boolean indicating success.
func KeyValue(s string, delimiters ...rune) (key, value string, ok bool) {
	if len(delimiters) == 0 {
		delimiters = []rune{':'}
	}

	for i, c := range s {
		for _, d := range delimiters {
			if c == d {
				return s[:i], s[i+1:], true
			}
		}
	}
	return "", "", false
}

// Query parses repeated "key=value" arguments into query parameters.
// Repeated keys keep every value in order.
func Query(pairs []string) (url.Values, error) {
	q := url.Values{}
	for _, p := range pairs {
		key, value, ok := KeyValue(p, '=')
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid query parameter %q (expected key=value)", p)
		}
		q.Add(key, value)
	}
	return q, nil
}
