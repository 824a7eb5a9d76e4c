package resttest

import (
	"net/http"
	"net/url"
	"strings"
	"testing"
)

// RequestLog represents a logged request for assertions.
type RequestLog struct {
	// Method is the HTTP method (GET, POST, etc.)
	Method string
	// Path is the request URL path
	Path string
	// Query holds the decoded query parameters
	Query url.Values
	// Header holds the request headers
	Header http.Header
	// Form holds the decoded form body of POST requests
	Form url.Values
}

// AssertHeader asserts that the request header key has the expected value.
func (r *RequestLog) AssertHeader(t testing.TB, key, expected string) {
	t.Helper()

	if got := r.Header.Get(key); got != expected {
		t.Errorf("header %q: expected %q, got %q", key, expected, got)
	}
}

// AssertHeaderContains asserts that the request header key contains substr.
func (r *RequestLog) AssertHeaderContains(t testing.TB, key, substr string) {
	t.Helper()

	if got := r.Header.Get(key); !strings.Contains(got, substr) {
		t.Errorf("header %q: expected to contain %q, got %q", key, substr, got)
	}
}

// AssertQueryParam asserts that the query parameter key has the expected
// first value.
func (r *RequestLog) AssertQueryParam(t testing.TB, key, expected string) {
	t.Helper()

	if !r.Query.Has(key) {
		t.Errorf("query parameter %q not found", key)
		return
	}
	if got := r.Query.Get(key); got != expected {
		t.Errorf("query parameter %q: expected %q, got %q", key, expected, got)
	}
}

// AssertFormValue asserts that the form field key has the expected value.
func (r *RequestLog) AssertFormValue(t testing.TB, key, expected string) {
	t.Helper()

	if got := r.Form.Get(key); got != expected {
		t.Errorf("form value %q: expected %q, got %q", key, expected, got)
	}
}
