// Package output provides common output formatting utilities.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/restdata/restdata/pkg/restdata"
)

// JSON writes indented JSON to w.
func JSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// YAML writes v as a YAML document to w.
func YAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// Text writes v as indented "key: value" lines. Sequence entries are
// prefixed with "- "; absent values print as empty.
func Text(w io.Writer, v restdata.Value) error {
	tw := &textWriter{w: w}
	tw.value(v, 0)
	return tw.err
}

type textWriter struct {
	w   io.Writer
	err error
}

func (t *textWriter) line(depth int, format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, strings.Repeat("  ", depth)+format+"\n", args...)
}

func (t *textWriter) value(v restdata.Value, depth int) {
	switch v.Kind() {
	case restdata.KindScalar:
		t.line(depth, "%s", v.String())
	case restdata.KindMapping:
		v.Record().Range(func(k string, item restdata.Value) bool {
			switch item.Kind() {
			case restdata.KindScalar:
				t.line(depth, "%s: %s", k, item.String())
			case restdata.KindAbsent:
				t.line(depth, "%s:", k)
			default:
				t.line(depth, "%s:", k)
				t.value(item, depth+1)
			}
			return t.err == nil
		})
	case restdata.KindSequence:
		for _, item := range v.Items() {
			switch item.Kind() {
			case restdata.KindScalar:
				t.line(depth, "- %s", item.String())
			case restdata.KindAbsent:
				t.line(depth, "-")
			default:
				t.line(depth, "-")
				t.value(item, depth+1)
			}
		}
	}
}

// Warn prints a warning message to w.
func Warn(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, "Warning: "+format+"\n", args...)
}
