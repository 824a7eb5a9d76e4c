package query

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/restdata/restdata/pkg/restdata"
)

// Slice returns a copy of r holding only the fields whose names match at
// least one glob pattern, in r's order. With no patterns the copy is
// complete.
func Slice(r *restdata.Record, patterns ...string) (*restdata.Record, error) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid field pattern %q: %w", p, doublestar.ErrBadPattern)
		}
	}
	if len(patterns) == 0 {
		return restdata.RecordFrom(r), nil
	}

	out := restdata.NewRecord()
	r.Range(func(key string, v restdata.Value) bool {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, key); ok {
				out.Set(key, v)
				break
			}
		}
		return true
	})
	return out, nil
}
