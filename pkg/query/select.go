package query

import (
	"fmt"

	"github.com/ohler55/ojg/jp"
	"github.com/restdata/restdata/pkg/restdata"
)

// Select evaluates a JSONPath expression against v and returns every match.
// Mapping key order is not preserved in the results.
func Select(v restdata.Value, path string) ([]any, error) {
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %q: %w", path, err)
	}
	return x.Get(v.Interface()), nil
}
