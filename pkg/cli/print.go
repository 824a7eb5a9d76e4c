package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/restdata/restdata/pkg/cli/internal/output"
	"github.com/restdata/restdata/pkg/cliconfig"
	"github.com/restdata/restdata/pkg/query"
	"github.com/restdata/restdata/pkg/restdata"
)

// shapeFlags are the result-shaping flags shared by decode, get and
// entities.
type shapeFlags struct {
	filter string
	fields []string
	path   string
}

func (s *shapeFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.filter, "filter", "", `Keep only results for which the expression is true (e.g. 'disabled == "0"')`)
	cmd.Flags().StringSliceVar(&s.fields, "fields", nil, "Keep only fields matching these glob patterns")
	cmd.Flags().StringVar(&s.path, "select", "", "Print the results of a JSONPath expression instead of the values")
}

// shape filters and slices values, in that order.
func (s *shapeFlags) shape(values []restdata.Value) ([]restdata.Value, error) {
	values, err := query.NewMatcher(query.WithLogger(logger)).Filter(values, s.filter)
	if err != nil {
		return nil, err
	}
	if len(s.fields) == 0 {
		return values, nil
	}
	out := make([]restdata.Value, len(values))
	for i, v := range values {
		if out[i], err = sliceValue(v, s.fields); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// sliceValue keeps the matching fields of a mapping. A single-entry record
// wrapping a mapping, as produced for a selected element, is sliced one level
// down so that the element name survives.
func sliceValue(v restdata.Value, patterns []string) (restdata.Value, error) {
	r := v.Record()
	if r == nil {
		return v, nil
	}
	if r.Len() == 1 {
		key := r.Keys()[0]
		inner, _ := r.Lookup(key)
		if inner.Kind() == restdata.KindMapping {
			sliced, err := query.Slice(inner.Record(), patterns...)
			if err != nil {
				return restdata.Value{}, err
			}
			return restdata.Mapping(restdata.FromKV(key, restdata.Mapping(sliced))), nil
		}
	}
	sliced, err := query.Slice(r, patterns...)
	if err != nil {
		return restdata.Value{}, err
	}
	return restdata.Mapping(sliced), nil
}

// emit prints v, or the results of the --select expression evaluated
// against it.
func (s *shapeFlags) emit(cmd *cobra.Command, v restdata.Value) error {
	if s.path == "" {
		return printValue(cmd, v)
	}
	results, err := query.Select(v, s.path)
	if err != nil {
		return err
	}
	return printResults(cmd, results)
}

// collapse applies the decoding count rule: nothing is absent, one value is
// itself, several values form a sequence.
func collapse(values []restdata.Value) restdata.Value {
	switch len(values) {
	case 0:
		return restdata.Absent()
	case 1:
		return values[0]
	default:
		return restdata.Sequence(values...)
	}
}

// printValue writes v to stdout in the configured output format.
func printValue(cmd *cobra.Command, v restdata.Value) error {
	w := cmd.OutOrStdout()
	switch cfg.Output {
	case cliconfig.OutputYAML:
		return output.YAML(w, v)
	case cliconfig.OutputText:
		return output.Text(w, v)
	default:
		return output.JSON(w, v)
	}
}

// printResults writes JSONPath results. Text output prints one result per
// line, with non-string results in compact JSON.
func printResults(cmd *cobra.Command, results []any) error {
	w := cmd.OutOrStdout()
	switch cfg.Output {
	case cliconfig.OutputYAML:
		return output.YAML(w, results)
	case cliconfig.OutputText:
		for _, r := range results {
			if s, ok := r.(string); ok {
				fmt.Fprintln(w, s)
				continue
			}
			b, err := json.Marshal(r)
			if err != nil {
				return err
			}
			fmt.Fprintln(w, string(b))
		}
		return nil
	default:
		if results == nil {
			results = []any{}
		}
		return output.JSON(w, results)
	}
}
