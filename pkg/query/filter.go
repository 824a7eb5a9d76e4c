package query

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/restdata/restdata/pkg/logging"
	"github.com/restdata/restdata/pkg/restdata"
)

// Matcher evaluates boolean filter expressions against decoded values,
// caching compiled programs by expression. It is safe for concurrent use.
type Matcher struct {
	mu       sync.RWMutex
	programs map[string]*vm.Program
	logger   *slog.Logger
}

// MatcherOption configures a Matcher.
type MatcherOption func(*Matcher)

// WithLogger sets the logger that records values dropped because the
// expression could not be evaluated against them.
func WithLogger(logger *slog.Logger) MatcherOption {
	return func(m *Matcher) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatcher creates a matcher with an empty program cache.
func NewMatcher(opts ...MatcherOption) *Matcher {
	m := &Matcher{
		programs: make(map[string]*vm.Program),
		logger:   logging.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

var defaultMatcher = NewMatcher()

// Filter keeps the values for which expression is true. See Matcher.Filter.
func Filter(values []restdata.Value, expression string) ([]restdata.Value, error) {
	return defaultMatcher.Filter(values, expression)
}

// Filter keeps the values for which expression evaluates to true. A mapping
// exposes its entries as variables; any other value is exposed as "value".
// Top-level names that are not present evaluate to nil.
//
// Only compile errors are returned. A value the expression cannot be
// evaluated against, such as an entry without the nested field being
// compared, is dropped. Use optional chaining (content?.disabled) to test
// for such fields explicitly.
func (m *Matcher) Filter(values []restdata.Value, expression string) ([]restdata.Value, error) {
	if expression == "" {
		return values, nil
	}
	program, err := m.compile(expression)
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w", expression, err)
	}

	var kept []restdata.Value
	for _, v := range values {
		out, err := expr.Run(program, Env(v))
		if err != nil {
			m.logger.Debug("filter skipped value", "expression", expression, "error", err)
			continue
		}
		if ok, _ := out.(bool); ok {
			kept = append(kept, v)
		}
	}
	return kept, nil
}

// Env returns the variables an expression sees for v.
func Env(v restdata.Value) map[string]any {
	if v.Kind() == restdata.KindMapping {
		return v.Record().Map()
	}
	return map[string]any{"value": v.Interface()}
}

func (m *Matcher) compile(expression string) (*vm.Program, error) {
	m.mu.RLock()
	if program, ok := m.programs[expression]; ok {
		m.mu.RUnlock()
		return program, nil
	}
	m.mu.RUnlock()

	program, err := expr.Compile(expression, expr.AsBool(), expr.AllowUndefinedVariables())
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	if existing, ok := m.programs[expression]; ok {
		m.mu.Unlock()
		return existing, nil
	}
	m.programs[expression] = program
	m.mu.Unlock()

	return program, nil
}
