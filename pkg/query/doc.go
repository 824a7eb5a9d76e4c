// Package query selects, filters and slices decoded response values.
//
// Select evaluates JSONPath expressions, Filter keeps values for which an
// expr-lang expression is true, and Slice keeps record fields whose names
// match glob patterns.
package query
