// Package cli provides the command-line interface for restdata.
//
// The cli package implements the restdata commands:
//   - decode: Decode XML files, globs or standard input
//   - get: Fetch an endpoint from a management port and decode the response
//   - entities: List the entries of a collection endpoint as records
//   - info: Show server info and settings
//   - config: Display effective configuration
//   - version: Show restdata version
//
// Results of decode, get and entities can be narrowed with --filter
// (an expression evaluated against each result), --fields (glob patterns
// over record fields) and --select (a JSONPath expression), and printed as
// JSON, YAML or text with --output.
package cli
