// Package logging builds the slog loggers used by restdata components.
//
// # Usage
//
//	logger := logging.New(logging.Config{
//	    Level:  logging.ParseLevel("debug"),
//	    Format: logging.FormatJSON,
//	})
//	client := restclient.New(baseURL, restclient.WithLogger(logger))
//
// Components accept a *slog.Logger through an option and fall back to Nop()
// when none is given, so library callers get no output unless they ask for
// it.
//
// # Output Formats
//
//   - text: slog's key=value handler, the CLI default
//   - json: one JSON object per line
package logging
