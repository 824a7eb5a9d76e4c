package cliconfig

import (
	"errors"
	"fmt"
)

// Validate checks the configuration for out-of-range or unknown values.
func (c *CLIConfig) Validate() error {
	var errs []error

	switch c.Scheme {
	case "http", "https":
	default:
		errs = append(errs, fmt.Errorf("scheme %q must be http or https", c.Scheme))
	}
	if c.Host == "" {
		errs = append(errs, errors.New("host is required"))
	}
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("port %d is out of range (1-65535)", c.Port))
	}
	if c.Timeout < 0 || c.Timeout > 3600 {
		errs = append(errs, fmt.Errorf("timeout %d is out of range (0-3600)", c.Timeout))
	}
	switch c.Output {
	case OutputJSON, OutputYAML, OutputText:
	default:
		errs = append(errs, fmt.Errorf("output %q must be json, yaml or text", c.Output))
	}

	return errors.Join(errs...)
}
