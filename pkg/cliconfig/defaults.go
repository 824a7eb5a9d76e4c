package cliconfig

import (
	"net"
	"net/url"
	"strconv"
)

// DefaultScheme is the default management API scheme.
const DefaultScheme = "https"

// DefaultHost is the default management API host.
const DefaultHost = "localhost"

// DefaultPort is the default management API port.
const DefaultPort = 8089

// DefaultTimeout is the default request timeout in seconds.
const DefaultTimeout = 30

// DefaultOutput is the default output format.
const DefaultOutput = OutputJSON

// DefaultLogLevel is the default log level.
const DefaultLogLevel = "warn"

// DefaultLogFormat is the default log format.
const DefaultLogFormat = "text"

// NewDefault creates a new CLIConfig with default values.
func NewDefault() *CLIConfig {
	cfg := &CLIConfig{
		Scheme:    DefaultScheme,
		Host:      DefaultHost,
		Port:      DefaultPort,
		Timeout:   DefaultTimeout,
		Output:    DefaultOutput,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Sources:   make(map[string]string),
	}
	for _, key := range []string{"scheme", "host", "port", "timeout", "output", "logLevel", "logFormat"} {
		cfg.Sources[key] = SourceDefault
	}
	return cfg
}

// BaseURL returns scheme://host:port.
func (c *CLIConfig) BaseURL() string {
	u := url.URL{
		Scheme: c.Scheme,
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
	}
	return u.String()
}
