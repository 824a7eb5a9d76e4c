package cliconfig

import (
	"os"
	"strconv"
)

// Environment variable names
const (
	EnvScheme     = "RESTDATA_SCHEME"
	EnvHost       = "RESTDATA_HOST"
	EnvPort       = "RESTDATA_PORT"
	EnvTimeout    = "RESTDATA_TIMEOUT"
	EnvUsername   = "RESTDATA_USERNAME"
	EnvPassword   = "RESTDATA_PASSWORD"
	EnvToken      = "RESTDATA_TOKEN"
	EnvBasicAuth  = "RESTDATA_BASIC_AUTH"
	EnvInsecure   = "RESTDATA_INSECURE"
	EnvOwner      = "RESTDATA_OWNER"
	EnvApp        = "RESTDATA_APP"
	EnvOutput     = "RESTDATA_OUTPUT"
	EnvPermissive = "RESTDATA_PERMISSIVE"
	EnvLogLevel   = "RESTDATA_LOG_LEVEL"
	EnvLogFormat  = "RESTDATA_LOG_FORMAT"
)

// LoadEnvConfig loads configuration from environment variables.
// It only sets values that are present in the environment; unparseable
// numbers and booleans are ignored.
func LoadEnvConfig(cfg *CLIConfig) {
	if cfg.Sources == nil {
		cfg.Sources = make(map[string]string)
	}

	strs := []struct {
		env string
		key string
		dst *string
	}{
		{EnvScheme, "scheme", &cfg.Scheme},
		{EnvHost, "host", &cfg.Host},
		{EnvUsername, "username", &cfg.Username},
		{EnvPassword, "password", &cfg.Password},
		{EnvToken, "token", &cfg.Token},
		{EnvOwner, "owner", &cfg.Owner},
		{EnvApp, "app", &cfg.App},
		{EnvOutput, "output", &cfg.Output},
		{EnvLogLevel, "logLevel", &cfg.LogLevel},
		{EnvLogFormat, "logFormat", &cfg.LogFormat},
	}
	for _, s := range strs {
		if v := os.Getenv(s.env); v != "" {
			*s.dst = v
			cfg.Sources[s.key] = SourceEnv
		}
	}

	ints := []struct {
		env string
		key string
		dst *int
	}{
		{EnvPort, "port", &cfg.Port},
		{EnvTimeout, "timeout", &cfg.Timeout},
	}
	for _, i := range ints {
		if v := os.Getenv(i.env); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*i.dst = n
				cfg.Sources[i.key] = SourceEnv
			}
		}
	}

	bools := []struct {
		env string
		key string
		dst *bool
	}{
		{EnvBasicAuth, "basicAuth", &cfg.BasicAuth},
		{EnvInsecure, "insecure", &cfg.Insecure},
		{EnvPermissive, "permissive", &cfg.Permissive},
	}
	for _, b := range bools {
		if v := os.Getenv(b.env); v != "" {
			if parsed, err := strconv.ParseBool(v); err == nil {
				*b.dst = parsed
				cfg.Sources[b.key] = SourceEnv
			}
		}
	}
}
