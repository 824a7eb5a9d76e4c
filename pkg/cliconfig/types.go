// Package cliconfig provides configuration types and loading for the
// restdata CLI.
package cliconfig

// CLIConfig is the effective configuration of the restdata CLI.
// Values come from several sources with the following precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables
// 3. Local config file (.restdatarc.yaml in the current directory)
// 4. Global config file (~/.config/restdata/config.yaml)
// 5. Default values (lowest priority)
type CLIConfig struct {
	// Connection settings
	Scheme  string `yaml:"scheme" json:"scheme"`
	Host    string `yaml:"host" json:"host"`
	Port    int    `yaml:"port" json:"port"`
	Timeout int    `yaml:"timeout" json:"timeout"` // seconds

	// Insecure skips TLS certificate verification; management ports
	// commonly serve self-signed certificates.
	Insecure bool `yaml:"insecure" json:"insecure"`

	// Credentials. Token takes precedence over username/password.
	Username  string `yaml:"username,omitempty" json:"username,omitempty"`
	Password  string `yaml:"password,omitempty" json:"-"`
	Token     string `yaml:"token,omitempty" json:"-"`
	BasicAuth bool   `yaml:"basicAuth" json:"basicAuth"`

	// Namespace used for relative endpoint paths
	Owner string `yaml:"owner,omitempty" json:"owner,omitempty"`
	App   string `yaml:"app,omitempty" json:"app,omitempty"`

	// Decoding and output
	Output     string `yaml:"output" json:"output"`
	Permissive bool   `yaml:"permissive" json:"permissive"`

	// Logging
	LogLevel  string `yaml:"logLevel" json:"logLevel"`
	LogFormat string `yaml:"logFormat" json:"logFormat"`

	// Sources tracks where each value came from, keyed by YAML name.
	Sources map[string]string `yaml:"-" json:"-"`

	// SetFields records which YAML keys were present in a loaded file, so
	// an explicit false can override a true.
	SetFields map[string]bool `yaml:"-" json:"-"`
}

// ConfigSource identifies where a config value originated.
const (
	SourceDefault = "default"
	SourceEnv     = "env"
	SourceGlobal  = "global"
	SourceLocal   = "local"
	SourceFlag    = "flag"
)

// Output formats.
const (
	OutputJSON = "json"
	OutputYAML = "yaml"
	OutputText = "text"
)
