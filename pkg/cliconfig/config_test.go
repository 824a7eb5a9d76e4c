package cliconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLIConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  CLIConfig
		wantErr string
	}{
		{
			name:    "valid defaults",
			config:  *NewDefault(),
			wantErr: "",
		},
		{
			name: "valid custom",
			config: CLIConfig{
				Scheme:  "http",
				Host:    "splunk.example.com",
				Port:    8000,
				Timeout: 0,
				Output:  OutputYAML,
			},
			wantErr: "",
		},
		{
			name:    "port too high",
			config:  CLIConfig{Scheme: "https", Host: "h", Port: 70000, Output: OutputJSON},
			wantErr: "port 70000 is out of range",
		},
		{
			name:    "port zero",
			config:  CLIConfig{Scheme: "https", Host: "h", Port: 0, Output: OutputJSON},
			wantErr: "port 0 is out of range",
		},
		{
			name:    "unknown scheme",
			config:  CLIConfig{Scheme: "ftp", Host: "h", Port: 1, Output: OutputJSON},
			wantErr: `scheme "ftp" must be http or https`,
		},
		{
			name:    "missing host",
			config:  CLIConfig{Scheme: "https", Port: 1, Output: OutputJSON},
			wantErr: "host is required",
		},
		{
			name:    "negative timeout",
			config:  CLIConfig{Scheme: "https", Host: "h", Port: 1, Timeout: -1, Output: OutputJSON},
			wantErr: "timeout -1 is out of range",
		},
		{
			name:    "unknown output",
			config:  CLIConfig{Scheme: "https", Host: "h", Port: 1, Output: "xml"},
			wantErr: `output "xml" must be json, yaml or text`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestBaseURL(t *testing.T) {
	cfg := NewDefault()
	assert.Equal(t, "https://localhost:8089", cfg.BaseURL())

	cfg.Host = "::1"
	cfg.Scheme = "http"
	assert.Equal(t, "http://[::1]:8089", cfg.BaseURL())
}

func TestMergeConfig(t *testing.T) {
	t.Run("merges non-zero values", func(t *testing.T) {
		target := NewDefault()
		source := &CLIConfig{Host: "splunk", Port: 9000}

		MergeConfig(target, source, SourceLocal)

		assert.Equal(t, "splunk", target.Host)
		assert.Equal(t, 9000, target.Port)
		assert.Equal(t, SourceLocal, target.Sources["port"])
		assert.Equal(t, SourceDefault, target.Sources["scheme"])
	})

	t.Run("does not overwrite with zero values", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, &CLIConfig{}, SourceLocal)
		assert.Equal(t, DefaultPort, target.Port)
		assert.Equal(t, DefaultHost, target.Host)
	})

	t.Run("boolean false with SetFields", func(t *testing.T) {
		target := NewDefault()
		target.Permissive = true

		MergeConfig(target, &CLIConfig{SetFields: map[string]bool{"permissive": true}}, SourceLocal)
		assert.False(t, target.Permissive)
	})

	t.Run("boolean false without SetFields", func(t *testing.T) {
		target := NewDefault()
		target.Permissive = true

		MergeConfig(target, &CLIConfig{}, SourceLocal)
		assert.True(t, target.Permissive)
	})

	t.Run("nil source is no-op", func(t *testing.T) {
		target := NewDefault()
		MergeConfig(target, nil, SourceLocal)
		assert.Equal(t, NewDefault().Port, target.Port)
	})
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "valid.yaml")
		require.NoError(t, os.WriteFile(path, []byte("host: splunk.local\nport: 8090\npermissive: false\noutput: yaml\n"), 0o600))

		cfg, err := LoadConfigFile(path)
		require.NoError(t, err)
		assert.Equal(t, "splunk.local", cfg.Host)
		assert.Equal(t, 8090, cfg.Port)
		assert.Equal(t, OutputYAML, cfg.Output)
		assert.True(t, cfg.SetFields["permissive"])
		assert.False(t, cfg.SetFields["basicAuth"])
	})

	t.Run("syntax error has line", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("host: a\nport: [\n"), 0o600))

		_, err := LoadConfigFile(path)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, path, cfgErr.Path)
		assert.Positive(t, cfgErr.Line)
	})

	t.Run("type error", func(t *testing.T) {
		path := filepath.Join(dir, "type.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: abc\n"), 0o600))

		_, err := LoadConfigFile(path)
		var cfgErr *ConfigError
		require.ErrorAs(t, err, &cfgErr)
		assert.Equal(t, 1, cfgErr.Line)
		assert.Contains(t, err.Error(), "line 1")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfigFile(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestLoadAll_Precedence(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, GlobalConfigDir), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(home, GlobalConfigDir, "config.yaml"),
		[]byte("host: global-host\nport: 8001\nowner: admin\n"), 0o600))

	work := t.TempDir()
	t.Chdir(work)
	require.NoError(t, os.WriteFile(filepath.Join(work, ".restdatarc.yaml"),
		[]byte("port: 8002\napp: search\n"), 0o600))

	t.Setenv(EnvApp, "launcher")

	cfg, err := LoadAll()
	require.NoError(t, err)

	assert.Equal(t, "global-host", cfg.Host)
	assert.Equal(t, SourceGlobal, cfg.Sources["host"])
	assert.Equal(t, 8002, cfg.Port)
	assert.Equal(t, SourceLocal, cfg.Sources["port"])
	assert.Equal(t, "launcher", cfg.App)
	assert.Equal(t, SourceEnv, cfg.Sources["app"])
	assert.Equal(t, "admin", cfg.Owner)
	assert.Equal(t, DefaultScheme, cfg.Scheme)
}

func TestLoadEnvConfig(t *testing.T) {
	t.Setenv(EnvPort, "9999")
	t.Setenv(EnvTimeout, "not-a-number")
	t.Setenv(EnvPermissive, "true")
	t.Setenv(EnvBasicAuth, "maybe")

	cfg := NewDefault()
	LoadEnvConfig(cfg)

	assert.Equal(t, 9999, cfg.Port)
	assert.Equal(t, SourceEnv, cfg.Sources["port"])
	assert.Equal(t, DefaultTimeout, cfg.Timeout)
	assert.True(t, cfg.Permissive)
	assert.False(t, cfg.BasicAuth)
}
