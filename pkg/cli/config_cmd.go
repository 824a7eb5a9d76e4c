package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/restdata/restdata/pkg/cli/internal/output"
	"github.com/restdata/restdata/pkg/cliconfig"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show effective configuration with source annotations",
	Example: `  restdata config
  restdata config -o json
  RESTDATA_PORT=9089 restdata config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)
}

// configView is the machine-readable form of the effective configuration.
// Secrets are reported only as set or unset.
type configView struct {
	Config      *cliconfig.CLIConfig `json:"config" yaml:"config"`
	PasswordSet bool                 `json:"passwordSet" yaml:"passwordSet"`
	TokenSet    bool                 `json:"tokenSet" yaml:"tokenSet"`
	Sources     map[string]string    `json:"sources" yaml:"sources"`
	Files       []string             `json:"files" yaml:"files"`
}

func runConfig(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	files := loadedFiles()

	switch cfg.Output {
	case cliconfig.OutputJSON, cliconfig.OutputYAML:
		redacted := *cfg
		redacted.Password = ""
		redacted.Token = ""
		view := configView{
			Config:      &redacted,
			PasswordSet: cfg.Password != "",
			TokenSet:    cfg.Token != "",
			Sources:     cfg.Sources,
			Files:       files,
		}
		if view.Files == nil {
			view.Files = []string{}
		}
		if cfg.Output == cliconfig.OutputYAML {
			return output.YAML(w, view)
		}
		return output.JSON(w, view)
	}

	fmt.Fprintln(w, "Effective Configuration:")
	fmt.Fprintln(w)
	printConfigValue(w, "scheme", cfg.Scheme)
	printConfigValue(w, "host", cfg.Host)
	printConfigValue(w, "port", cfg.Port)
	printConfigValue(w, "timeout", cfg.Timeout)
	printConfigValue(w, "insecure", cfg.Insecure)
	if cfg.Username != "" {
		printConfigValue(w, "username", cfg.Username)
	}
	if cfg.Password != "" {
		printConfigValue(w, "password", "********")
	}
	if cfg.Token != "" {
		printConfigValue(w, "token", "********")
	}
	printConfigValue(w, "basicAuth", cfg.BasicAuth)
	if cfg.Owner != "" {
		printConfigValue(w, "owner", cfg.Owner)
	}
	if cfg.App != "" {
		printConfigValue(w, "app", cfg.App)
	}
	printConfigValue(w, "output", cfg.Output)
	printConfigValue(w, "permissive", cfg.Permissive)
	printConfigValue(w, "logLevel", cfg.LogLevel)
	printConfigValue(w, "logFormat", cfg.LogFormat)

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Sources loaded:")
	if len(files) == 0 {
		fmt.Fprintln(w, "  (none)")
	}
	for _, f := range files {
		fmt.Fprintf(w, "  %s\n", f)
	}
	return nil
}

// loadedFiles lists the config files that contributed to the configuration.
func loadedFiles() []string {
	var files []string
	if path, err := cliconfig.FindGlobalConfig(); err == nil && path != "" {
		files = append(files, path+" (global)")
	}
	if path, err := cliconfig.FindLocalConfig(); err == nil && path != "" {
		files = append(files, path+" (local)")
	}
	return files
}

// printConfigValue prints a config value with its source annotation.
func printConfigValue(w io.Writer, name string, value interface{}) {
	source := cfg.Sources[name]
	if source == "" {
		source = cliconfig.SourceDefault
	}
	fmt.Fprintf(w, "  %-12s %v%s\n", name+":", value, formatSource(source))
}

// formatSource formats a source type for display.
func formatSource(source string) string {
	switch source {
	case cliconfig.SourceDefault:
		return "  (default)"
	case cliconfig.SourceEnv:
		return "  (env)"
	case cliconfig.SourceGlobal:
		return "  (global config)"
	case cliconfig.SourceLocal:
		return "  (local config)"
	case cliconfig.SourceFlag:
		return "  (flag)"
	default:
		return ""
	}
}
