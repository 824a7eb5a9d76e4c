package cli

import (
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/restdata/restdata/pkg/cli/internal/output"
	"github.com/restdata/restdata/pkg/cliconfig"
	"github.com/restdata/restdata/pkg/logging"
	"github.com/restdata/restdata/pkg/restclient"
	"github.com/restdata/restdata/pkg/restdata"
)

var (
	// flagConfig receives the persistent flag values; only flags the user
	// actually changed are applied on top of the loaded configuration.
	flagConfig cliconfig.CLIConfig

	// cfg is the effective configuration, resolved before any command runs.
	cfg = cliconfig.NewDefault()

	logger = logging.Nop()

	// Version is injected during build
	Version = "dev"
	// Commit is injected during build
	Commit = "none"
	// BuildDate is injected during build
	BuildDate = "unknown"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "restdata",
	Short: "Decode and query XML responses of REST management APIs",
	Long: `restdata decodes ATOM-style XML responses, including the <dict>, <list>,
<key> and <item> wrappers used by Splunk-style management endpoints, into
ordered JSON, YAML or text.

It can decode local files or standard input, or fetch endpoints directly
from a management port. Connection settings are read from flags,
RESTDATA_* environment variables, .restdatarc.yaml in the current directory
and the global config file, in that order of precedence.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

// Main runs the CLI and returns the process exit code.
func Main() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig.Scheme, "scheme", "", "Management port scheme (http or https)")
	pf.StringVar(&flagConfig.Host, "host", "", "Management host")
	pf.IntVar(&flagConfig.Port, "port", 0, "Management port")
	pf.IntVar(&flagConfig.Timeout, "timeout", 0, "Request timeout in seconds")
	pf.BoolVar(&flagConfig.Insecure, "insecure", false, "Skip TLS certificate verification")
	pf.StringVarP(&flagConfig.Username, "username", "u", "", "Username for login")
	pf.StringVarP(&flagConfig.Password, "password", "p", "", "Password for login")
	pf.StringVar(&flagConfig.Token, "token", "", "Session token (skips login)")
	pf.BoolVar(&flagConfig.BasicAuth, "basic-auth", false, "Send credentials with HTTP basic auth instead of logging in")
	pf.StringVar(&flagConfig.Owner, "owner", "", "Namespace owner for relative endpoint paths")
	pf.StringVar(&flagConfig.App, "app", "", "Namespace app for relative endpoint paths")
	pf.StringVarP(&flagConfig.Output, "output", "o", "", "Output format: json, yaml or text")
	pf.BoolVar(&flagConfig.Permissive, "permissive", false, "Accept undefined entities and invalid characters in XML")
	pf.StringVar(&flagConfig.LogLevel, "log-level", "", "Log level: debug, info, warn or error")
	pf.StringVar(&flagConfig.LogFormat, "log-format", "", "Log format: text or json")
}

// flagKeys maps persistent flag names to configuration keys.
var flagKeys = map[string]string{
	"scheme":     "scheme",
	"host":       "host",
	"port":       "port",
	"timeout":    "timeout",
	"insecure":   "insecure",
	"username":   "username",
	"password":   "password",
	"token":      "token",
	"basic-auth": "basicAuth",
	"owner":      "owner",
	"app":        "app",
	"output":     "output",
	"permissive": "permissive",
	"log-level":  "logLevel",
	"log-format": "logFormat",
}

// setup resolves the effective configuration and logger.
func setup(cmd *cobra.Command, _ []string) error {
	loaded, err := cliconfig.LoadAll()
	if err != nil {
		return err
	}

	changed := changedFlags(cmd.Flags())
	if len(changed) > 0 {
		src := flagConfig
		src.SetFields = changed
		cliconfig.MergeConfig(loaded, &src, cliconfig.SourceFlag)
	}

	if err := loaded.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg = loaded

	logger = logging.New(logging.Config{
		Level:  logging.ParseLevel(cfg.LogLevel),
		Format: logging.ParseFormat(cfg.LogFormat),
		Output: cmd.ErrOrStderr(),
	})
	logger.Debug("configuration resolved", "baseURL", cfg.BaseURL(), "output", cfg.Output)
	return nil
}

// changedFlags returns the configuration keys of the flags set on the
// command line.
func changedFlags(fs *pflag.FlagSet) map[string]bool {
	changed := make(map[string]bool)
	fs.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			changed[key] = true
		}
	})
	return changed
}

func newDecoder() *restdata.Decoder {
	return restdata.NewDecoder(
		restdata.WithLogger(logger),
		restdata.WithPermissive(cfg.Permissive),
	)
}

// newClient builds a client for the configured management port, logging in
// first when only a username and password are available.
func newClient(cmd *cobra.Command) (*restclient.Client, error) {
	opts := []restclient.Option{
		restclient.WithDecoder(newDecoder()),
		restclient.WithLogger(logger),
		restclient.WithNamespace(cfg.Owner, cfg.App),
	}

	timeout := time.Duration(cfg.Timeout) * time.Second
	if cfg.Insecure {
		output.Warn(cmd.ErrOrStderr(), "TLS certificate verification is disabled")
		opts = append(opts, restclient.WithHTTPClient(insecureHTTPClient(timeout)))
	} else {
		opts = append(opts, restclient.WithTimeout(timeout))
	}

	login := false
	switch {
	case cfg.Token != "":
		opts = append(opts, restclient.WithToken(cfg.Token))
	case cfg.Username != "" && cfg.BasicAuth:
		opts = append(opts, restclient.WithBasicAuth(cfg.Username, cfg.Password))
	case cfg.Username != "":
		opts = append(opts, restclient.WithCredentials(cfg.Username, cfg.Password))
		login = true
	}

	client := restclient.New(cfg.BaseURL(), opts...)
	if login {
		if err := client.Login(cmd.Context()); err != nil {
			return nil, err
		}
		logger.Debug("logged in", slog.String("username", cfg.Username))
	}
	return client, nil
}

func insecureHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via --insecure
	return &http.Client{Timeout: timeout, Transport: transport}
}
