package cli

import (
	"github.com/spf13/cobra"

	"github.com/restdata/restdata/pkg/cli/internal/parse"
)

var (
	getMatch string
	getQuery []string
	getRaw   bool
	getShape shapeFlags
)

var getCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Fetch an endpoint and decode the response",
	Long: `Fetch an endpoint from the management port and decode the response.

Relative paths are resolved under /services/, or under
/servicesNS/<owner>/<app>/ when --owner or --app is set. Absolute paths are
used as given.`,
	Example: `  # Decode the whole feed
  restdata get data/indexes

  # Decode only the entries, 100 at a time
  restdata get data/indexes --match entry --query count=100

  # Print the raw response body
  restdata get server/info --raw`,
	Args: cobra.ExactArgs(1),
	RunE: runGet,
}

func init() {
	getCmd.Flags().StringVarP(&getMatch, "match", "m", "", "Path of the elements to decode")
	getCmd.Flags().StringArrayVarP(&getQuery, "query", "q", nil, "Query parameter as key=value (repeatable)")
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "Print the response body without decoding")
	getShape.register(getCmd)
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	query, err := parse.Query(getQuery)
	if err != nil {
		return err
	}
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	body, err := client.Fetch(cmd.Context(), args[0], query)
	if err != nil {
		return err
	}
	if getRaw {
		_, err := cmd.OutOrStdout().Write([]byte(body))
		return err
	}

	values, err := newDecoder().LoadAll(body, getMatch)
	if err != nil {
		return err
	}
	values, err = getShape.shape(values)
	if err != nil {
		return err
	}
	return getShape.emit(cmd, collapse(values))
}
