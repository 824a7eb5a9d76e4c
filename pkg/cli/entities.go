package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/restdata/restdata/pkg/cli/internal/parse"
	"github.com/restdata/restdata/pkg/restdata"
)

var (
	entitiesCount int
	entitiesQuery []string
	entitiesShape shapeFlags
)

var entitiesCmd = &cobra.Command{
	Use:   "entities <path>",
	Short: "List the entries of a collection endpoint",
	Long: `Fetch a collection endpoint and print one record per entry, in feed order.

Each record holds the entry's fields (title, author, content, ...); --filter
expressions and --fields patterns apply to those fields directly.`,
	Example: `  # Titles of all indexes
  restdata entities data/indexes --select '$[*].title'

  # Enabled apps, showing only the title and content
  restdata entities apps/local --filter 'content.disabled == "0"' --fields title,content`,
	Args: cobra.ExactArgs(1),
	RunE: runEntities,
}

func init() {
	entitiesCmd.Flags().IntVar(&entitiesCount, "count", 0, "Maximum number of entries to request (0 uses the server default, -1 requests all)")
	entitiesCmd.Flags().StringArrayVarP(&entitiesQuery, "query", "q", nil, "Query parameter as key=value (repeatable)")
	entitiesShape.register(entitiesCmd)
	rootCmd.AddCommand(entitiesCmd)
}

func runEntities(cmd *cobra.Command, args []string) error {
	query, err := parse.Query(entitiesQuery)
	if err != nil {
		return err
	}
	if entitiesCount != 0 {
		query.Set("count", strconv.Itoa(entitiesCount))
	}

	client, err := newClient(cmd)
	if err != nil {
		return err
	}
	entries, err := client.Entities(cmd.Context(), args[0], query)
	if err != nil {
		return err
	}

	values := make([]restdata.Value, len(entries))
	for i, e := range entries {
		values[i] = restdata.Mapping(e)
	}
	values, err = entitiesShape.shape(values)
	if err != nil {
		return err
	}
	return entitiesShape.emit(cmd, restdata.Sequence(values...))
}
