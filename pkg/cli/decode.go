package cli

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/restdata/restdata/pkg/restdata"
)

var (
	decodeMatch string
	decodeShape shapeFlags
)

var decodeCmd = &cobra.Command{
	Use:   "decode [file|glob ...]",
	Short: "Decode XML files or standard input",
	Long: `Decode one or more XML documents into ordered values.

Arguments may be file paths or doublestar globs (**/*.xml). With no
arguments, or with "-", the document is read from standard input.

--match selects elements by path relative to the document root
(e.g. "entry" or "entry/content"). Each document contributes one value per
selected element; a single value prints as itself, several as a list.`,
	Example: `  # Decode a saved response
  restdata decode indexes.xml

  # Decode the entries of every feed under testdata/
  restdata decode --match entry 'testdata/**/*.xml'

  # Keep only disabled entries and print their titles
  curl -sk https://localhost:8089/services/data/indexes | \
    restdata decode --match entry --filter 'entry.content.disabled == "1"' --select '$..title'`,
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVarP(&decodeMatch, "match", "m", "", "Path of the elements to decode")
	decodeShape.register(decodeCmd)
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	sources, err := expandSources(args)
	if err != nil {
		return err
	}

	decoder := newDecoder()
	var values []restdata.Value
	for _, src := range sources {
		text, err := readSource(cmd, src)
		if err != nil {
			return err
		}
		decoded, err := decoder.LoadAll(text, decodeMatch)
		if err != nil {
			if src == "-" {
				return err
			}
			return fmt.Errorf("%s: %w", src, err)
		}
		logger.Debug("decoded source", "source", src, "values", len(decoded))
		values = append(values, decoded...)
	}

	values, err = decodeShape.shape(values)
	if err != nil {
		return err
	}
	return decodeShape.emit(cmd, collapse(values))
}

// expandSources resolves file arguments and globs in argument order.
// Glob matches are sorted; a glob matching nothing is an error.
func expandSources(args []string) ([]string, error) {
	if len(args) == 0 {
		return []string{"-"}, nil
	}
	var sources []string
	for _, arg := range args {
		if arg == "-" || !hasMeta(arg) {
			sources = append(sources, arg)
			continue
		}
		matches, err := doublestar.FilepathGlob(arg, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("invalid glob %q: %w", arg, err)
		}
		if len(matches) == 0 {
			return nil, fmt.Errorf("no files match %q", arg)
		}
		sort.Strings(matches)
		sources = append(sources, matches...)
	}
	return sources, nil
}

func hasMeta(pattern string) bool {
	for _, c := range pattern {
		switch c {
		case '*', '?', '[', '{':
			return true
		}
	}
	return false
}

func readSource(cmd *cobra.Command, src string) (string, error) {
	if src == "-" {
		b, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", src, err)
	}
	return string(b), nil
}
