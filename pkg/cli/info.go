package cli

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/restdata/restdata/pkg/cliconfig"
	"github.com/restdata/restdata/pkg/restdata"
)

var infoSettings bool

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show server info and settings",
	Long: `Show the server info of the management port and, unless --settings=false,
its server settings.

Text output lists keys alphabetically; list values are printed one item per
line below their key. Sections after the server info are printed below a
heading.`,
	Args: cobra.NoArgs,
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().BoolVar(&infoSettings, "settings", true, "Include server settings")
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, _ []string) error {
	client, err := newClient(cmd)
	if err != nil {
		return err
	}

	sections := restdata.NewRecord()
	info, err := client.Info(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read server info: %w", err)
	}
	sections.Set("info", restdata.Mapping(info))

	if infoSettings {
		settings, err := client.Settings(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to read server settings: %w", err)
		}
		sections.Set("settings", restdata.Mapping(settings))
	}

	if cfg.Output != cliconfig.OutputText {
		return printValue(cmd, restdata.Mapping(sections))
	}

	writeSections(cmd.OutOrStdout(), sections)
	return nil
}

// writeSections prints the first section unheaded and every following
// section below a title-cased heading derived from its key.
func writeSections(w io.Writer, sections *restdata.Record) {
	title := cases.Title(language.English)
	for i, name := range sections.Keys() {
		v, _ := sections.Lookup(name)
		if i == 0 {
			writeSorted(w, v.Record(), "")
			continue
		}
		fmt.Fprintf(w, "%s:\n", title.String(strings.ReplaceAll(name, "-", " ")))
		writeSorted(w, v.Record(), "    ")
	}
}

// writeSorted prints r as "key: value" lines in key order. Sequence values
// are printed one item per line, indented below the key.
func writeSorted(w io.Writer, r *restdata.Record, indent string) {
	keys := r.Keys()
	sort.Strings(keys)
	for _, k := range keys {
		v, _ := r.Lookup(k)
		switch v.Kind() {
		case restdata.KindSequence:
			fmt.Fprintf(w, "%s%s:\n", indent, k)
			for _, item := range v.Items() {
				fmt.Fprintf(w, "%s    %s\n", indent, inline(item))
			}
		case restdata.KindAbsent:
			fmt.Fprintf(w, "%s%s:\n", indent, k)
		default:
			fmt.Fprintf(w, "%s%s: %s\n", indent, k, inline(v))
		}
	}
}

// inline renders v on a single line: scalars as text, absent as empty and
// anything else as compact JSON.
func inline(v restdata.Value) string {
	switch v.Kind() {
	case restdata.KindScalar:
		return v.String()
	case restdata.KindAbsent:
		return ""
	}
	b, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}
