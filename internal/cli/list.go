package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/docshelf/docshelf/internal/catalog"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var (
	listOrigin string
	listJSON   bool
	listYAML   bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List bundled and imported documents",
	Long: `List every document in the catalog. Bundled documents come first, then
imported ones; the ROW column is the index accepted by show and preview.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().StringVar(&listOrigin, "origin", "", "Filter by origin (bundled, imported)")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().BoolVar(&listYAML, "yaml", false, "Output in YAML format")
	listCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	var origin catalog.Origin
	if listOrigin != "" {
		o, err := catalog.ParseOrigin(listOrigin)
		if err != nil {
			return err
		}
		origin = o
	}

	s, err := openSession("")
	if err != nil {
		return err
	}
	cat := s.refresh()

	switch {
	case listJSON:
		return catalog.Export(cmd.OutOrStdout(), cat, catalog.FormatJSON, origin)
	case listYAML:
		return catalog.Export(cmd.OutOrStdout(), cat, catalog.FormatYAML, origin)
	}

	snap := cat.Snapshot(origin)
	if len(snap.Rows) == 0 {
		if origin != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "No %s documents.\n", origin)
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), "No documents yet.")
		}
		return nil
	}
	return printListTable(cmd, s, snap.Rows)
}

func printListTable(cmd *cobra.Command, s *session, rows []catalog.Row) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "ROW\tORIGIN\tTITLE\tSIZE\tTYPE\tICON")
	for _, r := range rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			r.Row, r.Origin, r.Title, humanize.Bytes(uint64(r.Size)), r.Type, s.types.Icon(r.Type))
	}
	return w.Flush()
}
