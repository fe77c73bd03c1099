package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/docshelf/docshelf/internal/catalog"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var showPath bool

var showCmd = &cobra.Command{
	Use:   "show <row>",
	Short: "Show the document at a row",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, rec, err := resolveRow(args[0])
		if err != nil {
			return err
		}
		if showPath {
			fmt.Fprintln(cmd.OutOrStdout(), rec.Location)
			return nil
		}
		return printRecord(cmd, s, rec)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showPath, "path", false, "Print only the document location")
	rootCmd.AddCommand(showCmd)
}

// resolveRow parses a row argument and resolves it against a fresh catalog.
func resolveRow(arg string) (*session, catalog.Record, error) {
	row, err := strconv.Atoi(arg)
	if err != nil {
		return nil, catalog.Record{}, fmt.Errorf("invalid row %q: must be an integer", arg)
	}

	s, err := openSession("")
	if err != nil {
		return nil, catalog.Record{}, err
	}

	rec, err := s.refresh().Resolve(row)
	if err != nil {
		return nil, catalog.Record{}, err
	}
	return s, rec, nil
}

func printRecord(cmd *cobra.Command, s *session, rec catalog.Record) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "Title:\t%s\n", rec.Title)
	fmt.Fprintf(w, "Origin:\t%s\n", rec.Origin)
	fmt.Fprintf(w, "Size:\t%s (%d bytes)\n", humanize.Bytes(uint64(rec.Size)), rec.Size)
	fmt.Fprintf(w, "Type:\t%s\n", rec.Type)
	if desc := s.types.Describe(rec.Type); desc != "" {
		fmt.Fprintf(w, "Kind:\t%s\n", desc)
	}
	fmt.Fprintf(w, "Location:\t%s\n", rec.Location)
	return w.Flush()
}
