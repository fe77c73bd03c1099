package cli

import (
	"fmt"
	"io"

	"github.com/docshelf/docshelf/internal/catalog"
	"github.com/docshelf/docshelf/internal/contenttype"
	"github.com/docshelf/docshelf/internal/userdata"
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create missing directories and repair permissions")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the docshelf directories",
	Long:  `Run diagnostic checks on the bundle and storage directories and the content type table.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		s, err := openSession("")
		if err != nil {
			return err
		}

		failures := userdata.CheckLayout(out, s.settings.BundleDir, s.settings.StorageDir, doctorFix)
		failures += checkTypes(out, s.settings.TypesFile)
		failures += checkScan(out, s)

		if failures > 0 {
			return fmt.Errorf("%d check(s) failed", failures)
		}
		fmt.Fprintln(out, "\nAll checks passed.")
		return nil
	},
}

func checkTypes(w io.Writer, path string) int {
	fmt.Fprintln(w, "Content types:")
	table, err := contenttype.Load(path)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %d types loaded\n", len(table.Entries()))
	return 0
}

func checkScan(w io.Writer, s *session) int {
	fmt.Fprintln(w, "Catalog:")
	failures := 0
	for _, origin := range []catalog.Origin{catalog.OriginBundled, catalog.OriginImported} {
		records, err := s.registry.Scan(origin)
		if err != nil {
			fmt.Fprintf(w, "  [FAIL] %s: %v\n", origin, err)
			failures++
			continue
		}
		fmt.Fprintf(w, "  [ OK ] %d %s documents\n", len(records), origin)
	}
	return failures
}
