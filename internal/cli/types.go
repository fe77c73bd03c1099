package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/docshelf/docshelf/internal/config"
	"github.com/docshelf/docshelf/internal/contenttype"
	"github.com/spf13/cobra"
)

func init() {
	typesCmd.AddCommand(typesListCmd)
	typesCmd.AddCommand(typesValidateCmd)
	rootCmd.AddCommand(typesCmd)
}

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "Inspect the content type table",
	Long: `Inspect the content type table used to classify documents. The built-in
table can be extended or overridden by the file named in types_file.`,
}

var typesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List known content types",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := config.Resolve()
		if err != nil {
			return err
		}
		table, err := contenttype.Load(settings.TypesFile)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tICON\tEXTENSIONS\tMIME")
		for _, e := range table.Entries() {
			mime := e.MIME
			if mime == "" {
				mime = "-"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.ID, table.Icon(e.ID), strings.Join(e.Extensions, ","), mime)
		}
		return w.Flush()
	},
}

var typesValidateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Validate a content type file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := args[0]
		out := cmd.OutOrStdout()

		result, err := contenttype.ValidateFile(path)
		if err != nil {
			fmt.Fprintf(out, "  [FAIL] %s\n", path)
			return err
		}
		if !result.Valid {
			fmt.Fprintf(out, "  [FAIL] %s\n", path)
			for _, issue := range result.Issues {
				fmt.Fprintf(out, "         %s\n", issue)
			}
			return fmt.Errorf("%s has %d validation issue(s)", path, len(result.Issues))
		}

		// Schema-valid files can still carry an unsupported version.
		if _, err := contenttype.ParseFile(path); err != nil {
			fmt.Fprintf(out, "  [FAIL] %s\n", path)
			return err
		}
		fmt.Fprintf(out, "  [ OK ] %s is valid\n", path)
		return nil
	},
}
