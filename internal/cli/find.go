package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:   "find <path>",
	Short: "Print the row of the document at a location",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession("")
		if err != nil {
			return err
		}

		row, ok := s.refresh().FindByLocation(args[0])
		if !ok {
			return fmt.Errorf("no document at %s", args[0])
		}
		fmt.Fprintln(cmd.OutOrStdout(), row)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
}
