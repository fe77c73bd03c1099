package cli

import (
	"fmt"

	"github.com/docshelf/docshelf/internal/branding"
	"github.com/docshelf/docshelf/internal/userdata"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the docshelf home directory",
	Long: `Create ~/.docshelf with an empty bundle directory, the storage directory
for imports, and a default config.yaml. Existing files are left alone.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := userdata.GetHomeRoot()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Initializing %s at %s\n", branding.DisplayName(), root)

		if err := userdata.InitHome(out); err != nil {
			return fmt.Errorf("initializing home: %w", err)
		}

		fmt.Fprintf(out, "\nDone. Run '%s import <file>' to add documents.\n", branding.CLIName())
		return nil
	},
}
