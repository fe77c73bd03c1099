package cli

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <row>",
	Short: "Open the document at a row with the preview command",
	Long: `Resolve a row and run preview_command with the document location as its
last argument. Without a configured command the location is printed instead.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, rec, err := resolveRow(args[0])
		if err != nil {
			return err
		}

		argv := strings.Fields(s.settings.PreviewCommand)
		if len(argv) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), rec.Location)
			return nil
		}

		argv = append(argv, rec.Location)
		log.Debug().Strs("argv", argv).Msg("running preview command")

		c := exec.CommandContext(cmd.Context(), argv[0], argv[1:]...)
		c.Stdin = cmd.InOrStdin()
		c.Stdout = cmd.OutOrStdout()
		c.Stderr = cmd.ErrOrStderr()
		if err := c.Run(); err != nil {
			return fmt.Errorf("preview command %s: %w", argv[0], err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
