package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/docshelf/docshelf/internal/config"
	"github.com/spf13/cobra"
)

func init() {
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configListCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage user settings",
	Long:  `Read and write docshelf configuration stored at ~/.docshelf/config.yaml.`,
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, value := args[0], args[1]
		if err := config.Set(key, value); err != nil {
			return fmt.Errorf("setting config key %q: %w", key, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", key, value)
		return nil
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), config.Get(args[0]))
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show resolved settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := config.Resolve()
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "%s\t%s\n", config.KeyBundleDir, s.BundleDir)
		fmt.Fprintf(w, "%s\t%s\n", config.KeyStorageDir, s.StorageDir)
		fmt.Fprintf(w, "%s\t%s\n", config.KeyTypesFile, s.TypesFile)
		fmt.Fprintf(w, "%s\t%v\n", config.KeyBundleExtensions, s.BundleExtensions)
		fmt.Fprintf(w, "%s\t%s\n", config.KeyOnCollision, s.OnCollision)
		fmt.Fprintf(w, "%s\t%s\n", config.KeyPreviewCommand, s.PreviewCommand)
		fmt.Fprintf(w, "%s\t%s\n", config.KeyLogLevel, s.LogLevel)
		fmt.Fprintf(w, "%s\t%s\n", config.KeyLogFormat, s.LogFormat)
		return w.Flush()
	},
}
