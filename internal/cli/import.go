package cli

import (
	"errors"
	"fmt"

	"github.com/docshelf/docshelf/internal/registry"
	"github.com/spf13/cobra"
)

var importRename bool

var importCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Copy a file into the storage directory",
	Long: `Copy a file into the storage directory and add it to the catalog.

An existing document with the same name is never overwritten. By default the
import fails; with --rename the copy is stored as name-1.ext, name-2.ext, ...`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().BoolVar(&importRename, "rename", false, "Store under a numbered name when the name is taken")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	var policy registry.CollisionPolicy
	if importRename {
		policy = registry.CollisionRename
	}

	s, err := openSession(policy)
	if err != nil {
		return err
	}

	rec, err := s.registry.Import(args[0])
	if err != nil {
		if errors.Is(err, registry.ErrImportCollision) {
			return fmt.Errorf("%w (use --rename to keep both)", err)
		}
		return err
	}

	// Later invocations rescan and re-sort, so report the row they will see.
	row, ok := s.refresh().FindByLocation(rec.Location)
	if !ok {
		return fmt.Errorf("imported %s but it is missing from the rescanned catalog", rec.Location)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Imported %s as row %d\n", rec.Title, row)
	return printRecord(cmd, s, rec)
}
