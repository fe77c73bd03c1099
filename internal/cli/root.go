package cli

import (
	"fmt"

	"github.com/docshelf/docshelf/internal/branding"
	"github.com/docshelf/docshelf/internal/catalog"
	"github.com/docshelf/docshelf/internal/config"
	"github.com/docshelf/docshelf/internal/contenttype"
	"github.com/docshelf/docshelf/internal/logger"
	"github.com/docshelf/docshelf/internal/registry"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagBundle    string
	flagStorage   string
	flagTypesFile string
	flagLogLevel  string
	flagVerbose   bool
)

// log is replaced in PersistentPreRunE once settings are loaded.
var log = zerolog.Nop()

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` keeps a catalog of documents from two places: a read-only
bundle shipped with the application and a storage directory that receives
imported copies. Every document gets a stable row number for display and preview.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd); err != nil {
			return err
		}
		if err := config.Load(); err != nil {
			return err
		}

		level := config.Get(config.KeyLogLevel)
		if flagVerbose {
			level = "debug"
		}
		log = logger.New(logger.Config{
			Level:  level,
			Format: config.Get(config.KeyLogFormat),
			Output: cmd.ErrOrStderr(),
		})
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagBundle, "bundle", "", "Bundle directory (read-only documents)")
	pf.StringVar(&flagStorage, "storage", "", "Storage directory for imported documents")
	pf.StringVar(&flagTypesFile, "types-file", "", "Content type table overlay")
	pf.StringVar(&flagLogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
}

// bindFlags ties the persistent flags to their viper keys. It runs on every
// invocation so bindings survive a viper.Reset.
func bindFlags(cmd *cobra.Command) error {
	bindings := map[string]string{
		config.KeyBundleDir:  "bundle",
		config.KeyStorageDir: "storage",
		config.KeyTypesFile:  "types-file",
		config.KeyLogLevel:   "log-level",
	}
	for key, name := range bindings {
		if err := viper.BindPFlag(key, cmd.Root().PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("binding flag --%s: %w", name, err)
		}
	}
	return nil
}

// session bundles what document commands need for one invocation.
type session struct {
	settings config.Settings
	types    *contenttype.Table
	registry *registry.Registry
}

// openSession resolves settings, loads the type table and constructs the
// registry. A non-empty policy overrides the configured collision policy.
func openSession(policy registry.CollisionPolicy) (*session, error) {
	settings, err := config.Resolve()
	if err != nil {
		return nil, fmt.Errorf("resolving settings: %w", err)
	}

	types, err := contenttype.Load(settings.TypesFile)
	if err != nil {
		return nil, fmt.Errorf("loading content types: %w", err)
	}

	if policy == "" {
		policy = registry.CollisionPolicy(settings.OnCollision)
	}

	reg, err := registry.New(registry.Options{
		BundleDir:        settings.BundleDir,
		StorageDir:       settings.StorageDir,
		Classifier:       types,
		BundleExtensions: settings.BundleExtensions,
		OnCollision:      policy,
		Logger:           &log,
	})
	if err != nil {
		return nil, err
	}

	return &session{settings: settings, types: types, registry: reg}, nil
}

// refresh rescans both directories and returns the new catalog.
func (s *session) refresh() *catalog.Catalog {
	return s.registry.Refresh()
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	return rootCmd.Execute()
}
