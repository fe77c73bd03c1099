package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docshelf/docshelf/internal/branding"
	"github.com/docshelf/docshelf/internal/userdata"
	"github.com/spf13/viper"
)

const fileType = "yaml"

// Setting keys. Each can also be set through DOCSHELF_<KEY>.
const (
	KeyBundleDir        = "bundle_dir"
	KeyStorageDir       = "storage_dir"
	KeyTypesFile        = "types_file"
	KeyBundleExtensions = "bundle_extensions"
	KeyOnCollision      = "on_collision"
	KeyPreviewCommand   = "preview_command"
	KeyLogLevel         = "log_level"
	KeyLogFormat        = "log_format"
)

// Keys lists every recognised setting, in display order.
var Keys = []string{
	KeyBundleDir,
	KeyStorageDir,
	KeyTypesFile,
	KeyBundleExtensions,
	KeyOnCollision,
	KeyPreviewCommand,
	KeyLogLevel,
	KeyLogFormat,
}

// Settings is the resolved configuration for one invocation.
type Settings struct {
	BundleDir        string
	StorageDir       string
	TypesFile        string
	BundleExtensions []string
	OnCollision      string
	PreviewCommand   string
	LogLevel         string
	LogFormat        string
}

// Dir returns the path to the docshelf home directory (~/.docshelf/).
func Dir() string {
	dir, err := userdata.GetHomeRoot()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return dir
}

// FilePath returns the full path to the config file (~/.docshelf/config.yaml).
func FilePath() string {
	path, err := userdata.GetConfigPath()
	if err != nil {
		return filepath.Join(Dir(), userdata.ConfigFile)
	}
	return path
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, userdata.DirPermNormal); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
// A missing config file is not an error; a malformed one is.
func Load() error {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyOnCollision, "fail")
	viper.SetDefault(KeyLogLevel, "info")
	viper.SetDefault(KeyLogFormat, "console")

	if err := viper.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(FilePath()); os.IsNotExist(statErr) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Set writes a config key-value pair and saves the config file. Only the
// file's own contents are rewritten; env and flag values are not persisted.
func Set(key, value string) error {
	if !isKnownKey(key) {
		return fmt.Errorf("unknown key %q (known: %s)", key, strings.Join(Keys, ", "))
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	file := viper.New()
	file.SetConfigFile(configFile)
	file.SetConfigType(fileType)
	if _, err := os.Stat(configFile); err == nil {
		if err := file.ReadInConfig(); err != nil {
			return fmt.Errorf("reading config file %s: %w", configFile, err)
		}
	} else if os.IsNotExist(err) {
		f, err := os.OpenFile(configFile, os.O_CREATE|os.O_WRONLY, userdata.FilePermSecure)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	file.Set(key, value)
	if err := file.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	viper.Set(key, value)
	return nil
}

// Resolve combines viper values with the userdata path defaults.
func Resolve() (Settings, error) {
	s := Settings{
		BundleDir:        viper.GetString(KeyBundleDir),
		StorageDir:       viper.GetString(KeyStorageDir),
		TypesFile:        viper.GetString(KeyTypesFile),
		BundleExtensions: splitList(viper.GetStringSlice(KeyBundleExtensions)),
		OnCollision:      viper.GetString(KeyOnCollision),
		PreviewCommand:   viper.GetString(KeyPreviewCommand),
		LogLevel:         viper.GetString(KeyLogLevel),
		LogFormat:        viper.GetString(KeyLogFormat),
	}

	var err error
	if s.BundleDir == "" {
		if s.BundleDir, err = userdata.GetBundleRoot(); err != nil {
			return Settings{}, err
		}
	}
	if s.StorageDir == "" {
		if s.StorageDir, err = userdata.GetStorageRoot(); err != nil {
			return Settings{}, err
		}
	}
	if s.TypesFile == "" {
		if s.TypesFile, err = userdata.GetTypesPath(); err != nil {
			return Settings{}, err
		}
	}
	return s, nil
}

func isKnownKey(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// splitList accepts both YAML lists and comma separated strings.
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
