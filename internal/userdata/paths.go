package userdata

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/docshelf/docshelf/internal/branding"
)

// Directory and file name constants for the ~/.docshelf layout.
const (
	BundleDir  = "bundle"
	StorageDir = "documents"
	TypesFile  = "types.yaml"
	ConfigFile = "config.yaml"
)

// Permission constants.
const (
	DirPermSecure  os.FileMode = 0700
	FilePermSecure os.FileMode = 0600
	DirPermNormal  os.FileMode = 0755
)

// GetHomeRoot returns the docshelf home directory.
// It checks the DOCSHELF_HOME environment variable first,
// then falls back to ~/.docshelf.
func GetHomeRoot() (string, error) {
	if v := os.Getenv(branding.EnvVar("HOME")); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, branding.HomeDir()), nil
}

// GetBundleRoot returns the read-only bundle directory.
// It checks DOCSHELF_BUNDLE first, then falls back to <home>/bundle.
func GetBundleRoot() (string, error) {
	return overrideOrHome("BUNDLE", BundleDir)
}

// GetStorageRoot returns the mutable storage directory imports are copied into.
// It checks DOCSHELF_STORAGE first, then falls back to <home>/documents.
func GetStorageRoot() (string, error) {
	return overrideOrHome("STORAGE", StorageDir)
}

// GetTypesPath returns the path of the user's content type overrides.
// It checks DOCSHELF_TYPES first, then falls back to <home>/types.yaml.
func GetTypesPath() (string, error) {
	return overrideOrHome("TYPES", TypesFile)
}

// GetConfigPath returns the path to config.yaml within the home directory.
func GetConfigPath() (string, error) {
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, ConfigFile), nil
}

func overrideOrHome(envSuffix, name string) (string, error) {
	if v := os.Getenv(branding.EnvVar(envSuffix)); v != "" {
		return v, nil
	}
	root, err := GetHomeRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, name), nil
}
